package dto

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber"`
}

// VerifyOTPRequest payload for completing a pending signup.
type VerifyOTPRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	OTP    string `json:"otp"`
}

// ResendOTPRequest payload for re-triggering OTP delivery.
type ResendOTPRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// LoginRequest payload for credential login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
