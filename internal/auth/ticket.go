package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var errMalformedTicket = errors.New("malformed verification ticket")

// Ticket is the pending-verification state between signup and OTP
// confirmation. The wire format is fixed by the backend contract:
// base64("userId:email:unixIssuedAt").
type Ticket struct {
	UserID   string
	Email    string
	IssuedAt time.Time
}

// NewTicket creates a ticket issued now.
func NewTicket(userID, email string) Ticket {
	return Ticket{UserID: userID, Email: email, IssuedAt: time.Now()}
}

// Encode serializes the ticket for cookie transport.
func (t Ticket) Encode() string {
	raw := fmt.Sprintf("%s:%s:%d", t.UserID, t.Email, t.IssuedAt.Unix())
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeTicket parses an encoded ticket, rejecting anything malformed.
func DecodeTicket(encoded string) (Ticket, error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Ticket{}, errMalformedTicket
	}

	raw := string(decoded)
	first := strings.Index(raw, ":")
	last := strings.LastIndex(raw, ":")
	if first < 0 || last <= first {
		return Ticket{}, errMalformedTicket
	}

	userID := raw[:first]
	email := raw[first+1 : last]
	unix, err := strconv.ParseInt(raw[last+1:], 10, 64)
	if err != nil || userID == "" || email == "" {
		return Ticket{}, errMalformedTicket
	}

	return Ticket{UserID: userID, Email: email, IssuedAt: time.Unix(unix, 0)}, nil
}

// Expired reports whether the ticket's validity window has passed.
func (t Ticket) Expired(ttl time.Duration) bool {
	return time.Now().After(t.IssuedAt.Add(ttl))
}

// Matches reports whether the ticket belongs to the given signup.
func (t Ticket) Matches(userID, email string) bool {
	return t.UserID == userID && t.Email == email
}
