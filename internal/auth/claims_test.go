package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/account-gateway/internal/domain"
)

func signToken(t *testing.T, secret string, role domain.Role, expiresIn time.Duration) string {
	t.Helper()
	claims := &SessionClaims{
		UserID: "u1",
		Email:  "jane@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecodeUnverified(t *testing.T) {
	decoder := NewDecoder("")
	if decoder.Verifying() {
		t.Fatalf("empty secret should not verify")
	}

	token := signToken(t, "whatever-key", domain.RoleAdmin, time.Hour)
	claims, err := decoder.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != domain.RoleAdmin {
		t.Fatalf("claims %+v", claims)
	}
}

func TestDecodeUnverifiedRejectsExpired(t *testing.T) {
	decoder := NewDecoder("")
	token := signToken(t, "whatever-key", domain.RoleUser, -time.Minute)
	if _, err := decoder.Decode(token); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestDecodeVerified(t *testing.T) {
	decoder := NewDecoder("edge-secret")
	if !decoder.Verifying() {
		t.Fatalf("secret should enable verification")
	}

	good := signToken(t, "edge-secret", domain.RoleSuperadmin, time.Hour)
	claims, err := decoder.Decode(good)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Role != domain.RoleSuperadmin {
		t.Fatalf("role = %s", claims.Role)
	}

	// A token signed with a different key is a forgery here.
	forged := signToken(t, "attacker-key", domain.RoleSuperadmin, time.Hour)
	if _, err := decoder.Decode(forged); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestDecodeGarbage(t *testing.T) {
	for _, decoder := range []*Decoder{NewDecoder(""), NewDecoder("edge-secret")} {
		if _, err := decoder.Decode(""); err == nil {
			t.Fatalf("empty token accepted")
		}
		if _, err := decoder.Decode("not.a.jwt"); err == nil {
			t.Fatalf("garbage token accepted")
		}
	}
}
