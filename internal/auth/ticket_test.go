package auth

import (
	"encoding/base64"
	"testing"
	"time"
)

func TestTicketRoundTrip(t *testing.T) {
	ticket := NewTicket("user-42", "jane@example.com")

	decoded, err := DecodeTicket(ticket.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.UserID != "user-42" || decoded.Email != "jane@example.com" {
		t.Fatalf("decoded %+v", decoded)
	}
	if decoded.IssuedAt.Unix() != ticket.IssuedAt.Unix() {
		t.Fatalf("issued at %v, want %v", decoded.IssuedAt, ticket.IssuedAt)
	}
	if !decoded.Matches("user-42", "jane@example.com") {
		t.Fatalf("ticket should match its own signup")
	}
	if decoded.Matches("user-43", "jane@example.com") {
		t.Fatalf("ticket matched wrong user")
	}
}

func TestDecodeTicketMalformed(t *testing.T) {
	cases := map[string]string{
		"not base64":       "%%%not-base64%%%",
		"no separators":    base64.StdEncoding.EncodeToString([]byte("justonefield")),
		"one separator":    base64.StdEncoding.EncodeToString([]byte("user:1700000000")),
		"bad timestamp":    base64.StdEncoding.EncodeToString([]byte("user:a@b.c:soon")),
		"empty user":       base64.StdEncoding.EncodeToString([]byte(":a@b.c:1700000000")),
		"empty email":      base64.StdEncoding.EncodeToString([]byte("user::1700000000")),
		"empty everything": "",
	}

	for name, encoded := range cases {
		if _, err := DecodeTicket(encoded); err == nil {
			t.Fatalf("%s: expected decode error", name)
		}
	}
}

func TestTicketExpiry(t *testing.T) {
	fresh := NewTicket("u1", "a@b.c")
	if fresh.Expired(10 * time.Minute) {
		t.Fatalf("fresh ticket expired")
	}

	stale := Ticket{UserID: "u1", Email: "a@b.c", IssuedAt: time.Now().Add(-11 * time.Minute)}
	if !stale.Expired(10 * time.Minute) {
		t.Fatalf("stale ticket not expired")
	}
}
