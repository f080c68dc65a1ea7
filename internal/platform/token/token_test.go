package token

import (
	"testing"
	"time"
)

const testSecret = "test-secret-not-for-production"

func TestNewAndParse(t *testing.T) {
	signed, err := New("user-1", "a@b.com", "sess-1", testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	claims, err := Parse(signed, testSecret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@b.com" || claims.SessionID != "sess-1" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := New("user-1", "a@b.com", "sess-1", testSecret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Parse(signed, "a-different-secret"); err == nil {
		t.Error("expected signature verification failure")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	signed, err := New("user-1", "a@b.com", "sess-1", testSecret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Parse(signed, testSecret); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not-a-jwt", testSecret); err == nil {
		t.Error("expected parse failure")
	}
}
