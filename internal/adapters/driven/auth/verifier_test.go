package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

func TestVerifyRoundTrip(t *testing.T) {
	v := NewVerifier("test-secret")

	token, err := v.Sign("cust-1", "sess-42", time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	auth, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if auth.CustomerID != "cust-1" || auth.SessionID != "sess-42" {
		t.Errorf("auth = %+v", auth)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	v := NewVerifier("test-secret")

	token, err := v.Sign("cust-1", "sess-42", -time.Minute)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	_, err = v.Verify(token)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	v := NewVerifier("test-secret")
	other := NewVerifier("other-secret")

	token, err := other.Sign("cust-1", "sess-42", time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	_, err = v.Verify(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	v := NewVerifier("test-secret")

	_, err := v.Verify("not-a-token")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyMissingCustomerID(t *testing.T) {
	v := NewVerifier("test-secret")

	token, err := v.Sign("", "sess-42", time.Hour)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	_, err = v.Verify(token)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("Verify() error = %v, want ErrTokenInvalid", err)
	}
}
