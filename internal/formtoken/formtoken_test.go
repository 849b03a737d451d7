package formtoken

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-secret", 0)

	token, err := issuer.Issue(PurposeCreate)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := issuer.Verify(PurposeCreate, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Purpose != PurposeCreate {
		t.Errorf("expected purpose %q, got %q", PurposeCreate, claims.Purpose)
	}
	if claims.ID == "" {
		t.Error("expected a token ID")
	}
}

func TestVerifyWrongPurpose(t *testing.T) {
	issuer := NewIssuer("test-secret", 0)

	token, _ := issuer.Issue(PurposeContact)
	if _, err := issuer.Verify(PurposeCreate, token); !errors.Is(err, ErrPurposeMismatch) {
		t.Errorf("expected ErrPurposeMismatch, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, _ := NewIssuer("secret-a", 0).Issue(PurposeCreate)

	if _, err := NewIssuer("secret-b", 0).Verify(PurposeCreate, token); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}

func TestVerifyExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	base := time.Now()
	issuer.now = func() time.Time { return base }

	token, _ := issuer.Issue(PurposeCreate)

	issuer.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := issuer.Verify(PurposeCreate, token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestVerifyGarbage(t *testing.T) {
	if _, err := NewIssuer("test-secret", 0).Verify(PurposeCreate, "not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
