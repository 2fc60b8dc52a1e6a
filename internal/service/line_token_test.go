package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
	"github.com/ndewijer/Budget-Projection-Backend/internal/service"
	"github.com/ndewijer/Budget-Projection-Backend/internal/testutil"
)

// TestLineTokenCodec tests issuing and verifying projection line tokens.
//
// WHY: Line tokens are the only thing a client sends back to edit a paycheck line.
// They must round-trip exactly and must not be forgeable or reusable across keys.
func TestLineTokenCodec(t *testing.T) {
	line := model.ProjectionItem{
		PaycheckID:  testutil.MakeID(),
		Date:        testutil.Date(2024, 1, 19),
		Description: "Expected Pay: Salary | Bonus",
	}

	t.Run("round trips a paycheck line", func(t *testing.T) {
		// Setup
		codec := testutil.NewTestLineTokenCodec(t)

		// Execute
		token, err := codec.Encode(line)
		if err != nil {
			t.Fatalf("Encode() returned unexpected error: %v", err)
		}
		decoded, err := codec.Decode(token)

		// Assert
		if err != nil {
			t.Fatalf("Decode() returned unexpected error: %v", err)
		}
		if decoded.PaycheckID != line.PaycheckID {
			t.Errorf("Expected paycheck %s, got %s", line.PaycheckID, decoded.PaycheckID)
		}
		if !decoded.Date.Equal(line.Date) {
			t.Errorf("Expected date %v, got %v", line.Date, decoded.Date)
		}
		if decoded.Description != line.Description {
			t.Errorf("Expected description %q, got %q", line.Description, decoded.Description)
		}
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		codec := testutil.NewTestLineTokenCodec(t)
		token, err := codec.Encode(line)
		if err != nil {
			t.Fatalf("Encode() returned unexpected error: %v", err)
		}

		tampered := []byte(token)
		if tampered[10] == 'A' {
			tampered[10] = 'B'
		} else {
			tampered[10] = 'A'
		}
		_, err = codec.Decode(string(tampered))

		if !errors.Is(err, apperrors.ErrInvalidLineToken) {
			t.Errorf("Expected ErrInvalidLineToken, got %v", err)
		}
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		issuer := testutil.NewTestLineTokenCodec(t)
		verifier := testutil.NewTestLineTokenCodec(t)
		token, err := issuer.Encode(line)
		if err != nil {
			t.Fatalf("Encode() returned unexpected error: %v", err)
		}

		_, err = verifier.Decode(token)

		if !errors.Is(err, apperrors.ErrInvalidLineToken) {
			t.Errorf("Expected ErrInvalidLineToken, got %v", err)
		}
	})

	t.Run("accepts a configured key", func(t *testing.T) {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			t.Fatalf("Failed to generate key: %v", err)
		}
		issuer, err := service.NewLineTokenCodec(key.Encode(), time.Hour)
		if err != nil {
			t.Fatalf("NewLineTokenCodec() returned unexpected error: %v", err)
		}
		verifier, err := service.NewLineTokenCodec(key.Encode(), time.Hour)
		if err != nil {
			t.Fatalf("NewLineTokenCodec() returned unexpected error: %v", err)
		}

		token, err := issuer.Encode(line)
		if err != nil {
			t.Fatalf("Encode() returned unexpected error: %v", err)
		}
		if _, err := verifier.Decode(token); err != nil {
			t.Errorf("Expected token to verify with the shared key, got %v", err)
		}
	})

	t.Run("rejects a malformed key", func(t *testing.T) {
		_, err := service.NewLineTokenCodec("not-a-key", time.Hour)

		if err == nil {
			t.Error("Expected error for malformed key, got nil")
		}
	})
}
