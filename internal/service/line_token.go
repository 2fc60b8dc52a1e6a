package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Budget-Projection-Backend/internal/apperrors"
	"github.com/ndewijer/Budget-Projection-Backend/internal/model"
)

const lineTokenSeparator = "|"

// LineTokenCodec issues and verifies the opaque tokens that identify editable projection lines.
// A token is a fernet token over "paycheckId|date|description"; it expires after the configured TTL.
type LineTokenCodec struct {
	key *fernet.Key
	ttl time.Duration
}

// NewLineTokenCodec creates a codec from a base64 fernet key.
// An empty key generates a random one, so tokens do not survive a restart.
func NewLineTokenCodec(encodedKey string, ttl time.Duration) (*LineTokenCodec, error) {
	var key *fernet.Key
	if encodedKey == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate line token key: %w", err)
		}
	} else {
		var err error
		key, err = fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode line token key: %w", err)
		}
	}

	return &LineTokenCodec{key: key, ttl: ttl}, nil
}

// Encode returns the token for a paycheck line.
func (c *LineTokenCodec) Encode(line model.ProjectionItem) (string, error) {
	msg := strings.Join([]string{line.PaycheckID, line.Date.Format("2006-01-02"), line.Description}, lineTokenSeparator)
	tok, err := fernet.EncryptAndSign([]byte(msg), c.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign line token: %w", err)
	}
	return string(tok), nil
}

// Decode verifies a token and returns the line it identifies. Only PaycheckID, Date and
// Description are set on the returned item.
// Returns apperrors.ErrInvalidLineToken for tampered, malformed or expired tokens.
func (c *LineTokenCodec) Decode(token string) (model.ProjectionItem, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), c.ttl, []*fernet.Key{c.key})
	if msg == nil {
		return model.ProjectionItem{}, apperrors.ErrInvalidLineToken
	}

	parts := strings.SplitN(string(msg), lineTokenSeparator, 3)
	if len(parts) != 3 || parts[0] == "" {
		return model.ProjectionItem{}, apperrors.ErrInvalidLineToken
	}

	date, err := time.Parse("2006-01-02", parts[1])
	if err != nil {
		return model.ProjectionItem{}, apperrors.ErrInvalidLineToken
	}

	return model.ProjectionItem{
		PaycheckID:  parts[0],
		Date:        date.UTC(),
		Description: parts[2],
	}, nil
}
