package consent

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	profileRepo "idvault/database/repository/profile"
	"idvault/models"
	"idvault/utils"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
)

// Service issues and redeems field-scoped consent tokens. Tokens are
// stateless HS256 bearer capabilities: repeat redemption is allowed and the
// only invalidation paths are signature mismatch and expiry.
type Service interface {
	// Issue creates a signed token granting read access to the named fields
	// of profileID. A non-positive ttl uses the configured default. The
	// profile does not have to exist yet; existence is checked at redemption.
	Issue(profileID string, allowedFields []string, ttl time.Duration) (string, time.Time, error)

	// Redeem verifies the token and returns the allowed fields that are
	// present in the store, keyed by the requested field names.
	Redeem(ctx context.Context, token string) (map[string]string, error)
}

// DefaultConsentService signs tokens with a process-wide secret injected at
// construction time.
type DefaultConsentService struct {
	Repo       profileRepo.Repository
	Secret     []byte
	DefaultTTL time.Duration

	// Now is the clock used at issuance; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultConsentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultConsentService) Issue(profileID string, allowedFields []string, ttl time.Duration) (string, time.Time, error) {
	if profileID == "" || len(allowedFields) == 0 {
		return "", time.Time{}, ErrValidation
	}
	if ttl <= 0 {
		ttl = s.DefaultTTL
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(ttl)

	claims := jwt.MapClaims{
		"profile_id":     profileID,
		"fields_allowed": allowedFields,
		"iat":            issuedAt.Unix(),
		"exp":            expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	utils.GetLogger().Info("issued consent token",
		zap.String("profileID", profileID),
		zap.Int("fields", len(allowedFields)),
		zap.Time("expiresAt", expiresAt))
	return token, expiresAt, nil
}

func (s *DefaultConsentService) Redeem(ctx context.Context, tokenString string) (map[string]string, error) {
	claims, err := s.verify(tokenString)
	if err != nil {
		return nil, err
	}

	profileID, _ := claims["profile_id"].(string)
	if profileID == "" {
		return nil, ErrMalformedToken
	}

	profile, err := s.Repo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	// Allowed fields absent from the store are omitted, not an error.
	out := make(map[string]string)
	for _, name := range allowedFieldNames(claims) {
		if value, ok := profile.FieldValue(models.CanonicalField(name)); ok && value != "" {
			out[name] = value
		}
	}

	utils.GetLogger().Info("redeemed consent token",
		zap.String("profileID", profileID),
		zap.Int("fieldsReturned", len(out)))
	return out, nil
}

// verify checks structure, signature and expiry in that order.
func (s *DefaultConsentService) verify(tokenString string) (jwt.MapClaims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	// jwt.Parse decodes base64url leniently: the unused trailing bits of the
	// final signature character are ignored, so a token mutated only in those
	// bits would still verify. Require the canonical encoding.
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, ErrMalformedToken
	}
	if base64.RawURLEncoding.EncodeToString(sig) != parts[2] {
		return nil, ErrInvalidSignature
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.Secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) {
			switch {
			case vErr.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, ErrMalformedToken
			case vErr.Errors&(jwt.ValidationErrorSignatureInvalid|jwt.ValidationErrorUnverifiable) != 0:
				return nil, ErrInvalidSignature
			case vErr.Errors&jwt.ValidationErrorExpired != 0:
				return nil, ErrTokenExpired
			}
		}
		return nil, ErrMalformedToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSignature
	}
	return claims, nil
}

func allowedFieldNames(claims jwt.MapClaims) []string {
	raw, _ := claims["fields_allowed"].([]interface{})
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names
}
