package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type for this endpoint")
)

type TokenType string

const (
	TokenTypeAccess     TokenType = "access"
	TokenTypeInvitation TokenType = "invitation"
)

const (
	issuer             = "clublink"
	audienceAccess     = "api-access"
	audienceInvitation = "waitlist-invitation"
)

// UserClaims defines the claims carried by API access tokens
type UserClaims struct {
	UserID int32     `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

// InvitationClaims binds a waitlist invitation to a single join request
type InvitationClaims struct {
	RequestID int32     `json:"request_id"`
	Type      TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateAccessToken(userID int32, email string) (string, error)
	ValidateToken(tokenString string) (*UserClaims, error)

	// GenerateInvitationToken signs a token for requestID valid for ttl and returns its expiry.
	GenerateInvitationToken(requestID int32, ttl time.Duration) (string, time.Time, error)
	// ValidateInvitationToken verifies signature, type and expiry. For an expired but
	// authentic token the claims are returned together with ErrExpiredToken.
	ValidateInvitationToken(tokenString string) (*InvitationClaims, error)
}

type tokenManager struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewTokenManager(secret string, accessTTL time.Duration) TokenManager {
	return newTokenManager(secret, accessTTL, time.Now)
}

func newTokenManager(secret string, accessTTL time.Duration, now func() time.Time) *tokenManager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &tokenManager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       now,
	}
}

func (m *tokenManager) GenerateAccessToken(userID int32, email string) (string, error) {
	now := m.now()
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		Type:   TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(userID)),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audienceAccess},
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc, m.parserOptions(audienceAccess)...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != TokenTypeAccess {
		return nil, ErrWrongTokenType
	}

	// Populate UserID from Subject if it was lost (though we set both)
	if claims.UserID == 0 && claims.Subject != "" {
		uid, _ := strconv.Atoi(claims.Subject)
		claims.UserID = int32(uid)
	}
	return claims, nil
}

func (m *tokenManager) GenerateInvitationToken(requestID int32, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(ttl)
	claims := InvitationClaims{
		RequestID: requestID,
		Type:      TokenTypeInvitation,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(int(requestID)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audienceInvitation},
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (m *tokenManager) ValidateInvitationToken(tokenString string) (*InvitationClaims, error) {
	claims := &InvitationClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc, m.parserOptions(audienceInvitation)...)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrInvalidToken
		}
		// Re-check the signature alone so an expired offer still identifies its request.
		claims = &InvitationClaims{}
		opts := append(m.parserOptions(audienceInvitation), jwt.WithoutClaimsValidation())
		if _, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc, opts...); err != nil {
			return nil, ErrInvalidToken
		}
		if claims.Type != TokenTypeInvitation || claims.RequestID == 0 {
			return nil, ErrInvalidToken
		}
		return claims, ErrExpiredToken
	}
	if claims.Type != TokenTypeInvitation || claims.RequestID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *tokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrInvalidToken
	}
	return m.secret, nil
}

func (m *tokenManager) parserOptions(audience string) []jwt.ParserOption {
	return []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(m.now),
	}
}
