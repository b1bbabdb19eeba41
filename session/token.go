package session

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const localCredentialExpiry = 24 * time.Hour

// mintCredential creates the opaque bearer credential installed after a
// local login or signup. It happens to be a signed JWT, but nothing in the
// session layer ever parses it back.
func mintCredential(secret []byte, user Identity, now time.Time) (string, error) {
	claims := jwtlib.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(localCredentialExpiry).Unix(),
		"jti":   uuid.New().String(),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("[mintCredential] sign: %w", err)
	}
	return signed, nil
}
