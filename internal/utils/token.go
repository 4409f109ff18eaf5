package utils

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued access token stays valid.
const TokenLifetime = 24 * time.Hour

// GenerateToken issues an HS256 access token carrying the user's identity.
func GenerateToken(userID, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(TokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET_KEY")))
}
