package auth

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sprintboard-dev/sprintboard/internal/types"
)

var jwtSecret string

const (
	accessTokenTTL  = time.Hour
	refreshTokenTTL = time.Hour * 168
)

func InitJWTSecret() error {
	jwtSecret = os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return nil
}

// GenerateTokenPair issues the access/refresh pair returned by the register
// and login endpoints.
func GenerateTokenPair(userID uint, username string) (types.TokenPair, error) {
	access, err := signToken(userID, username, "access", accessTokenTTL)
	if err != nil {
		return types.TokenPair{}, err
	}

	refresh, err := signToken(userID, username, "refresh", refreshTokenTTL)
	if err != nil {
		return types.TokenPair{}, err
	}

	return types.TokenPair{Access: access, Refresh: refresh}, nil
}

func signToken(userID uint, username, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"username":   username,
		"token_type": tokenType,
		"exp":        time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func VerifyJWT(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	return token, nil
}
