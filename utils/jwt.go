package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/frans1979valk/vastelijn-portal/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateJWT issues an HS256 bearer token with the user id as subject
// and the role claim, expiring after the configured token lifetime.
func GenerateJWT(userID uint, role string) (string, error) {
	exp := time.Now().Add(time.Duration(config.JWTExpireMinutes()) * time.Minute)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(userID), 10),
		"role": role,
		"exp":  exp.Unix(),
	})
	return token.SignedString([]byte(config.JWTSecret()))
}

// ParseToken verifies signature and expiry and returns the user id and role.
func ParseToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.JWTSecret()), nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	uid, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, "", ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	return uint(uid), role, nil
}
