package authControllers

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

const (
	sessionTokenTTL = 7 * 24 * time.Hour
	resetTokenTTL   = 15 * time.Minute
)

func signToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// issueSessionToken creates the 7-day login token delivered as a cookie
// and in the response body.
func issueSessionToken(userID string) (string, error) {
	return signToken(jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(sessionTokenTTL).Unix(),
	})
}

// issueResetToken creates the short-lived token embedded in reset links.
func issueResetToken(userID string) (string, error) {
	return signToken(jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(resetTokenTTL).Unix(),
	})
}

// verifyUserToken returns the user id a token was issued for,
// distinguishing expiry from every other failure.
func verifyUserToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", ErrTokenInvalid
	}
	return id, nil
}
