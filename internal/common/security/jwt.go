package security

import (
	"errors"
	"time"

	"elibrary/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken mints a session token for the given user. The jti claim is
// what the sign-out denylist keys on.
func GenerateToken(userID, email, role string) (tokenString, jti string, expiresAt time.Time, err error) {
	jti = uuid.NewString()
	expiresAt = time.Now().Add(config.AppConfig.JWTExp)
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"jti":     jti,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err = TokenAuth.Encode(claims)
	return tokenString, jti, expiresAt, err
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims map[string]interface{}) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}

func GetEmailFromClaims(claims map[string]interface{}) (string, error) {
	email, ok := claims["email"].(string)
	if !ok {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}

func GetJTIFromClaims(claims map[string]interface{}) (string, error) {
	jti, ok := claims["jti"].(string)
	if !ok {
		return "", errors.New("jti claim is missing or not a string")
	}
	return jti, nil
}
