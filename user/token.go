package user

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("change-me-in-prod")

// SetJWTSecret overrides the signing key; main calls this from config
// before any token is issued.
func SetJWTSecret(s string) {
	jwtSecret = []byte(s)
}

func GenerateJWT(userID int, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// ExtractUserIDFromToken verifies the token and returns the viewer id.
func ExtractUserIDFromToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}
	uid, ok := claims["user_id"].(float64)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return int(uid), nil
}

// JwtMiddleware resolves the viewer identity from the Authorization
// header and forwards it to the handler via the User-ID header. Core
// functions only ever see the explicit viewer id.
func JwtMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if tokenString == "" {
			http.Error(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		userID, err := ExtractUserIDFromToken(tokenString)
		if err != nil {
			log.Printf("[JWT] Invalid token: %v", err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		r.Header.Set("User-ID", strconv.Itoa(userID))
		next(w, r)
	}
}

// ViewerID reads the viewer identity set by JwtMiddleware.
func ViewerID(r *http.Request) (int, error) {
	return strconv.Atoi(r.Header.Get("User-ID"))
}
