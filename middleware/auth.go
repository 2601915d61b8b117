package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware проверяет JWT токен и кладет данные клиента в контекст запроса
func AuthMiddleware(jwtKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			// Убираем префикс "Bearer " если он есть
			tokenString = strings.TrimPrefix(tokenString, "Bearer ")

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return jwtKey, nil
			})

			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			clientID, ok := claims["client_id"].(float64)
			if !ok {
				http.Error(w, "Invalid client_id in token", http.StatusUnauthorized)
				return
			}

			email, _ := claims["email"].(string)

			r.Header.Set("X-Client-ID", strconv.FormatUint(uint64(clientID), 10))

			ctx := r.Context()
			ctx = context.WithValue(ctx, "client_id", uint(clientID))
			ctx = context.WithValue(ctx, "email", email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientFromContext получает информацию о клиенте из контекста
func GetClientFromContext(r *http.Request) (uint, string, error) {
	clientID, ok := r.Context().Value("client_id").(uint)
	if !ok {
		return 0, "", fmt.Errorf("client_id not found in context")
	}

	email, ok := r.Context().Value("email").(string)
	if !ok {
		return 0, "", fmt.Errorf("email not found in context")
	}

	return clientID, email, nil
}
