package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/helper"
	"github.com/km-naimul/b12-a11-localchefbazaar-server-side/models"
)

type contextKey string

// EmailKey holds the verified principal email for downstream handlers.
const EmailKey contextKey = "email"

// Authentication verifies the bearer token and binds the principal email to
// the request context. It must run before AdminOnly on any admin route.
func Authentication(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientToken := r.Header.Get("Authorization")
			if clientToken == "" {
				http.Error(w, `{"success": false, "message": "No Authorization header provided"}`, http.StatusUnauthorized)
				return
			}

			tokenParts := strings.Split(clientToken, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				http.Error(w, `{"success": false, "message": "Invalid Authorization format"}`, http.StatusUnauthorized)
				return
			}

			claims, err := helper.ValidateToken(tokenParts[1], secret)
			if err != nil {
				http.Error(w, `{"success": false, "message": "Invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly looks up the principal bound by Authentication and rejects
// anyone whose user record is missing or not an admin.
func AdminOnly(users *mongo.Collection) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := EmailFromContext(r)
			if email == "" {
				http.Error(w, `{"success": false, "message": "Forbidden"}`, http.StatusForbidden)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
			defer cancel()

			var user models.User
			if err := users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
				http.Error(w, `{"success": false, "message": "Forbidden"}`, http.StatusForbidden)
				return
			}
			if user.Role != models.RoleAdmin {
				http.Error(w, `{"success": false, "message": "Admin access required"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// EmailFromContext retrieves the principal email bound by Authentication.
func EmailFromContext(r *http.Request) string {
	email, _ := r.Context().Value(EmailKey).(string)
	return email
}
