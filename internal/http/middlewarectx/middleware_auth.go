// Package middlewarectx содержит HTTP middleware сервиса: проверку токена
// администратора, ограничение частоты запросов и сбор метрик.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/http/response"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/jwt"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// Subject ключ субъекта токена в контексте
	Subject Key = "subject"
	// Role ключ роли в контексте
	Role Key = "role"
)

// TokenParser проверяет JWT и возвращает его данные.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.Claims, error)
}

// AdminMiddleware пропускает только запросы с валидным Bearer-токеном роли admin.
// Отсутствующий или невалидный токен даёт 401, чужая роль даёт 403.
func AdminMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			claims, err := parser.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			if claims.Role != jwt.RoleAdmin {
				log.Warn("access denied", slog.String("subject", claims.Subject), slog.String("role", claims.Role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin role required"))
				return
			}

			ctx := context.WithValue(r.Context(), Subject, claims.Subject)
			ctx = context.WithValue(ctx, Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
