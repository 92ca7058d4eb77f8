package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ianyokoso/ASC-Lounge-Booking-System/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

const msgAuthRequired = "로그인이 필요합니다"

// Auth возвращает middleware, извлекающий ID пользователя из сессионной
// cookie. Запросы без валидной cookie получают 401 и до обработчика
// не доходят
func Auth(cookieName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				handlers.RespondUnauthorized(w, msgAuthRequired)
				return
			}

			userID, err := strconv.ParseInt(cookie.Value, 10, 64)
			if err != nil || userID <= 0 {
				handlers.RespondUnauthorized(w, msgAuthRequired)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext возвращает ID пользователя, положенный Auth middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
