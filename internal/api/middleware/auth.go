package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CourtBookingService/internal/api/handlers"
)

// UserIDHeader заголовок с ID участника клуба, проставляется gateway
const UserIDHeader = "X-User-ID"

const msgUnauthorized = "отсутствует или некорректен заголовок X-User-ID"

type ctxKey struct{}

// Auth извлекает ID участника из заголовка X-User-ID и кладёт его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID возвращает контекст с ID участника
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// GetUserID ID участника, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(ctxKey{}).(int64)
	return userID, ok
}
