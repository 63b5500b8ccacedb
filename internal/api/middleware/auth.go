package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/CMS-BookingService/internal/api/handlers"
)

// HeaderStaffID заголовок аутентификации сотрудника клиники
const HeaderStaffID = "X-Staff-ID"

const msgMissingStaffID = "требуется заголовок X-Staff-ID"

type contextKey string

const staffIDKey contextKey = "staffID"

// Auth проверяет наличие заголовка X-Staff-ID и кладёт его значение в контекст
// Проверка подлинности сотрудника выполняется на API gateway, здесь только
// отсечение неаутентифицированных запросов
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffID := strings.TrimSpace(r.Header.Get(HeaderStaffID))
		if staffID == "" {
			handlers.RespondUnauthorized(w, msgMissingStaffID)
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffIDFromContext возвращает ID сотрудника из контекста запроса
func StaffIDFromContext(ctx context.Context) (string, bool) {
	staffID, ok := ctx.Value(staffIDKey).(string)
	return staffID, ok
}
