package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SPS-AvailabilityService/internal/api/handlers"
)

const (
	// TenantIDHeader заголовок с идентификатором арендатора.
	// Заполняется API-гейтвеем после проверки API-ключа.
	TenantIDHeader = "X-Tenant-ID"

	msgMissingTenantID = "заголовок X-Tenant-ID обязателен"
	msgInvalidTenantID = "некорректный заголовок X-Tenant-ID"
)

type contextKey string

const tenantIDKey contextKey = "tenantID"

// TenantAuth проверяет наличие X-Tenant-ID и кладет его в контекст запроса
func TenantAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantIDStr := r.Header.Get(TenantIDHeader)
		if tenantIDStr == "" {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidTenantID)
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID извлекает ID арендатора из контекста запроса
func GetTenantID(ctx context.Context) (int64, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(int64)
	return tenantID, ok
}
