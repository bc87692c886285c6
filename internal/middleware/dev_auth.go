// internal/middleware/dev_auth.go
package middleware

import (
	"context"
	"net/http"

	"quizkeep/internal/model"
	"quizkeep/internal/webutil"

	"github.com/google/uuid"
)

// DevTenantContextMiddleware は開発時用ミドルウェアです。
// X-Tenant-ID ヘッダーからUUIDを抽出し、コンテキストに設定します。
// DBでのテナント存在チェックは行いません。
func DevTenantContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		tenantIDStr := r.Header.Get("X-Tenant-ID")
		if tenantIDStr == "" {
			// 開発時でも Tenant ID は必須とする
			logger.Warn("Dev auth failed: X-Tenant-ID header missing")
			webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "X-Tenant-IDヘッダーが必要です。", "", model.ErrForbidden))
			return
		}

		tenantID, err := uuid.Parse(tenantIDStr)
		if err != nil {
			logger.Warn("Dev auth failed: Invalid X-Tenant-ID format", "value", tenantIDStr)
			webutil.HandleError(w, model.NewAppError("UNAUTHORIZED", "X-Tenant-IDヘッダーの形式が正しくありません。", "", model.ErrForbidden))
			return
		}

		ctx := context.WithValue(r.Context(), model.TenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
