// internal/handlers/helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizkeep/internal/middleware"
	"quizkeep/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger はテスト中のハンドラログを捨てるためのロガーです。
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newProtectedRouter は開発用認証ミドルウェアを適用したテスト用ルーターを返します。
// X-Tenant-ID ヘッダーでテナントを指定します。
func newProtectedRouter(register func(r chi.Router)) *chi.Mux {
	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(middleware.DevTenantContextMiddleware)
		register(r)
	})
	return router
}

// createRequest はテスト用のHTTPリクエストを作成します。
// tenantIDが指定されていれば X-Tenant-ID ヘッダーを追加します。
func createRequest(t *testing.T, method, url string, body interface{}, tenantID *uuid.UUID) *http.Request {
	t.Helper()

	var reqBodyBytes []byte
	var err error
	if body != nil {
		switch b := body.(type) {
		case string:
			reqBodyBytes = []byte(b)
		case []byte:
			reqBodyBytes = b
		default:
			reqBodyBytes, err = json.Marshal(body)
			require.NoError(t, err, "Failed to marshal request body")
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewBuffer(reqBodyBytes))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenantID != nil {
		req.Header.Set("X-Tenant-ID", tenantID.String())
	}
	return req
}

// executeRequest はルーターに対してリクエストを実行し、レコーダーを返します。
func executeRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// verifyErrorCode はエラーレスポンスボディのエラーコードを検証します。
func verifyErrorCode(t *testing.T, bodyBytes []byte, expectedCode string) {
	t.Helper()
	if expectedCode == "" {
		return
	}
	var errResp model.APIErrorResponse
	err := json.Unmarshal(bodyBytes, &errResp)
	require.NoError(t, err, "Error response body should be valid JSON: %s", string(bodyBytes))
	assert.Equal(t, expectedCode, errResp.Error.Code, "Error code mismatch in body: %s", string(bodyBytes))
}
