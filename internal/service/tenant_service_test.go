// internal/service/tenant_service_test.go
package service

import (
	"context"
	"testing"

	"quizkeep/internal/config"
	"quizkeep/internal/model"
	"quizkeep/internal/repository/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret-key"

func setupTestDBTenant(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Tenant{}))
	return db
}

func newTenantServiceForTest(t *testing.T, db *gorm.DB) (TenantService, *mocks.TenantRepository) {
	repo := new(mocks.TenantRepository)
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = testJWTSecret
	return NewTenantService(db, repo, cfg), repo
}

func Test_tenantService_CreateTenant(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: テナントが作成されトークンが発行される", func(t *testing.T) {
		db := setupTestDBTenant(t)
		svc, repo := newTenantServiceForTest(t, db)
		req := &model.CreateTenantRequest{Name: "study-group-a"}
		repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(tn *model.Tenant) bool {
			return tn.Name == req.Name && tn.TenantID != uuid.Nil
		})).Return(nil).Once()

		resp, err := svc.CreateTenant(ctx, req)

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "study-group-a", resp.Name)
		assert.NotEqual(t, uuid.Nil, resp.TenantID)
		require.NotEmpty(t, resp.Token)

		// 発行されたトークンのsubjectがテナントIDであることを確認する
		parsed, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(testJWTSecret), nil
		})
		require.NoError(t, err)
		claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
		require.True(t, ok)
		assert.Equal(t, resp.TenantID.String(), claims.Subject)
		repo.AssertExpectations(t)
	})

	t.Run("異常系: 同じ名前のテナントが既に存在する", func(t *testing.T) {
		db := setupTestDBTenant(t)
		svc, repo := newTenantServiceForTest(t, db)
		repo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Tenant")).
			Return(model.ErrConflict).Once()

		resp, err := svc.CreateTenant(ctx, &model.CreateTenantRequest{Name: "dup"})

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		assert.Nil(t, resp)
	})
}

func Test_tenantService_GetTenant(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("正常系: テナントが取得できる", func(t *testing.T) {
		db := setupTestDBTenant(t)
		svc, repo := newTenantServiceForTest(t, db)
		tenant := &model.Tenant{TenantID: tenantID, Name: "study-group-a"}
		repo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID).Return(tenant, nil).Once()

		got, err := svc.GetTenant(ctx, tenantID)

		require.NoError(t, err)
		assert.Equal(t, tenantID, got.TenantID)
	})

	t.Run("異常系: テナントが存在しない", func(t *testing.T) {
		db := setupTestDBTenant(t)
		svc, repo := newTenantServiceForTest(t, db)
		repo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID).
			Return(nil, model.ErrNotFound).Once()

		got, err := svc.GetTenant(ctx, tenantID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
	})
}
