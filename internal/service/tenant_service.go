// internal/service/tenant_service.go
package service

import (
	"context"
	"errors"
	"time"

	"quizkeep/internal/config"
	"quizkeep/internal/middleware"
	"quizkeep/internal/model"
	"quizkeep/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// tokenLifetime は発行するアクセストークンの有効期間です。
const tokenLifetime = 30 * 24 * time.Hour

type TenantService interface {
	CreateTenant(ctx context.Context, req *model.CreateTenantRequest) (*model.CreateTenantResponse, error)
	GetTenant(ctx context.Context, tenantID uuid.UUID) (*model.Tenant, error)
}

type tenantService struct {
	db         *gorm.DB
	tenantRepo repository.TenantRepository
	cfg        *config.Config
}

func NewTenantService(db *gorm.DB, repo repository.TenantRepository, cfg *config.Config) TenantService {
	return &tenantService{db: db, tenantRepo: repo, cfg: cfg}
}

// CreateTenant はテナントを作成し、以後のAPI呼び出しに使うトークンを発行します。
func (s *tenantService) CreateTenant(ctx context.Context, req *model.CreateTenantRequest) (*model.CreateTenantResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_name", req.Name)

	tenant := &model.Tenant{
		TenantID: uuid.New(), // Service層でUUIDを生成
		Name:     req.Name,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tenantRepo.Create(ctx, tx, tenant); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("CONFLICT", "同じ名前のテナントが既に存在します。", "name", model.ErrConflict)
			}
			logger.Error("Error creating tenant in repo", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "テナントの作成に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(tenant.TenantID)
	if err != nil {
		logger.Error("Error issuing token for new tenant", "error", err, "tenant_id", tenant.TenantID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの発行に失敗しました。", "", err)
	}

	logger.Info("Tenant created", "tenant_id", tenant.TenantID.String())

	return &model.CreateTenantResponse{
		TenantID:  tenant.TenantID,
		Name:      tenant.Name,
		Token:     token,
		CreatedAt: tenant.CreatedAt,
	}, nil
}

// GetTenant は指定されたIDのテナントを取得します (認証用などに利用)
func (s *tenantService) GetTenant(ctx context.Context, tenantID uuid.UUID) (*model.Tenant, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, s.db, tenantID)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// issueToken はテナントIDをsubjectに持つHS256署名のJWTを発行します。
func (s *tenantService) issueToken(tenantID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   tenantID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}
