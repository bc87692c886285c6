//go:generate mockery --name QuizRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"quizkeep/internal/middleware"
	"quizkeep/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *model.Quiz) error
	FindByID(ctx context.Context, db *gorm.DB, tenantID, quizID uuid.UUID) (*model.Quiz, error)
	FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Quiz, error)
	Delete(ctx context.Context, tx *gorm.DB, tenantID, quizID uuid.UUID) error
	CheckNameExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, name string) (bool, error)
}

type gormQuizRepository struct{}

func NewGormQuizRepository() QuizRepository {
	return &gormQuizRepository{}
}

func (r *gormQuizRepository) Create(ctx context.Context, tx *gorm.DB, quiz *model.Quiz) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(quiz)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create quiz",
				"error", result.Error,
				"tenant_id", quiz.TenantID.String(),
				"name", quiz.Name,
			)
			return model.ErrConflict
		}
		logger.Error("Error creating quiz in DB",
			"error", result.Error,
			"tenant_id", quiz.TenantID.String(),
			"name", quiz.Name,
		)
		return fmt.Errorf("gormQuizRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormQuizRepository) FindByID(ctx context.Context, db *gorm.DB, tenantID, quizID uuid.UUID) (*model.Quiz, error) {
	logger := middleware.GetLogger(ctx)
	var quiz model.Quiz
	result := db.WithContext(ctx).Where("tenant_id = ? AND quiz_id = ?", tenantID, quizID).First(&quiz)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding quiz by ID in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"quiz_id", quizID.String(),
		)
		return nil, fmt.Errorf("gormQuizRepository.FindByID: %w", result.Error)
	}
	return &quiz, nil
}

func (r *gormQuizRepository) FindByTenant(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) ([]*model.Quiz, error) {
	logger := middleware.GetLogger(ctx)
	var quizzes []*model.Quiz
	result := db.WithContext(ctx).Where("tenant_id = ?", tenantID).Order("created_at DESC").Find(&quizzes)
	if result.Error != nil {
		logger.Error("Error finding quizzes by tenant in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
		)
		return nil, fmt.Errorf("gormQuizRepository.FindByTenant: %w", result.Error)
	}
	return quizzes, nil
}

func (r *gormQuizRepository) Delete(ctx context.Context, tx *gorm.DB, tenantID, quizID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("tenant_id = ?", tenantID).Delete(&model.Quiz{}, quizID)
	if result.Error != nil {
		logger.Error("Error deleting quiz in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"quiz_id", quizID.String(),
		)
		return fmt.Errorf("gormQuizRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormQuizRepository) CheckNameExists(ctx context.Context, db *gorm.DB, tenantID uuid.UUID, name string) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Quiz{}).Where("tenant_id = ? AND name = ?", tenantID, name).Count(&count)
	if result.Error != nil {
		logger.Error("Error checking quiz name existence in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"name", name,
		)
		return false, fmt.Errorf("gormQuizRepository.CheckNameExists: %w", result.Error)
	}
	return count > 0, nil
}
