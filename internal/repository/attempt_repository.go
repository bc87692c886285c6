//go:generate mockery --name AttemptRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"quizkeep/internal/middleware"
	"quizkeep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *model.QuizAttempt) error
	FindByQuiz(ctx context.Context, db *gorm.DB, tenantID, quizID uuid.UUID) ([]*model.QuizAttempt, error)
	DeleteByQuiz(ctx context.Context, tx *gorm.DB, tenantID, quizID uuid.UUID) error
}

type gormAttemptRepository struct{}

func NewGormAttemptRepository() AttemptRepository {
	return &gormAttemptRepository{}
}

func (r *gormAttemptRepository) Create(ctx context.Context, tx *gorm.DB, attempt *model.QuizAttempt) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(attempt)
	if result.Error != nil {
		logger.Error("Error creating quiz attempt in DB",
			"error", result.Error,
			"tenant_id", attempt.TenantID.String(),
			"quiz_id", attempt.QuizID.String(),
		)
		return fmt.Errorf("gormAttemptRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormAttemptRepository) FindByQuiz(ctx context.Context, db *gorm.DB, tenantID, quizID uuid.UUID) ([]*model.QuizAttempt, error) {
	logger := middleware.GetLogger(ctx)
	var attempts []*model.QuizAttempt
	result := db.WithContext(ctx).
		Where("tenant_id = ? AND quiz_id = ?", tenantID, quizID).
		Order("taken_at DESC").
		Find(&attempts)
	if result.Error != nil {
		logger.Error("Error finding quiz attempts in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"quiz_id", quizID.String(),
		)
		return nil, fmt.Errorf("gormAttemptRepository.FindByQuiz: %w", result.Error)
	}
	return attempts, nil
}

func (r *gormAttemptRepository) DeleteByQuiz(ctx context.Context, tx *gorm.DB, tenantID, quizID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("tenant_id = ? AND quiz_id = ?", tenantID, quizID).
		Delete(&model.QuizAttempt{})
	if result.Error != nil {
		logger.Error("Error deleting quiz attempts in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"quiz_id", quizID.String(),
		)
		return fmt.Errorf("gormAttemptRepository.DeleteByQuiz: %w", result.Error)
	}
	return nil
}
