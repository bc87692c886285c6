//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"quizkeep/internal/middleware"
	"quizkeep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, progress *model.CardProgress) error
	FindByCardID(ctx context.Context, db *gorm.DB, tenantID, cardID uuid.UUID) (*model.CardProgress, error)
	Update(ctx context.Context, tx *gorm.DB, progress *model.CardProgress) error
	FindByDeck(ctx context.Context, db *gorm.DB, tenantID, deckID uuid.UUID) ([]*model.CardProgress, error)
	DeleteByCard(ctx context.Context, tx *gorm.DB, tenantID, cardID uuid.UUID) error
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) Create(ctx context.Context, tx *gorm.DB, progress *model.CardProgress) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(progress)
	if result.Error != nil {
		logger.Error("Error creating card progress in DB",
			"error", result.Error,
			"tenant_id", progress.TenantID.String(),
			"card_id", progress.CardID.String(),
		)
		return fmt.Errorf("gormProgressRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormProgressRepository) FindByCardID(ctx context.Context, db *gorm.DB, tenantID, cardID uuid.UUID) (*model.CardProgress, error) {
	var progress model.CardProgress
	result := db.WithContext(ctx).
		Preload("Card").
		Where("tenant_id = ? AND card_id = ?", tenantID, cardID).
		First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormProgressRepository.FindByCardID: %w", result.Error)
	}
	// Preloadしたカードが論理削除済みなら進捗も無効とみなす
	if progress.Card != nil && progress.Card.DeletedAt.Valid {
		return nil, model.ErrNotFound
	}
	return &progress, nil
}

func (r *gormProgressRepository) Update(ctx context.Context, tx *gorm.DB, progress *model.CardProgress) error {
	// 主キーに基づく更新。存在確認は呼び出し元(Service)で行う想定
	result := tx.WithContext(ctx).Save(progress)
	if result.Error != nil {
		return fmt.Errorf("gormProgressRepository.Update: %w", result.Error)
	}
	return nil
}

// FindByDeck はデッキ内カードの進捗レコードを返します。
// 論理削除済みカードの進捗は対象外です。期限判定は呼び出し元(Service)で行います。
func (r *gormProgressRepository) FindByDeck(ctx context.Context, db *gorm.DB, tenantID, deckID uuid.UUID) ([]*model.CardProgress, error) {
	logger := middleware.GetLogger(ctx)
	var progresses []*model.CardProgress

	result := db.WithContext(ctx).
		Preload("Card", "deleted_at IS NULL").
		Joins("JOIN cards ON cards.card_id = card_progress.card_id AND cards.deleted_at IS NULL").
		Where("card_progress.tenant_id = ? AND cards.deck_id = ?", tenantID, deckID).
		Order("card_progress.created_at ASC").
		Find(&progresses)
	if result.Error != nil {
		logger.Error("Error finding card progress by deck in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"deck_id", deckID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByDeck: %w", result.Error)
	}

	return progresses, nil
}

func (r *gormProgressRepository) DeleteByCard(ctx context.Context, tx *gorm.DB, tenantID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).
		Where("tenant_id = ? AND card_id = ?", tenantID, cardID).
		Delete(&model.CardProgress{})
	if result.Error != nil {
		logger.Error("Error deleting card progress in DB",
			"error", result.Error,
			"tenant_id", tenantID.String(),
			"card_id", cardID.String(),
		)
		return fmt.Errorf("gormProgressRepository.DeleteByCard: %w", result.Error)
	}
	return nil
}
