// internal/service/deck_service.go
package service

import (
	"context"
	"errors"

	"quizkeep/internal/middleware"
	"quizkeep/internal/model"
	"quizkeep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeckService interface {
	CreateDeck(ctx context.Context, tenantID uuid.UUID, req *model.CreateDeckRequest) (*model.Deck, error)
	ListDecks(ctx context.Context, tenantID uuid.UUID) ([]*model.Deck, error)
	GetDeck(ctx context.Context, tenantID, deckID uuid.UUID) (*model.Deck, error)
	DeleteDeck(ctx context.Context, tenantID, deckID uuid.UUID) error
	CreateCard(ctx context.Context, tenantID, deckID uuid.UUID, req *model.CreateCardRequest) (*model.Card, error)
	ListCards(ctx context.Context, tenantID, deckID uuid.UUID) ([]*model.Card, error)
	DeleteCard(ctx context.Context, tenantID, cardID uuid.UUID) error
}

type deckService struct {
	db       *gorm.DB
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
	progRepo repository.ProgressRepository
}

func NewDeckService(db *gorm.DB, deckRepo repository.DeckRepository, cardRepo repository.CardRepository, progRepo repository.ProgressRepository) DeckService {
	return &deckService{
		db:       db,
		deckRepo: deckRepo,
		cardRepo: cardRepo,
		progRepo: progRepo,
	}
}

func (s *deckService) CreateDeck(ctx context.Context, tenantID uuid.UUID, req *model.CreateDeckRequest) (*model.Deck, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "deck_name", req.Name)

	deck := &model.Deck{
		DeckID:   uuid.New(),
		TenantID: tenantID,
		Name:     req.Name,
		Folder:   req.Folder,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.deckRepo.Create(ctx, tx, deck); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("CONFLICT", "同じ名前のデッキが既に存在します。", "name", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの作成に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Deck created", "deck_id", deck.DeckID.String())
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, tenantID uuid.UUID) ([]*model.Deck, error) {
	decks, err := s.deckRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキ一覧の取得に失敗しました。", "", err)
	}
	return decks, nil
}

func (s *deckService) GetDeck(ctx context.Context, tenantID, deckID uuid.UUID) (*model.Deck, error) {
	deck, err := s.deckRepo.FindByID(ctx, s.db, tenantID, deckID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの取得に失敗しました。", "", err)
	}
	return deck, nil
}

// DeleteDeck はデッキと所属カードをまとめて論理削除します。
// 進捗レコードはカード側の論理削除で参照されなくなるため残します。
func (s *deckService) DeleteDeck(ctx context.Context, tenantID, deckID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "deck_id", deckID)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.deckRepo.Delete(ctx, tx, tenantID, deckID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの削除に失敗しました。", "", err)
		}
		if err := s.cardRepo.DeleteByDeck(ctx, tx, tenantID, deckID); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの削除に失敗しました。", "", err)
		}
		logger.Info("Deck deleted")
		return nil
	})
}

func (s *deckService) CreateCard(ctx context.Context, tenantID, deckID uuid.UUID, req *model.CreateCardRequest) (*model.Card, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "deck_id", deckID)

	// デッキの存在と所有を確認する
	if _, err := s.GetDeck(ctx, tenantID, deckID); err != nil {
		return nil, err
	}

	card := &model.Card{
		CardID:   uuid.New(),
		TenantID: tenantID,
		DeckID:   deckID,
		Front:    req.Front,
		Back:     req.Back,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cardRepo.Create(ctx, tx, card); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの作成に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Card created", "card_id", card.CardID.String())
	return card, nil
}

func (s *deckService) ListCards(ctx context.Context, tenantID, deckID uuid.UUID) ([]*model.Card, error) {
	if _, err := s.GetDeck(ctx, tenantID, deckID); err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.FindByDeck(ctx, s.db, tenantID, deckID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード一覧の取得に失敗しました。", "", err)
	}
	return cards, nil
}

// DeleteCard はカードと進捗レコードをまとめて削除します。
func (s *deckService) DeleteCard(ctx context.Context, tenantID, cardID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "card_id", cardID)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.cardRepo.Delete(ctx, tx, tenantID, cardID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの削除に失敗しました。", "", err)
		}
		if err := s.progRepo.DeleteByCard(ctx, tx, tenantID, cardID); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の削除に失敗しました。", "", err)
		}
		logger.Info("Card deleted")
		return nil
	})
}
