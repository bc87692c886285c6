// internal/service/review_service.go
package service

import (
	"context"
	"errors"
	"time"

	"quizkeep/internal/config"
	"quizkeep/internal/middleware"
	"quizkeep/internal/model"
	"quizkeep/internal/repository"
	"quizkeep/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewService interface {
	GetDueCards(ctx context.Context, tenantID, deckID uuid.UUID, shuffle bool) ([]*model.ReviewCardResponse, error)
	GradeCard(ctx context.Context, tenantID, cardID uuid.UUID, grade string) (*model.GradeCardResponse, error)
}

type reviewService struct {
	db       *gorm.DB
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
	progRepo repository.ProgressRepository
	cfg      *config.Config
	now      func() time.Time // テストで固定時刻を注入する
}

func NewReviewService(db *gorm.DB, deckRepo repository.DeckRepository, cardRepo repository.CardRepository, progRepo repository.ProgressRepository, cfg *config.Config) ReviewService {
	return &reviewService{
		db:       db,
		deckRepo: deckRepo,
		cardRepo: cardRepo,
		progRepo: progRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// GetDueCards はデッキ内で復習期限を迎えたカードを返します。
// 一度も採点されていないカードは即時復習対象です。
func (s *reviewService) GetDueCards(ctx context.Context, tenantID, deckID uuid.UUID, shuffle bool) ([]*model.ReviewCardResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "deck_id", deckID)

	if _, err := s.deckRepo.FindByID(ctx, s.db, tenantID, deckID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "デッキが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの取得に失敗しました。", "", err)
	}

	cards, err := s.cardRepo.FindByDeck(ctx, s.db, tenantID, deckID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カード一覧の取得に失敗しました。", "", err)
	}

	progresses, err := s.progRepo.FindByDeck(ctx, s.db, tenantID, deckID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の取得に失敗しました。", "", err)
	}

	progressByCard := make(map[uuid.UUID]*model.CardProgress, len(progresses))
	for _, p := range progresses {
		progressByCard[p.CardID] = p
	}

	// 進捗レコードの無いカードは NextReviewAt=NULL の進捗とみなして期限判定にかける
	candidates := make([]*model.CardProgress, 0, len(cards))
	for _, card := range cards {
		p, ok := progressByCard[card.CardID]
		if !ok {
			p = &model.CardProgress{TenantID: tenantID, CardID: card.CardID, Card: card}
		} else if p.Card == nil {
			p.Card = card
		}
		candidates = append(candidates, p)
	}

	due := srs.DueCards(candidates, s.now())
	if len(due) > s.cfg.App.ReviewLimit {
		due = due[:s.cfg.App.ReviewLimit]
	}

	responses := make([]*model.ReviewCardResponse, 0, len(due))
	for _, p := range due {
		if p.Card == nil {
			logger.Warn("Found progress with nil Card during review generation, skipping", "card_id", p.CardID)
			continue
		}
		responses = append(responses, &model.ReviewCardResponse{
			CardID:       p.CardID,
			DeckID:       p.Card.DeckID,
			Front:        p.Card.Front,
			Back:         p.Card.Back,
			ReviewCount:  p.ReviewCount,
			NextReviewAt: p.NextReviewAt,
		})
	}

	if shuffle {
		responses = srs.Shuffle(responses)
	}

	logger.Info("Successfully retrieved due cards", "count", len(responses))
	return responses, nil
}

// GradeCard は自己評価に応じて次回復習時刻を更新します。
// 進捗レコードが無ければ新規作成します (初回採点)。
func (s *reviewService) GradeCard(ctx context.Context, tenantID, cardID uuid.UUID, gradeRaw string) (*model.GradeCardResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "card_id", cardID)

	grade, known := srs.ParseGrade(gradeRaw)
	if !known {
		// 未知の評価は拒否せず既定の間隔で処理する
		logger.Warn("Unknown grade received, using default interval", "grade", gradeRaw)
	}

	var resp *model.GradeCardResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// カードの存在と所有を確認する
		if _, err := s.cardRepo.FindByID(ctx, tx, tenantID, cardID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "カードが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "カードの確認中にエラーが発生しました。", "", err)
		}

		progress, err := s.progRepo.FindByCardID(ctx, tx, tenantID, cardID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding progress in transaction", "error", err)
			return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の確認中にエラーが発生しました。", "", err)
		}
		isFound := !errors.Is(err, model.ErrNotFound)

		prev := srs.Progress{}
		if isFound {
			prev = srs.Progress{
				NextReviewAt:   progress.NextReviewAt,
				LastReviewedAt: progress.LastReviewedAt,
				ReviewCount:    progress.ReviewCount,
			}
		}
		next := srs.Review(prev, grade, s.now())

		if !isFound {
			logger.Info("Progress not found, creating new progress.", "grade", string(grade))
			newProgress := &model.CardProgress{
				ProgressID:     uuid.New(),
				TenantID:       tenantID,
				CardID:         cardID,
				NextReviewAt:   next.NextReviewAt,
				LastReviewedAt: next.LastReviewedAt,
				ReviewCount:    next.ReviewCount,
			}
			if createErr := s.progRepo.Create(ctx, tx, newProgress); createErr != nil {
				logger.Error("Error creating new progress", "error", createErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の作成に失敗しました。", "", createErr)
			}
			progress = newProgress
		} else {
			logger.Info("Updating existing progress.", "grade", string(grade))
			progress.NextReviewAt = next.NextReviewAt
			progress.LastReviewedAt = next.LastReviewedAt
			progress.ReviewCount = next.ReviewCount
			if updateErr := s.progRepo.Update(ctx, tx, progress); updateErr != nil {
				logger.Error("Error updating existing progress", "error", updateErr)
				return model.NewAppError("INTERNAL_SERVER_ERROR", "学習進捗の更新に失敗しました。", "", updateErr)
			}
		}

		resp = &model.GradeCardResponse{
			CardID:         cardID,
			Grade:          string(grade),
			ReviewCount:    progress.ReviewCount,
			NextReviewAt:   *progress.NextReviewAt,
			LastReviewedAt: *progress.LastReviewedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
