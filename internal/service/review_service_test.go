// internal/service/review_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"quizkeep/internal/config"
	"quizkeep/internal/model"
	"quizkeep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBReview(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Deck{}, &model.Card{}, &model.CardProgress{}))
	return db
}

type reviewMocks struct {
	deckRepo *mocks.DeckRepository
	cardRepo *mocks.CardRepository
	progRepo *mocks.ProgressRepository
}

func newReviewServiceForTest(t *testing.T, db *gorm.DB, fixedNow time.Time, reviewLimit int) (*reviewService, *reviewMocks) {
	m := &reviewMocks{
		deckRepo: new(mocks.DeckRepository),
		cardRepo: new(mocks.CardRepository),
		progRepo: new(mocks.ProgressRepository),
	}
	cfg := &config.Config{}
	cfg.App.ReviewLimit = reviewLimit
	svc := &reviewService{
		db:       db,
		deckRepo: m.deckRepo,
		cardRepo: m.cardRepo,
		progRepo: m.progRepo,
		cfg:      cfg,
		now:      func() time.Time { return fixedNow },
	}
	return svc, m
}

func Test_reviewService_GetDueCards(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	deckID := uuid.New()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	deck := &model.Deck{DeckID: deckID, TenantID: tenantID, Name: "tcp-basics"}

	cardNew := &model.Card{CardID: uuid.New(), TenantID: tenantID, DeckID: deckID, Front: "SYN", Back: "接続要求"}
	cardDue := &model.Card{CardID: uuid.New(), TenantID: tenantID, DeckID: deckID, Front: "ACK", Back: "確認応答"}
	cardNotYet := &model.Card{CardID: uuid.New(), TenantID: tenantID, DeckID: deckID, Front: "FIN", Back: "切断要求"}

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	progressDue := &model.CardProgress{ProgressID: uuid.New(), TenantID: tenantID, CardID: cardDue.CardID, NextReviewAt: &past, ReviewCount: 2}
	progressNotYet := &model.CardProgress{ProgressID: uuid.New(), TenantID: tenantID, CardID: cardNotYet.CardID, NextReviewAt: &future, ReviewCount: 1}

	t.Run("正常系: 未採点カードと期限到来カードだけが返る", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc, m := newReviewServiceForTest(t, db, now, 20)
		m.deckRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).Return(deck, nil).Once()
		m.cardRepo.On("FindByDeck", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).
			Return([]*model.Card{cardNew, cardDue, cardNotYet}, nil).Once()
		m.progRepo.On("FindByDeck", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).
			Return([]*model.CardProgress{progressDue, progressNotYet}, nil).Once()

		cards, err := svc.GetDueCards(ctx, tenantID, deckID, false)

		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, cardNew.CardID, cards[0].CardID)
		assert.Nil(t, cards[0].NextReviewAt)
		assert.Equal(t, cardDue.CardID, cards[1].CardID)
		assert.Equal(t, 2, cards[1].ReviewCount)
		m.deckRepo.AssertExpectations(t)
		m.cardRepo.AssertExpectations(t)
		m.progRepo.AssertExpectations(t)
	})

	t.Run("正常系: 期限がちょうど今のカードは対象に含む", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc, m := newReviewServiceForTest(t, db, now, 20)
		atNow := now
		progressBoundary := &model.CardProgress{ProgressID: uuid.New(), TenantID: tenantID, CardID: cardDue.CardID, NextReviewAt: &atNow, ReviewCount: 1}
		m.deckRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).Return(deck, nil).Once()
		m.cardRepo.On("FindByDeck", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).
			Return([]*model.Card{cardDue}, nil).Once()
		m.progRepo.On("FindByDeck", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).
			Return([]*model.CardProgress{progressBoundary}, nil).Once()

		cards, err := svc.GetDueCards(ctx, tenantID, deckID, false)

		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, cardDue.CardID, cards[0].CardID)
	})

	t.Run("正常系: 上限を超える分は切り詰める", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc, m := newReviewServiceForTest(t, db, now, 2)
		manyCards := make([]*model.Card, 5)
		for i := range manyCards {
			manyCards[i] = &model.Card{CardID: uuid.New(), TenantID: tenantID, DeckID: deckID, Front: "f", Back: "b"}
		}
		m.deckRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).Return(deck, nil).Once()
		m.cardRepo.On("FindByDeck", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).
			Return(manyCards, nil).Once()
		m.progRepo.On("FindByDeck", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).
			Return([]*model.CardProgress{}, nil).Once()

		cards, err := svc.GetDueCards(ctx, tenantID, deckID, false)

		require.NoError(t, err)
		assert.Len(t, cards, 2)
	})

	t.Run("正常系: shuffle指定でもカード集合は変わらない", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc, m := newReviewServiceForTest(t, db, now, 20)
		m.deckRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).Return(deck, nil).Once()
		m.cardRepo.On("FindByDeck", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).
			Return([]*model.Card{cardNew, cardDue}, nil).Once()
		m.progRepo.On("FindByDeck", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).
			Return([]*model.CardProgress{progressDue}, nil).Once()

		cards, err := svc.GetDueCards(ctx, tenantID, deckID, true)

		require.NoError(t, err)
		require.Len(t, cards, 2)
		got := map[uuid.UUID]bool{}
		for _, c := range cards {
			got[c.CardID] = true
		}
		assert.True(t, got[cardNew.CardID])
		assert.True(t, got[cardDue.CardID])
	})

	t.Run("異常系: デッキが存在しない", func(t *testing.T) {
		db := setupTestDBReview(t)
		svc, m := newReviewServiceForTest(t, db, now, 20)
		m.deckRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, deckID).
			Return(nil, model.ErrNotFound).Once()

		cards, err := svc.GetDueCards(ctx, tenantID, deckID, false)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, cards)
	})
}

func Test_reviewService_GradeCard(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	cardID := uuid.New()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	card := &model.Card{CardID: cardID, TenantID: tenantID, DeckID: uuid.New(), Front: "SYN", Back: "接続要求"}

	tests := []struct {
		name      string
		grade     string
		setupMock func(m *reviewMocks)
		wantErr   error
		wantNext  time.Time
		wantCount int
	}{
		{
			name:  "正常系: 初回採点 good で進捗が新規作成され15分後になる",
			grade: "good",
			setupMock: func(m *reviewMocks) {
				m.cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, cardID).Return(card, nil).Once()
				m.progRepo.On("FindByCardID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, cardID).
					Return(nil, model.ErrNotFound).Once()
				m.progRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(p *model.CardProgress) bool {
					return p.CardID == cardID && p.ReviewCount == 1 &&
						p.NextReviewAt != nil && p.NextReviewAt.Equal(now.Add(15*time.Minute))
				})).Return(nil).Once()
			},
			wantNext:  now.Add(15 * time.Minute),
			wantCount: 1,
		},
		{
			name:  "正常系: 2回目以降は更新され again で10秒後になる",
			grade: "again",
			setupMock: func(m *reviewMocks) {
				prev := now.Add(-time.Hour)
				existing := &model.CardProgress{
					ProgressID: uuid.New(), TenantID: tenantID, CardID: cardID,
					NextReviewAt: &prev, LastReviewedAt: &prev, ReviewCount: 3,
				}
				m.cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, cardID).Return(card, nil).Once()
				m.progRepo.On("FindByCardID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, cardID).
					Return(existing, nil).Once()
				m.progRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(p *model.CardProgress) bool {
					return p.ReviewCount == 4 &&
						p.NextReviewAt != nil && p.NextReviewAt.Equal(now.Add(10*time.Second))
				})).Return(nil).Once()
			},
			wantNext:  now.Add(10 * time.Second),
			wantCount: 4,
		},
		{
			name:  "正常系: easy は5日後になる",
			grade: "EASY", // 大文字でも受け付ける
			setupMock: func(m *reviewMocks) {
				m.cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, cardID).Return(card, nil).Once()
				m.progRepo.On("FindByCardID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, cardID).
					Return(nil, model.ErrNotFound).Once()
				m.progRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.CardProgress")).
					Return(nil).Once()
			},
			wantNext:  now.Add(5 * 24 * time.Hour),
			wantCount: 1,
		},
		{
			name:  "正常系: 未知の評価は拒否せず既定の1日後になる",
			grade: "perfect",
			setupMock: func(m *reviewMocks) {
				m.cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, cardID).Return(card, nil).Once()
				m.progRepo.On("FindByCardID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, cardID).
					Return(nil, model.ErrNotFound).Once()
				m.progRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.CardProgress")).
					Return(nil).Once()
			},
			wantNext:  now.Add(24 * time.Hour),
			wantCount: 1,
		},
		{
			name:  "異常系: カードが存在しない",
			grade: "good",
			setupMock: func(m *reviewMocks) {
				m.cardRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), tenantID, cardID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDBReview(t)
			svc, m := newReviewServiceForTest(t, db, now, 20)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			resp, err := svc.GradeCard(ctx, tenantID, cardID, tt.grade)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.Equal(t, cardID, resp.CardID)
				assert.Equal(t, tt.wantCount, resp.ReviewCount)
				assert.True(t, resp.NextReviewAt.Equal(tt.wantNext))
				assert.True(t, resp.LastReviewedAt.Equal(now))
			}
			m.cardRepo.AssertExpectations(t)
			m.progRepo.AssertExpectations(t)
		})
	}
}
