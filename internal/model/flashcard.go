// internal/model/flashcard.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deck はフラッシュカードのまとまり（セット）を表します
type Deck struct {
	DeckID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"deck_id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_tenant_deck_name,unique" json:"-"`
	Name      string         `gorm:"not null;index:idx_tenant_deck_name,unique" json:"name"`
	Folder    string         `gorm:"index" json:"folder,omitempty"` // 整理用フォルダ (任意)
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Cards []Card `gorm:"foreignKey:DeckID;references:DeckID" json:"-"`
}

func (Deck) TableName() string {
	return "decks"
}

// Card は1枚のフラッシュカードを表します
type Card struct {
	CardID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"card_id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	DeckID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"deck_id"`
	Front     string         `gorm:"not null" json:"front"`
	Back      string         `gorm:"not null" json:"back"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Progress *CardProgress `gorm:"foreignKey:CardID;references:CardID" json:"-"`
}

func (Card) TableName() string {
	return "cards"
}

// CardProgress はカードの復習進捗を表します。
// 初回採点時に作成され、以後は更新のみ行います。
// NextReviewAt が NULL のカードは「即時復習対象」です。
type CardProgress struct {
	ProgressID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_tenant_card,unique"`
	CardID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_tenant_card,unique"`
	NextReviewAt   *time.Time `gorm:"index"`
	LastReviewedAt *time.Time
	ReviewCount    int `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// 関連 (Preload用)
	Card *Card `gorm:"foreignKey:CardID;references:CardID" json:"-"`
}

func (CardProgress) TableName() string {
	return "card_progress"
}

// NextReviewTime は次回復習時刻を返します (srs.Schedulable の実装)。
func (p *CardProgress) NextReviewTime() *time.Time {
	return p.NextReviewAt
}

// CreateDeckRequest はデッキ作成リクエストDTO
type CreateDeckRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=200"`
	Folder string `json:"folder,omitempty" validate:"omitempty,max=200"`
}

// CreateCardRequest はカード作成リクエストDTO
type CreateCardRequest struct {
	Front string `json:"front" validate:"required,min=1"`
	Back  string `json:"back" validate:"required,min=1"`
}

// GradeCardRequest は採点送信リクエストDTO。
// grade は again / hard / good / easy のいずれか（未知の値は既定の間隔になります）。
type GradeCardRequest struct {
	Grade string `json:"grade" validate:"required,min=1,max=20"`
}

// ReviewCardResponse は復習対象カードのレスポンスDTO
type ReviewCardResponse struct {
	CardID       uuid.UUID  `json:"card_id"`
	DeckID       uuid.UUID  `json:"deck_id"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	ReviewCount  int        `json:"review_count"`
	NextReviewAt *time.Time `json:"next_review_at,omitempty"`
}

// GradeCardResponse は採点結果のレスポンスDTO
type GradeCardResponse struct {
	CardID         uuid.UUID `json:"card_id"`
	Grade          string    `json:"grade"`
	ReviewCount    int       `json:"review_count"`
	NextReviewAt   time.Time `json:"next_review_at"`
	LastReviewedAt time.Time `json:"last_reviewed_at"`
}
