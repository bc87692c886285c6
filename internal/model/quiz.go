// internal/model/quiz.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizkeep/internal/quizformat"
)

// Quiz はインポートされた問題セットを表します。
// 設問はCSV本文を正とし、行単位では保存しません（配信時にパースします）。
type Quiz struct {
	QuizID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"quiz_id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_tenant_quiz_name,unique" json:"-"`
	Name      string         `gorm:"not null;index:idx_tenant_quiz_name,unique" json:"name"`
	CSVText   string         `gorm:"not null" json:"-"` // 設問CSV本文
	PDFRef    string         `json:"pdf_ref,omitempty"` // 参照資料 (任意)
	Tag       string         `gorm:"index" json:"tag,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Attempts []QuizAttempt `gorm:"foreignKey:QuizID;references:QuizID" json:"-"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// ImportQuizRequest はクイズインポートAPIのリクエストDTO
type ImportQuizRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=200"`
	CSV    string `json:"csv" validate:"required"`
	PDFRef string `json:"pdf_ref,omitempty" validate:"omitempty,max=500"`
	Tag    string `json:"tag,omitempty" validate:"omitempty,max=100"`
}

// QuizSummaryResponse はクイズ一覧のレスポンスDTO
type QuizSummaryResponse struct {
	QuizID        uuid.UUID `json:"quiz_id"`
	Name          string    `json:"name"`
	Tag           string    `json:"tag,omitempty"`
	PDFRef        string    `json:"pdf_ref,omitempty"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuestionResponse は配信用の設問DTO。
// 選択肢の表示順はシャッフルされることがありますが、正解の意味は変わりません。
type QuestionResponse struct {
	ID        int      `json:"id"`
	Type      string   `json:"type"`
	Text      string   `json:"text"`
	Options   []string `json:"options"`
	SlidePage *int     `json:"slide_page,omitempty"`
	SlideNote string   `json:"slide_note,omitempty"`
}

// NewQuestionResponse はエンジンの設問から配信DTOを作ります。
func NewQuestionResponse(q quizformat.Question) QuestionResponse {
	resp := QuestionResponse{
		ID:      q.ID,
		Type:    string(q.Type),
		Text:    q.Text,
		Options: q.Options,
	}
	if q.Slide != nil {
		if q.Slide.Page > 0 {
			page := q.Slide.Page
			resp.SlidePage = &page
		} else {
			resp.SlideNote = q.Slide.Note
		}
	}
	return resp
}
