// internal/model/attempt.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizAttempt はクイズの受験履歴を表します
type QuizAttempt struct {
	AttemptID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"attempt_id"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	QuizID        uuid.UUID `gorm:"type:uuid;not null;index" json:"quiz_id"`
	CorrectCount  int       `gorm:"not null" json:"correct_count"`
	QuestionCount int       `gorm:"not null" json:"question_count"`
	ScorePercent  float64   `gorm:"not null" json:"score_percent"`
	AnswersJSON   string    `gorm:"not null" json:"-"` // 提出された回答 (JSON)
	TakenAt       time.Time `gorm:"not null;index" json:"taken_at"`

	// 関連 (Preload用)
	Quiz *Quiz `gorm:"foreignKey:QuizID;references:QuizID" json:"-"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// AnswerSubmission は1設問分の回答DTO。
// MCQ/YESNO は selected、MULTI は selections を使います（形の推測はしない）。
type AnswerSubmission struct {
	QuestionID int      `json:"question_id" validate:"required,min=1"`
	Selected   *string  `json:"selected,omitempty"`
	Selections []string `json:"selections,omitempty"`
}

// SubmitAttemptRequest は受験結果送信APIのリクエストDTO
type SubmitAttemptRequest struct {
	Answers []AnswerSubmission `json:"answers" validate:"required,min=1,dive"`
}

// QuestionResult は設問ごとの採点結果DTO
type QuestionResult struct {
	QuestionID int  `json:"question_id"`
	Correct    bool `json:"correct"`
}

// AttemptResultResponse は採点結果のレスポンスDTO
type AttemptResultResponse struct {
	AttemptID     uuid.UUID        `json:"attempt_id"`
	CorrectCount  int              `json:"correct_count"`
	QuestionCount int              `json:"question_count"`
	ScorePercent  float64          `json:"score_percent"`
	Results       []QuestionResult `json:"results"`
	TakenAt       time.Time        `json:"taken_at"`
}
