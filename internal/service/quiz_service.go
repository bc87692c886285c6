// internal/service/quiz_service.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quizkeep/internal/middleware"
	"quizkeep/internal/model"
	"quizkeep/internal/quizformat"
	"quizkeep/internal/repository"
	"quizkeep/internal/srs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizService interface {
	ImportQuiz(ctx context.Context, tenantID uuid.UUID, req *model.ImportQuizRequest) (*model.QuizSummaryResponse, error)
	ListQuizzes(ctx context.Context, tenantID uuid.UUID) ([]*model.QuizSummaryResponse, error)
	GetQuiz(ctx context.Context, tenantID, quizID uuid.UUID) (*model.QuizSummaryResponse, error)
	DeleteQuiz(ctx context.Context, tenantID, quizID uuid.UUID) error
	GetQuestions(ctx context.Context, tenantID, quizID uuid.UUID, shuffle bool) ([]model.QuestionResponse, error)
	SubmitAttempt(ctx context.Context, tenantID, quizID uuid.UUID, req *model.SubmitAttemptRequest) (*model.AttemptResultResponse, error)
	ListAttempts(ctx context.Context, tenantID, quizID uuid.UUID) ([]*model.QuizAttempt, error)
}

type quizService struct {
	db          *gorm.DB
	quizRepo    repository.QuizRepository
	attemptRepo repository.AttemptRepository
	now         func() time.Time
}

func NewQuizService(db *gorm.DB, quizRepo repository.QuizRepository, attemptRepo repository.AttemptRepository) QuizService {
	return &quizService{
		db:          db,
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		now:         time.Now,
	}
}

// ImportQuiz はCSVをパースしてクイズとして保存します。
// パースに失敗した場合は正規化の前処理をかけて1度だけ再試行します。
func (s *quizService) ImportQuiz(ctx context.Context, tenantID uuid.UUID, req *model.ImportQuizRequest) (*model.QuizSummaryResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "quiz_name", req.Name)

	csvText := req.CSV
	questions, err := quizformat.Parse(csvText)
	if err != nil {
		var ferr *quizformat.FormatError
		if !errors.As(err, &ferr) {
			logger.Error("Unexpected error parsing quiz CSV", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "CSVの解析中にエラーが発生しました。", "", err)
		}

		// 正規化して再試行。それでも駄目なら元のエラー位置をそのまま返す
		normalized := quizformat.Normalize(csvText)
		questions, err = quizformat.Parse(normalized)
		if err != nil {
			logger.Warn("Quiz CSV rejected", "error", err)
			return nil, err
		}
		logger.Info("Quiz CSV recovered by normalization")
		csvText = normalized
	}

	if len(questions) == 0 {
		return nil, model.NewAppError("VALIDATION_ERROR", "設問が1つもありません。", "csv", model.ErrInvalidInput)
	}

	exists, err := s.quizRepo.CheckNameExists(ctx, s.db, tenantID, req.Name)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズ名の確認に失敗しました。", "", err)
	}
	if exists {
		return nil, model.NewAppError("CONFLICT", "同じ名前のクイズが既に存在します。", "name", model.ErrConflict)
	}

	quiz := &model.Quiz{
		QuizID:   uuid.New(),
		TenantID: tenantID,
		Name:     req.Name,
		CSVText:  csvText,
		PDFRef:   req.PDFRef,
		Tag:      req.Tag,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.quizRepo.Create(ctx, tx, quiz); err != nil {
			if errors.Is(err, model.ErrConflict) {
				return model.NewAppError("CONFLICT", "同じ名前のクイズが既に存在します。", "name", model.ErrConflict)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの保存に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Quiz imported", "quiz_id", quiz.QuizID.String(), "question_count", len(questions))

	return newQuizSummary(quiz, len(questions)), nil
}

func (s *quizService) ListQuizzes(ctx context.Context, tenantID uuid.UUID) ([]*model.QuizSummaryResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID)

	quizzes, err := s.quizRepo.FindByTenant(ctx, s.db, tenantID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズ一覧の取得に失敗しました。", "", err)
	}

	responses := make([]*model.QuizSummaryResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		count := 0
		if questions, perr := quizformat.Parse(quiz.CSVText); perr == nil {
			count = len(questions)
		} else {
			// 保存時に検証済みなので通常起こらない
			logger.Warn("Stored quiz CSV failed to parse", "quiz_id", quiz.QuizID.String(), "error", perr)
		}
		responses = append(responses, newQuizSummary(quiz, count))
	}
	return responses, nil
}

func (s *quizService) GetQuiz(ctx context.Context, tenantID, quizID uuid.UUID) (*model.QuizSummaryResponse, error) {
	quiz, questions, err := s.loadQuiz(ctx, tenantID, quizID)
	if err != nil {
		return nil, err
	}
	return newQuizSummary(quiz, len(questions)), nil
}

// DeleteQuiz はクイズと受験履歴をまとめて論理削除します。
func (s *quizService) DeleteQuiz(ctx context.Context, tenantID, quizID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "quiz_id", quizID)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.quizRepo.Delete(ctx, tx, tenantID, quizID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return model.NewAppError("NOT_FOUND", "クイズが見つかりません。", "", model.ErrNotFound)
			}
			return model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの削除に失敗しました。", "", err)
		}
		if err := s.attemptRepo.DeleteByQuiz(ctx, tx, tenantID, quizID); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "受験履歴の削除に失敗しました。", "", err)
		}
		logger.Info("Quiz deleted")
		return nil
	})
}

// GetQuestions は配信用の設問一覧を返します。shuffle が真なら出題順を無作為化します。
func (s *quizService) GetQuestions(ctx context.Context, tenantID, quizID uuid.UUID, shuffle bool) ([]model.QuestionResponse, error) {
	_, questions, err := s.loadQuiz(ctx, tenantID, quizID)
	if err != nil {
		return nil, err
	}

	responses := make([]model.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, model.NewQuestionResponse(q))
	}
	if shuffle {
		responses = srs.Shuffle(responses)
	}
	return responses, nil
}

// SubmitAttempt は回答を採点し、受験履歴として保存します。
// 未回答の設問は不正解として集計します。
func (s *quizService) SubmitAttempt(ctx context.Context, tenantID, quizID uuid.UUID, req *model.SubmitAttemptRequest) (*model.AttemptResultResponse, error) {
	logger := middleware.GetLogger(ctx).With("tenant_id", tenantID, "quiz_id", quizID)

	_, questions, err := s.loadQuiz(ctx, tenantID, quizID)
	if err != nil {
		return nil, err
	}

	answersByID := make(map[int]model.AnswerSubmission, len(req.Answers))
	for _, a := range req.Answers {
		if _, dup := answersByID[a.QuestionID]; dup {
			return nil, model.NewAppError("VALIDATION_ERROR", fmt.Sprintf("設問ID %d への回答が重複しています。", a.QuestionID), "answers", model.ErrInvalidInput)
		}
		answersByID[a.QuestionID] = a
	}

	questionIDs := make(map[int]bool, len(questions))
	for _, q := range questions {
		questionIDs[q.ID] = true
	}
	for id := range answersByID {
		if !questionIDs[id] {
			return nil, model.NewAppError("VALIDATION_ERROR", fmt.Sprintf("設問ID %d は存在しません。", id), "answers", model.ErrInvalidInput)
		}
	}

	results := make([]model.QuestionResult, 0, len(questions))
	correctCount := 0
	for _, q := range questions {
		answer := toEngineAnswer(answersByID[q.ID])
		correct := quizformat.IsCorrect(q, answer)
		if correct {
			correctCount++
		}
		results = append(results, model.QuestionResult{QuestionID: q.ID, Correct: correct})
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "回答の保存形式への変換に失敗しました。", "", err)
	}

	attempt := &model.QuizAttempt{
		AttemptID:     uuid.New(),
		TenantID:      tenantID,
		QuizID:        quizID,
		CorrectCount:  correctCount,
		QuestionCount: len(questions),
		ScorePercent:  float64(correctCount) * 100 / float64(len(questions)),
		AnswersJSON:   string(answersJSON),
		TakenAt:       s.now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.attemptRepo.Create(ctx, tx, attempt); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "受験履歴の保存に失敗しました。", "", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Attempt submitted",
		"attempt_id", attempt.AttemptID.String(),
		"correct", correctCount,
		"total", len(questions),
	)

	return &model.AttemptResultResponse{
		AttemptID:     attempt.AttemptID,
		CorrectCount:  attempt.CorrectCount,
		QuestionCount: attempt.QuestionCount,
		ScorePercent:  attempt.ScorePercent,
		Results:       results,
		TakenAt:       attempt.TakenAt,
	}, nil
}

func (s *quizService) ListAttempts(ctx context.Context, tenantID, quizID uuid.UUID) ([]*model.QuizAttempt, error) {
	// クイズの存在確認を兼ねる
	if _, err := s.quizRepo.FindByID(ctx, s.db, tenantID, quizID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "クイズが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの取得に失敗しました。", "", err)
	}

	attempts, err := s.attemptRepo.FindByQuiz(ctx, s.db, tenantID, quizID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "受験履歴の取得に失敗しました。", "", err)
	}
	return attempts, nil
}

// loadQuiz はクイズを取得し、保存済みCSVを設問にパースして返します。
func (s *quizService) loadQuiz(ctx context.Context, tenantID, quizID uuid.UUID) (*model.Quiz, []quizformat.Question, error) {
	quiz, err := s.quizRepo.FindByID(ctx, s.db, tenantID, quizID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil, model.NewAppError("NOT_FOUND", "クイズが見つかりません。", "", model.ErrNotFound)
		}
		return nil, nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの取得に失敗しました。", "", err)
	}

	questions, err := quizformat.Parse(quiz.CSVText)
	if err != nil {
		// 保存時に検証しているため、ここに来るのはデータ破損時のみ
		middleware.GetLogger(ctx).Error("Stored quiz CSV failed to parse", "quiz_id", quizID.String(), "error", err)
		return nil, nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズデータの読み込みに失敗しました。", "", err)
	}
	return quiz, questions, nil
}

// toEngineAnswer は回答DTOをエンジンの回答表現に変換します。
func toEngineAnswer(a model.AnswerSubmission) quizformat.Answer {
	if len(a.Selections) > 0 {
		return quizformat.MultiAnswer(a.Selections)
	}
	if a.Selected != nil {
		return quizformat.SingleAnswer(*a.Selected)
	}
	return quizformat.Answer{}
}

func newQuizSummary(quiz *model.Quiz, questionCount int) *model.QuizSummaryResponse {
	return &model.QuizSummaryResponse{
		QuizID:        quiz.QuizID,
		Name:          quiz.Name,
		Tag:           quiz.Tag,
		PDFRef:        quiz.PDFRef,
		QuestionCount: questionCount,
		CreatedAt:     quiz.CreatedAt,
	}
}
