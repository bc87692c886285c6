//go:build integration

// internal/handlers/quiz_api_integration_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"quizkeep/internal/config"
	"quizkeep/internal/handlers"
	"quizkeep/internal/middleware"
	"quizkeep/internal/model"
	"quizkeep/internal/repository"
	"quizkeep/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	integDB     *gorm.DB
	integLogger *slog.Logger
)

const dbContainerName = "test_postgres_quizkeep_api"

func TestMain(m *testing.M) {
	integLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       dbContainerName,
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=quizkeep",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}

	hostPort := resource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("host=localhost port=%s user=user password=secret dbname=quizkeep sslmode=disable", hostPort)

	if err = pool.Retry(func() error {
		var openErr error
		integDB, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if openErr != nil {
			return openErr
		}
		sqlDB, dbErr := integDB.DB()
		if dbErr != nil {
			return dbErr
		}
		return sqlDB.Ping()
	}); err != nil {
		if pErr := pool.Purge(resource); pErr != nil {
			log.Printf("Warning: Could not purge resource after connection retry failed: %s", pErr)
		}
		log.Fatalf("Could not connect to PostgreSQL container: %s", err)
	}

	if err := integDB.AutoMigrate(
		&model.Tenant{},
		&model.Quiz{},
		&model.QuizAttempt{},
		&model.Deck{},
		&model.Card{},
		&model.CardProgress{},
	); err != nil {
		log.Fatalf("Could not migrate database: %s", err)
	}

	code := m.Run()

	if err := pool.Purge(resource); err != nil {
		log.Fatalf("Could not purge PostgreSQL resource: %s", err)
	}

	os.Exit(code)
}

// setupIntegrationApp は実DBに接続した全ルートのルーターを組み立てます。
func setupIntegrationApp(t *testing.T) *httptest.Server {
	t.Helper()
	require.NotNil(t, integDB, "integDB should have been initialized in TestMain")

	cfg := &config.Config{}
	cfg.App.ReviewLimit = 20
	cfg.Auth.JWTSecret = "integration-test-secret"

	tenantRepo := repository.NewGormTenantRepository()
	quizRepo := repository.NewGormQuizRepository()
	attemptRepo := repository.NewGormAttemptRepository()
	deckRepo := repository.NewGormDeckRepository()
	cardRepo := repository.NewGormCardRepository()
	progRepo := repository.NewGormProgressRepository()

	tenantHandler := handlers.NewTenantHandler(service.NewTenantService(integDB, tenantRepo, cfg), integLogger)
	quizHandler := handlers.NewQuizHandler(service.NewQuizService(integDB, quizRepo, attemptRepo), integLogger)
	deckHandler := handlers.NewDeckHandler(service.NewDeckService(integDB, deckRepo, cardRepo, progRepo), integLogger)
	reviewHandler := handlers.NewReviewHandler(service.NewReviewService(integDB, deckRepo, cardRepo, progRepo, cfg), integLogger)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(10 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/tenants", tenantHandler.CreateTenant)

		r.Group(func(r chi.Router) {
			r.Use(middleware.DevTenantContextMiddleware)
			r.Route("/quizzes", func(r chi.Router) {
				r.Post("/", quizHandler.ImportQuiz)
				r.Get("/", quizHandler.ListQuizzes)
				r.Get("/{quiz_id}/questions", quizHandler.GetQuestions)
				r.Post("/{quiz_id}/attempts", quizHandler.SubmitAttempt)
			})
			r.Route("/decks", func(r chi.Router) {
				r.Post("/", deckHandler.CreateDeck)
				r.Post("/{deck_id}/cards", deckHandler.CreateCard)
			})
			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", reviewHandler.GetDueCards)
				r.Put("/{card_id}/grade", reviewHandler.GradeCard)
			})
		})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

// doJSON はライブサーバーへJSONリクエストを送り、ステータスとボディを返します。
func doJSON(t *testing.T, server *httptest.Server, method, path string, body interface{}, tenantID *uuid.UUID) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(b)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tenantID != nil {
		req.Header.Set("X-Tenant-ID", tenantID.String())
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, respBody
}

func TestQuizAPI_EndToEnd(t *testing.T) {
	server := setupIntegrationApp(t)

	// テナント作成
	status, body := doJSON(t, server, http.MethodPost, "/api/v1/tenants",
		map[string]string{"name": fmt.Sprintf("integ-tenant-%s", uuid.New())}, nil)
	require.Equal(t, http.StatusCreated, status, "body: %s", string(body))
	var tenantResp model.CreateTenantResponse
	require.NoError(t, json.Unmarshal(body, &tenantResp))
	tenantID := tenantResp.TenantID
	require.NotEqual(t, uuid.Nil, tenantID)
	assert.NotEmpty(t, tenantResp.Token)

	// クイズをインポート
	csvText := "Type,Question,Option1,Option2,Option3,Option4,Correct\n" +
		"MCQ,ポート80の標準プロトコルは,HTTP,FTP,SSH,DNS,1\n" +
		"YESNO,TCPはコネクション型である,,,,,yes\n"
	status, body = doJSON(t, server, http.MethodPost, "/api/v1/quizzes",
		model.ImportQuizRequest{Name: "integ-quiz", CSV: csvText}, &tenantID)
	require.Equal(t, http.StatusCreated, status, "body: %s", string(body))
	var quizResp model.QuizSummaryResponse
	require.NoError(t, json.Unmarshal(body, &quizResp))
	assert.Equal(t, 2, quizResp.QuestionCount)

	// 設問を取得 (正答は含まれない)
	status, body = doJSON(t, server, http.MethodGet,
		fmt.Sprintf("/api/v1/quizzes/%s/questions", quizResp.QuizID), nil, &tenantID)
	require.Equal(t, http.StatusOK, status)
	var questions []model.QuestionResponse
	require.NoError(t, json.Unmarshal(body, &questions))
	require.Len(t, questions, 2)

	// 回答を提出して採点される
	selected := "HTTP"
	yes := "yes"
	status, body = doJSON(t, server, http.MethodPost,
		fmt.Sprintf("/api/v1/quizzes/%s/attempts", quizResp.QuizID),
		model.SubmitAttemptRequest{Answers: []model.AnswerSubmission{
			{QuestionID: 1, Selected: &selected},
			{QuestionID: 2, Selected: &yes},
		}}, &tenantID)
	require.Equal(t, http.StatusCreated, status, "body: %s", string(body))
	var result model.AttemptResultResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, 2, result.CorrectCount)
	assert.Equal(t, float64(100), result.ScorePercent)
}

func TestFlashcardAPI_EndToEnd(t *testing.T) {
	server := setupIntegrationApp(t)

	status, body := doJSON(t, server, http.MethodPost, "/api/v1/tenants",
		map[string]string{"name": fmt.Sprintf("integ-tenant-%s", uuid.New())}, nil)
	require.Equal(t, http.StatusCreated, status)
	var tenantResp model.CreateTenantResponse
	require.NoError(t, json.Unmarshal(body, &tenantResp))
	tenantID := tenantResp.TenantID

	// デッキとカードを作成
	status, body = doJSON(t, server, http.MethodPost, "/api/v1/decks",
		model.CreateDeckRequest{Name: "integ-deck"}, &tenantID)
	require.Equal(t, http.StatusCreated, status, "body: %s", string(body))
	var deck model.Deck
	require.NoError(t, json.Unmarshal(body, &deck))

	status, body = doJSON(t, server, http.MethodPost,
		fmt.Sprintf("/api/v1/decks/%s/cards", deck.DeckID),
		model.CreateCardRequest{Front: "SYN", Back: "接続要求"}, &tenantID)
	require.Equal(t, http.StatusCreated, status, "body: %s", string(body))
	var card model.Card
	require.NoError(t, json.Unmarshal(body, &card))

	// 未採点カードは即時復習対象
	status, body = doJSON(t, server, http.MethodGet,
		fmt.Sprintf("/api/v1/reviews?deck_id=%s", deck.DeckID), nil, &tenantID)
	require.Equal(t, http.StatusOK, status)
	var due []*model.ReviewCardResponse
	require.NoError(t, json.Unmarshal(body, &due))
	require.Len(t, due, 1)
	assert.Equal(t, card.CardID, due[0].CardID)

	// easy で採点すると5日先に繰り延べられ、復習対象から外れる
	status, body = doJSON(t, server, http.MethodPut,
		fmt.Sprintf("/api/v1/reviews/%s/grade", card.CardID),
		model.GradeCardRequest{Grade: "easy"}, &tenantID)
	require.Equal(t, http.StatusOK, status, "body: %s", string(body))
	var graded model.GradeCardResponse
	require.NoError(t, json.Unmarshal(body, &graded))
	assert.Equal(t, 1, graded.ReviewCount)
	assert.WithinDuration(t, time.Now().Add(5*24*time.Hour), graded.NextReviewAt, time.Minute)

	status, body = doJSON(t, server, http.MethodGet,
		fmt.Sprintf("/api/v1/reviews?deck_id=%s", deck.DeckID), nil, &tenantID)
	require.Equal(t, http.StatusOK, status)
	due = nil
	require.NoError(t, json.Unmarshal(body, &due))
	assert.Empty(t, due)
}
