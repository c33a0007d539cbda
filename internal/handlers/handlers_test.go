package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/askhatb/challenge-on/internal/models"
	jwtutil "github.com/askhatb/challenge-on/pkg/jwt"
	"github.com/askhatb/challenge-on/pkg/logger"
	"github.com/askhatb/challenge-on/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	logger.InitLogger()
}

const testSecret = "handler-test-secret"

// Function-field stubs so each test supplies only the calls it expects.

type stubAuthProvider struct {
	signInFn  func(ctx context.Context, idToken string) (string, *models.User, error)
	getUserFn func(ctx context.Context, id string) (*models.User, error)
}

func (s *stubAuthProvider) SignInWithGoogle(ctx context.Context, idToken string) (string, *models.User, error) {
	return s.signInFn(ctx, idToken)
}

func (s *stubAuthProvider) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUserFn(ctx, id)
}

type stubChallengeProvider struct {
	createFn func(ctx context.Context, userID primitive.ObjectID, challenge *models.Challenge) (*models.Challenge, error)
	getFn    func(ctx context.Context, userID primitive.ObjectID, id string) (*models.Challenge, error)
	listFn   func(ctx context.Context, userID primitive.ObjectID) ([]models.Challenge, error)
	updateFn func(ctx context.Context, userID primitive.ObjectID, id string, challenge *models.Challenge) (*models.Challenge, error)
	deleteFn func(ctx context.Context, userID primitive.ObjectID, id string) error
}

func (s *stubChallengeProvider) CreateChallenge(ctx context.Context, userID primitive.ObjectID, challenge *models.Challenge) (*models.Challenge, error) {
	return s.createFn(ctx, userID, challenge)
}

func (s *stubChallengeProvider) GetChallenge(ctx context.Context, userID primitive.ObjectID, id string) (*models.Challenge, error) {
	return s.getFn(ctx, userID, id)
}

func (s *stubChallengeProvider) GetChallenges(ctx context.Context, userID primitive.ObjectID) ([]models.Challenge, error) {
	return s.listFn(ctx, userID)
}

func (s *stubChallengeProvider) UpdateChallenge(ctx context.Context, userID primitive.ObjectID, id string, challenge *models.Challenge) (*models.Challenge, error) {
	return s.updateFn(ctx, userID, id, challenge)
}

func (s *stubChallengeProvider) DeleteChallenge(ctx context.Context, userID primitive.ObjectID, id string) error {
	return s.deleteFn(ctx, userID, id)
}

type stubProgressProvider struct {
	getLogsFn func(ctx context.Context, userID primitive.ObjectID, challengeID string) ([]models.ProgressLog, error)
	createFn  func(ctx context.Context, userID primitive.ObjectID, log *models.ProgressLog) (*models.ProgressLog, error)
	updateFn  func(ctx context.Context, userID primitive.ObjectID, id string, log *models.ProgressLog) (*models.ProgressLog, error)
	deleteFn  func(ctx context.Context, userID primitive.ObjectID, id string) error
}

func (s *stubProgressProvider) GetLogs(ctx context.Context, userID primitive.ObjectID, challengeID string) ([]models.ProgressLog, error) {
	return s.getLogsFn(ctx, userID, challengeID)
}

func (s *stubProgressProvider) CreateLog(ctx context.Context, userID primitive.ObjectID, log *models.ProgressLog) (*models.ProgressLog, error) {
	return s.createFn(ctx, userID, log)
}

func (s *stubProgressProvider) UpdateLog(ctx context.Context, userID primitive.ObjectID, id string, log *models.ProgressLog) (*models.ProgressLog, error) {
	return s.updateFn(ctx, userID, id, log)
}

func (s *stubProgressProvider) DeleteLog(ctx context.Context, userID primitive.ObjectID, id string) error {
	return s.deleteFn(ctx, userID, id)
}

// newTestRouter wires the handlers behind the real auth middleware, the same
// way cmd/server does.
func newTestRouter(auth *AuthHandler, challenge *ChallengeHandler, progress *ProgressHandler) *mux.Router {
	router := mux.NewRouter()

	if auth != nil {
		router.HandleFunc("/api/auth/google", auth.GoogleSignInHandler).Methods("POST")
		protectedAuth := router.PathPrefix("/api/auth").Subrouter()
		protectedAuth.Use(middleware.AuthMiddleware(testSecret))
		protectedAuth.HandleFunc("/me", auth.MeHandler).Methods("GET")
	}

	if challenge != nil {
		protected := router.PathPrefix("/api/challenges").Subrouter()
		protected.Use(middleware.AuthMiddleware(testSecret))
		protected.HandleFunc("", challenge.GetChallengesHandler).Methods("GET")
		protected.HandleFunc("", challenge.CreateChallengeHandler).Methods("POST")
		protected.HandleFunc("/{id}", challenge.GetChallengeHandler).Methods("GET")
		protected.HandleFunc("/{id}", challenge.UpdateChallengeHandler).Methods("PUT")
		protected.HandleFunc("/{id}", challenge.DeleteChallengeHandler).Methods("DELETE")
	}

	if progress != nil {
		protected := router.PathPrefix("/api/progress").Subrouter()
		protected.Use(middleware.AuthMiddleware(testSecret))
		protected.HandleFunc("/challenge/{challengeId}", progress.GetLogsHandler).Methods("GET")
		protected.HandleFunc("", progress.CreateLogHandler).Methods("POST")
		protected.HandleFunc("/{id}", progress.UpdateLogHandler).Methods("PUT")
		protected.HandleFunc("/{id}", progress.DeleteLogHandler).Methods("DELETE")
	}

	return router
}

func bearerFor(t *testing.T, userID primitive.ObjectID) string {
	t.Helper()
	token, err := jwtutil.GenerateToken(userID.Hex(), testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(router *mux.Router, method, path, authorization, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
