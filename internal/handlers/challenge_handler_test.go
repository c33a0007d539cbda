package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestChallengeRoutes_RequireCredential(t *testing.T) {
	storeTouched := false
	handler := NewChallengeHandler(&stubChallengeProvider{
		listFn: func(_ context.Context, _ primitive.ObjectID) ([]models.Challenge, error) {
			storeTouched = true
			return nil, nil
		},
	})
	router := newTestRouter(nil, handler, nil)

	rec := doRequest(router, http.MethodGet, "/api/challenges", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, storeTouched, "store must not be reached without a credential")
}

func TestCreateChallengeHandler(t *testing.T) {
	userID := primitive.NewObjectID()
	handler := NewChallengeHandler(&stubChallengeProvider{
		createFn: func(_ context.Context, callerID primitive.ObjectID, challenge *models.Challenge) (*models.Challenge, error) {
			assert.Equal(t, userID, callerID)
			assert.Equal(t, "30-Day Yoga", challenge.Name)
			assert.Equal(t, "09:00", challenge.ReminderTime)
			created := *challenge
			created.ID = primitive.NewObjectID()
			created.UserID = callerID
			created.ProgressLogs = []models.ProgressLog{}
			return &created, nil
		},
	})
	router := newTestRouter(nil, handler, nil)

	body := `{"name":"30-Day Yoga","description":"Daily yoga practice","startDate":"2024-01-01","endDate":"2024-01-30","reminderTime":"09:00"}`
	rec := doRequest(router, http.MethodPost, "/api/challenges", bearerFor(t, userID), body)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Challenge
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "30-Day Yoga", created.Name)
	assert.False(t, created.ID.IsZero())
	assert.NotNil(t, created.ProgressLogs)
}

func TestCreateChallengeHandler_BadDate(t *testing.T) {
	handler := NewChallengeHandler(&stubChallengeProvider{})
	router := newTestRouter(nil, handler, nil)

	body := `{"name":"Run","startDate":"January 1st","endDate":"2024-01-30"}`
	rec := doRequest(router, http.MethodPost, "/api/challenges", bearerFor(t, primitive.NewObjectID()), body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateChallengeHandler_ValidationError(t *testing.T) {
	handler := NewChallengeHandler(&stubChallengeProvider{
		createFn: func(_ context.Context, _ primitive.ObjectID, _ *models.Challenge) (*models.Challenge, error) {
			return nil, apperr.ErrValidation
		},
	})
	router := newTestRouter(nil, handler, nil)

	rec := doRequest(router, http.MethodPost, "/api/challenges", bearerFor(t, primitive.NewObjectID()), `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetChallengeHandler_NotFound(t *testing.T) {
	handler := NewChallengeHandler(&stubChallengeProvider{
		getFn: func(_ context.Context, _ primitive.ObjectID, _ string) (*models.Challenge, error) {
			return nil, apperr.ErrNotFound
		},
	})
	router := newTestRouter(nil, handler, nil)

	rec := doRequest(router, http.MethodGet, "/api/challenges/"+primitive.NewObjectID().Hex(),
		bearerFor(t, primitive.NewObjectID()), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetChallengesHandler_EmptyListIsJSONArray(t *testing.T) {
	handler := NewChallengeHandler(&stubChallengeProvider{
		listFn: func(_ context.Context, _ primitive.ObjectID) ([]models.Challenge, error) {
			return nil, nil
		},
	})
	router := newTestRouter(nil, handler, nil)

	rec := doRequest(router, http.MethodGet, "/api/challenges", bearerFor(t, primitive.NewObjectID()), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestUpdateChallengeHandler(t *testing.T) {
	userID := primitive.NewObjectID()
	challengeID := primitive.NewObjectID()
	handler := NewChallengeHandler(&stubChallengeProvider{
		updateFn: func(_ context.Context, _ primitive.ObjectID, id string, challenge *models.Challenge) (*models.Challenge, error) {
			assert.Equal(t, challengeID.Hex(), id)
			updated := *challenge
			updated.ID = challengeID
			updated.UserID = userID
			return &updated, nil
		},
	})
	router := newTestRouter(nil, handler, nil)

	body := `{"name":"Renamed","startDate":"2024-01-01","endDate":"2024-02-01"}`
	rec := doRequest(router, http.MethodPut, "/api/challenges/"+challengeID.Hex(), bearerFor(t, userID), body)

	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Challenge
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), updated.EndDate)
}

func TestDeleteChallengeHandler(t *testing.T) {
	handler := NewChallengeHandler(&stubChallengeProvider{
		deleteFn: func(_ context.Context, _ primitive.ObjectID, _ string) error {
			return nil
		},
	})
	router := newTestRouter(nil, handler, nil)

	rec := doRequest(router, http.MethodDelete, "/api/challenges/"+primitive.NewObjectID().Hex(),
		bearerFor(t, primitive.NewObjectID()), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteChallengeHandler_NotOwned(t *testing.T) {
	handler := NewChallengeHandler(&stubChallengeProvider{
		deleteFn: func(_ context.Context, _ primitive.ObjectID, _ string) error {
			return apperr.ErrNotFound
		},
	})
	router := newTestRouter(nil, handler, nil)

	rec := doRequest(router, http.MethodDelete, "/api/challenges/"+primitive.NewObjectID().Hex(),
		bearerFor(t, primitive.NewObjectID()), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
