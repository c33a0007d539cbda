package services

import (
	"context"
	"sort"
	"time"

	"github.com/askhatb/challenge-on/internal/apperr"
	"github.com/askhatb/challenge-on/internal/identity"
	"github.com/askhatb/challenge-on/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes mirroring the repository semantics, including the
// owner-scoped filters that make foreign and missing ids indistinguishable.

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	u := *user
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	f.users[u.ID] = &u
	return &u, nil
}

func (f *fakeUserStore) GetUserByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	for _, user := range f.users {
		if user.GoogleID == googleID {
			u := *user
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	u := *user
	return &u, nil
}

type fakeChallengeStore struct {
	challenges map[primitive.ObjectID]*models.Challenge
}

func newFakeChallengeStore() *fakeChallengeStore {
	return &fakeChallengeStore{challenges: make(map[primitive.ObjectID]*models.Challenge)}
}

func (f *fakeChallengeStore) CreateChallenge(_ context.Context, challenge *models.Challenge) (*models.Challenge, error) {
	ch := *challenge
	ch.ID = primitive.NewObjectID()
	ch.CreatedAt = time.Now()
	ch.UpdatedAt = time.Now()
	f.challenges[ch.ID] = &ch
	out := ch
	return &out, nil
}

func (f *fakeChallengeStore) GetChallenge(_ context.Context, id, userID primitive.ObjectID) (*models.Challenge, error) {
	challenge, ok := f.challenges[id]
	if !ok || challenge.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	ch := *challenge
	return &ch, nil
}

func (f *fakeChallengeStore) GetChallenges(_ context.Context, userID primitive.ObjectID) ([]models.Challenge, error) {
	var out []models.Challenge
	for _, challenge := range f.challenges {
		if challenge.UserID == userID {
			out = append(out, *challenge)
		}
	}
	return out, nil
}

func (f *fakeChallengeStore) UpdateChallenge(_ context.Context, id, userID primitive.ObjectID, challenge *models.Challenge) (*models.Challenge, error) {
	existing, ok := f.challenges[id]
	if !ok || existing.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	existing.Name = challenge.Name
	existing.Description = challenge.Description
	existing.StartDate = challenge.StartDate
	existing.EndDate = challenge.EndDate
	existing.ReminderTime = challenge.ReminderTime
	existing.UpdatedAt = time.Now()
	ch := *existing
	return &ch, nil
}

func (f *fakeChallengeStore) DeleteChallenge(_ context.Context, id, userID primitive.ObjectID) error {
	existing, ok := f.challenges[id]
	if !ok || existing.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(f.challenges, id)
	return nil
}

type fakeProgressStore struct {
	logs map[primitive.ObjectID]*models.ProgressLog
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{logs: make(map[primitive.ObjectID]*models.ProgressLog)}
}

func (f *fakeProgressStore) CreateLog(_ context.Context, log *models.ProgressLog) (*models.ProgressLog, error) {
	l := *log
	l.ID = primitive.NewObjectID()
	l.CreatedAt = time.Now()
	l.UpdatedAt = time.Now()
	f.logs[l.ID] = &l
	out := l
	return &out, nil
}

func sortByDateDesc(logs []models.ProgressLog) {
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date.After(logs[j].Date)
	})
}

func (f *fakeProgressStore) GetLogsByChallenge(_ context.Context, challengeID, userID primitive.ObjectID) ([]models.ProgressLog, error) {
	var out []models.ProgressLog
	for _, log := range f.logs {
		if log.ChallengeID == challengeID && log.UserID == userID {
			out = append(out, *log)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (f *fakeProgressStore) GetLogsByChallengeIDs(_ context.Context, challengeIDs []primitive.ObjectID, userID primitive.ObjectID) ([]models.ProgressLog, error) {
	wanted := make(map[primitive.ObjectID]bool, len(challengeIDs))
	for _, id := range challengeIDs {
		wanted[id] = true
	}

	var out []models.ProgressLog
	for _, log := range f.logs {
		if wanted[log.ChallengeID] && log.UserID == userID {
			out = append(out, *log)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (f *fakeProgressStore) UpdateLog(_ context.Context, id, userID primitive.ObjectID, log *models.ProgressLog) (*models.ProgressLog, error) {
	existing, ok := f.logs[id]
	if !ok || existing.UserID != userID {
		return nil, apperr.ErrNotFound
	}
	existing.Date = log.Date
	existing.Description = log.Description
	existing.MediaURL = log.MediaURL
	existing.UpdatedAt = time.Now()
	l := *existing
	return &l, nil
}

func (f *fakeProgressStore) DeleteLog(_ context.Context, id, userID primitive.ObjectID) error {
	existing, ok := f.logs[id]
	if !ok || existing.UserID != userID {
		return apperr.ErrNotFound
	}
	delete(f.logs, id)
	return nil
}

func (f *fakeProgressStore) DeleteLogsByChallenge(_ context.Context, challengeID, userID primitive.ObjectID) error {
	for id, log := range f.logs {
		if log.ChallengeID == challengeID && log.UserID == userID {
			delete(f.logs, id)
		}
	}
	return nil
}

type fakeVerifier struct {
	ident *identity.Identity
	err   error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (*identity.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ident, nil
}
