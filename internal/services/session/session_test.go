package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/members-club/internal/lib/token"
	"github.com/magabrotheeeer/members-club/internal/models"
	"github.com/magabrotheeeer/members-club/internal/services/session"
	"github.com/magabrotheeeer/members-club/internal/storage"
)

type SessionRepoMock struct {
	mock.Mock
}

func (m *SessionRepoMock) CreateSession(ctx context.Context, s models.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *SessionRepoMock) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *SessionRepoMock) DeleteSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newService(sessions *SessionRepoMock, users *UserRepoMock) *session.Service {
	maker := token.NewMaker("test_secret_key", 24*time.Hour)
	return session.New(sessions, users, maker, 24*time.Hour, newNoopLogger())
}

func TestService_EstablishAndResolve(t *testing.T) {
	sessions := new(SessionRepoMock)
	users := new(UserRepoMock)
	svc := newService(sessions, users)

	user := &models.User{ID: 5, Username: "alice"}

	var storedSession models.Session
	sessions.On("CreateSession", mock.Anything, mock.MatchedBy(func(s models.Session) bool {
		storedSession = s
		return s.UserID == 5 && s.ID != "" &&
			s.ExpiresAt.Sub(s.CreatedAt) == 24*time.Hour
	})).Return(nil).Once()

	cookieToken, err := svc.Establish(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, cookieToken)

	// Резолв перечитывает пользователя из хранилища, не из снапшота:
	// возвращаем уже повышенного до участника.
	promoted := &models.User{ID: 5, Username: "alice", IsMember: true}
	sessions.On("GetSession", mock.Anything, storedSession.ID).
		Return(&storedSession, nil).Once()
	users.On("GetUserByID", mock.Anything, 5).Return(promoted, nil).Once()

	got, err := svc.Resolve(context.Background(), cookieToken)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsMember)

	sessions.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestService_Resolve_Anonymous(t *testing.T) {
	maker := token.NewMaker("test_secret_key", 24*time.Hour)

	validToken := func(sid string) string {
		tok, err := maker.GenerateToken(sid)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name        string
		cookieToken string
		setupMocks  func(sessions *SessionRepoMock, users *UserRepoMock)
	}{
		{
			name:        "garbage token",
			cookieToken: "not-a-token",
			setupMocks:  func(_ *SessionRepoMock, _ *UserRepoMock) {},
		},
		{
			name:        "empty token",
			cookieToken: "",
			setupMocks:  func(_ *SessionRepoMock, _ *UserRepoMock) {},
		},
		{
			name:        "unknown session id",
			cookieToken: validToken("missing-sid"),
			setupMocks: func(sessions *SessionRepoMock, _ *UserRepoMock) {
				sessions.On("GetSession", mock.Anything, "missing-sid").
					Return(nil, storage.ErrSessionNotFound).Once()
			},
		},
		{
			name:        "expired session",
			cookieToken: validToken("expired-sid"),
			setupMocks: func(sessions *SessionRepoMock, _ *UserRepoMock) {
				expired := &models.Session{
					ID:        "expired-sid",
					UserID:    5,
					CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
					ExpiresAt: time.Now().UTC().Add(-24 * time.Hour),
				}
				sessions.On("GetSession", mock.Anything, "expired-sid").
					Return(expired, nil).Once()
				sessions.On("DeleteSession", mock.Anything, "expired-sid").
					Return(nil).Once()
			},
		},
		{
			name:        "deleted user invalidates session",
			cookieToken: validToken("orphan-sid"),
			setupMocks: func(sessions *SessionRepoMock, users *UserRepoMock) {
				live := &models.Session{
					ID:        "orphan-sid",
					UserID:    9,
					CreatedAt: time.Now().UTC(),
					ExpiresAt: time.Now().UTC().Add(time.Hour),
				}
				sessions.On("GetSession", mock.Anything, "orphan-sid").
					Return(live, nil).Once()
				users.On("GetUserByID", mock.Anything, 9).
					Return(nil, storage.ErrUserNotFound).Once()
				sessions.On("DeleteSession", mock.Anything, "orphan-sid").
					Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(SessionRepoMock)
			users := new(UserRepoMock)
			tt.setupMocks(sessions, users)

			svc := session.New(sessions, users, maker, 24*time.Hour, newNoopLogger())
			user, err := svc.Resolve(context.Background(), tt.cookieToken)

			assert.NoError(t, err)
			assert.Nil(t, user)
			sessions.AssertExpectations(t)
			users.AssertExpectations(t)
		})
	}
}

func TestService_Resolve_StorageError(t *testing.T) {
	maker := token.NewMaker("test_secret_key", 24*time.Hour)
	tok, err := maker.GenerateToken("some-sid")
	require.NoError(t, err)

	sessions := new(SessionRepoMock)
	users := new(UserRepoMock)
	sessions.On("GetSession", mock.Anything, "some-sid").
		Return(nil, errors.New("db error")).Once()

	svc := session.New(sessions, users, maker, 24*time.Hour, newNoopLogger())
	user, err := svc.Resolve(context.Background(), tok)

	assert.Error(t, err)
	assert.Nil(t, user)
	sessions.AssertExpectations(t)
}

func TestService_Destroy(t *testing.T) {
	maker := token.NewMaker("test_secret_key", 24*time.Hour)
	tok, err := maker.GenerateToken("destroy-sid")
	require.NoError(t, err)

	sessions := new(SessionRepoMock)
	users := new(UserRepoMock)
	svc := session.New(sessions, users, maker, 24*time.Hour, newNoopLogger())

	sessions.On("DeleteSession", mock.Anything, "destroy-sid").Return(nil).Twice()

	require.NoError(t, svc.Destroy(context.Background(), tok))
	// Повторное уничтожение идемпотентно.
	require.NoError(t, svc.Destroy(context.Background(), tok))

	// Невалидный токен — нечего уничтожать, не ошибка.
	require.NoError(t, svc.Destroy(context.Background(), "garbage"))

	sessions.AssertExpectations(t)
}
