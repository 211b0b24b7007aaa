package message_test

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

	"github.com/magabrotheeeer/members-club/internal/models"
	"github.com/magabrotheeeer/members-club/internal/services/message"
)

type MessageRepoMock struct {
	mock.Mock
}

func (m *MessageRepoMock) CreateMessage(ctx context.Context, msg models.Message) (int, error) {
	args := m.Called(ctx, msg)
	return args.Int(0), args.Error(1)
}

func (m *MessageRepoMock) ListMessages(ctx context.Context) ([]*models.MessageWithAuthor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MessageWithAuthor), args.Error(1)
}

func (m *MessageRepoMock) DeleteMessage(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Post(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(repo *MessageRepoMock, cache *CacheMock)
		wantID     int
		wantErr    bool
	}{
		{
			name: "successful post invalidates cache",
			setupMocks: func(repo *MessageRepoMock, cache *CacheMock) {
				repo.On("CreateMessage", mock.Anything, models.Message{
					Content:  "hello",
					AuthorID: 4,
				}).Return(11, nil).Once()
				cache.On("Invalidate", "messages:all").Return(nil).Once()
			},
			wantID: 11,
		},
		{
			name: "repository error",
			setupMocks: func(repo *MessageRepoMock, _ *CacheMock) {
				repo.On("CreateMessage", mock.Anything, mock.Anything).
					Return(0, errors.New("db error")).Once()
			},
			wantErr: true,
		},
		{
			name: "cache failure is not fatal",
			setupMocks: func(repo *MessageRepoMock, cache *CacheMock) {
				repo.On("CreateMessage", mock.Anything, mock.Anything).
					Return(12, nil).Once()
				cache.On("Invalidate", "messages:all").
					Return(errors.New("redis down")).Once()
			},
			wantID: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MessageRepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := message.New(repo, cache, newNoopLogger())
			id, err := svc.Post(context.Background(), 4, "hello")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_List(t *testing.T) {
	msgs := []*models.MessageWithAuthor{
		{ID: 1, Content: "first", AuthorUsername: "alice"},
		{ID: 2, Content: "second", AuthorUsername: "bob", AuthorIsAdmin: true},
	}

	t.Run("cache miss reads from repository and caches", func(t *testing.T) {
		repo := new(MessageRepoMock)
		cache := new(CacheMock)

		cache.On("Get", "messages:all", mock.Anything).Return(false, nil).Once()
		repo.On("ListMessages", mock.Anything).Return(msgs, nil).Once()
		cache.On("Set", "messages:all", msgs, 5*time.Minute).Return(nil).Once()

		svc := message.New(repo, cache, newNoopLogger())
		got, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, msgs, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(MessageRepoMock)
		cache := new(CacheMock)

		cache.On("Get", "messages:all", mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(1).(*[]*models.MessageWithAuthor)
				*out = msgs
			}).Return(true, nil).Once()

		svc := message.New(repo, cache, newNoopLogger())
		got, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, msgs, got)
		repo.AssertNotCalled(t, "ListMessages", mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("cache error falls through to repository", func(t *testing.T) {
		repo := new(MessageRepoMock)
		cache := new(CacheMock)

		cache.On("Get", "messages:all", mock.Anything).
			Return(false, errors.New("redis down")).Once()
		repo.On("ListMessages", mock.Anything).Return(msgs, nil).Once()
		cache.On("Set", "messages:all", msgs, 5*time.Minute).
			Return(errors.New("redis down")).Once()

		svc := message.New(repo, cache, newNoopLogger())
		got, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.Equal(t, msgs, got)
		repo.AssertExpectations(t)
	})

	t.Run("empty board is an empty list, not nil", func(t *testing.T) {
		repo := new(MessageRepoMock)
		cache := new(CacheMock)

		cache.On("Get", "messages:all", mock.Anything).Return(false, nil).Once()
		repo.On("ListMessages", mock.Anything).Return(nil, nil).Once()
		cache.On("Set", "messages:all", []*models.MessageWithAuthor{}, 5*time.Minute).
			Return(nil).Once()

		svc := message.New(repo, cache, newNoopLogger())
		got, err := svc.List(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Len(t, got, 0)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MessageRepoMock)
		cache := new(CacheMock)

		cache.On("Get", "messages:all", mock.Anything).Return(false, nil).Once()
		repo.On("ListMessages", mock.Anything).
			Return(nil, errors.New("db error")).Once()

		svc := message.New(repo, cache, newNoopLogger())
		got, err := svc.List(context.Background())

		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestService_Delete(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(repo *MessageRepoMock, cache *CacheMock)
		wantCount  int
		wantErr    bool
	}{
		{
			name: "successful delete",
			setupMocks: func(repo *MessageRepoMock, cache *CacheMock) {
				repo.On("DeleteMessage", mock.Anything, 3).Return(1, nil).Once()
				cache.On("Invalidate", "messages:all").Return(nil).Once()
			},
			wantCount: 1,
		},
		{
			name: "missing id is silent success",
			setupMocks: func(repo *MessageRepoMock, cache *CacheMock) {
				repo.On("DeleteMessage", mock.Anything, 3).Return(0, nil).Once()
				cache.On("Invalidate", "messages:all").Return(nil).Once()
			},
			wantCount: 0,
		},
		{
			name: "repository error",
			setupMocks: func(repo *MessageRepoMock, _ *CacheMock) {
				repo.On("DeleteMessage", mock.Anything, 3).
					Return(0, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MessageRepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := message.New(repo, cache, newNoopLogger())
			count, err := svc.Delete(context.Background(), 3)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantCount, count)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}
