package remove

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Delete(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRemoveHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setupMocks     func(m *ServiceMock)
		wantStatusCode int
		wantLocation   string
		wantError      string
	}{
		{
			name: "delete redirects back to the board",
			id:   "11",
			setupMocks: func(m *ServiceMock) {
				m.On("Delete", mock.Anything, 11).Return(1, nil).Once()
			},
			wantStatusCode: http.StatusSeeOther,
			wantLocation:   "/new-message",
		},
		{
			name: "deleting a missing message is still a success",
			id:   "404",
			setupMocks: func(m *ServiceMock) {
				m.On("Delete", mock.Anything, 404).Return(0, nil).Once()
			},
			wantStatusCode: http.StatusSeeOther,
			wantLocation:   "/new-message",
		},
		{
			name:           "invalid id format",
			id:             "abc",
			setupMocks:     func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid id",
		},
		{
			name: "storage error",
			id:   "11",
			setupMocks: func(m *ServiceMock) {
				m.On("Delete", mock.Anything, 11).Return(0, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setupMocks(serviceMock)
			handler := New(newNoopLogger(), serviceMock)

			req := httptest.NewRequest(http.MethodPost, "/delete-message/"+tt.id, nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			} else {
				var got map[string]any
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantError, got["error"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
