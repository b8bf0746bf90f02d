package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"icebreaker/backend/internal/hub"
	"icebreaker/backend/internal/models"
	"icebreaker/backend/internal/repository/gormstore"
	"icebreaker/backend/internal/service"
	"icebreaker/backend/internal/testing/testdb"
	"icebreaker/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "handler-test-secret-0123"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	svc    Services
	events *hub.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := gormstore.New(testdb.New(t))
	events := hub.NewHub()
	log := zap.NewNop()
	svc := Services{
		Cards:      service.NewGameCardService(store, events, log),
		Catalog:    service.NewCatalogService(store, log),
		Categories: service.NewCategoryService(store, log),
		Collection: service.NewCollectionService(store, log),
		Deletion:   service.NewDeletionService(store, events, log),
		Ratings:    service.NewRatingService(store, events, log),
		Reports:    service.NewReportService(store, log),
		Accounts:   service.NewAccountService(store, testSecret, time.Hour, log),
	}

	router := gin.New()
	New(svc, events, testSecret, log).RegisterRoutes(router.Group("/api/v1"))
	return &testServer{router: router, svc: svc, events: events}
}

// register creates a user and returns a bearer header carrying the given roles.
func (s *testServer) register(t *testing.T, username string, roles ...string) (uint, string) {
	t.Helper()
	user, _, err := s.svc.Accounts.Register(context.Background(), username, username+"@example.com", "password123")
	require.NoError(t, err)
	if len(roles) == 0 {
		roles = []string{models.RoleUser}
	}
	token, err := jwt.GenerateToken(testSecret, user.ID, roles, time.Hour)
	require.NoError(t, err)
	return user.ID, "Bearer " + token
}

func (s *testServer) do(t *testing.T, method, path, authorization string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) createCard(t *testing.T, authorization, title string, categories ...string) GameCardResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/gamecards", authorization, GameCardInput{
		Title:      title,
		Rules:      "rules",
		Categories: categories,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[GameCardResponse](t, w)
}
