package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shreyasboddani/MENTICS/internal/auth"
	"github.com/shreyasboddani/MENTICS/internal/handlers"
	"github.com/shreyasboddani/MENTICS/internal/models"
	"github.com/shreyasboddani/MENTICS/internal/planner"
	"github.com/shreyasboddani/MENTICS/internal/realtime"
	"github.com/shreyasboddani/MENTICS/internal/routes"
	"github.com/shreyasboddani/MENTICS/internal/services"
	"github.com/shreyasboddani/MENTICS/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// testEnv wires the full router against an in-memory DB and a
// controllable planner.
type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	planner *planner.Mock
	hub     *realtime.Hub
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	mock := planner.NewMock()
	hub := realtime.NewHub()

	activity := services.NewActivityService(db)
	gamification := services.NewGamificationService(db)
	generations := services.NewGenerationService(db)
	quizzes := services.NewQuizService(db)
	history := services.NewHistoryService(db)
	stats := services.NewStatsService(db, activity)
	tasks := services.NewTaskService(db, generations, gamification, activity)
	orchestrator := services.NewOrchestrator(db, mock, history, generations, quizzes, activity, 5)

	paths := handlers.NewPathCache()
	router := routes.Setup(routes.Handlers{
		Auth:      handlers.NewAuthHandler(db, gamification),
		Tasks:     handlers.NewTaskHandler(tasks, orchestrator, paths, hub),
		Quiz:      handlers.NewQuizHandler(quizzes),
		Stats:     handlers.NewStatsHandler(stats),
		Dashboard: handlers.NewDashboardHandler(db, gamification, activity),
		Chat:      handlers.NewChatHandler(mock, history, orchestrator, tasks, paths, hub),
		WS:        handlers.NewWSHandler(hub),
	})

	return &testEnv{router: router, db: db, planner: mock, hub: hub}
}

// seedUser creates a user with a bcrypt password and gamification row
// and returns a valid token.
func (e *testEnv) seedUser(t *testing.T, id uint, email string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, e.db.Create(&models.User{
		ID: id, Email: email, Name: "Student", Password: string(hashed),
	}).Error)
	require.NoError(t, e.db.Create(&models.GamificationStats{UserID: id}).Error)

	token, err := auth.GenerateToken(id, email)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
