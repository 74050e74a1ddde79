package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"craftmosul/internal/database"
	"craftmosul/internal/domain"
	"craftmosul/internal/middleware"
	"craftmosul/internal/modules/review"
	jwtsvc "craftmosul/internal/pkg/jwt"
	"craftmosul/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type dataResponse struct {
	Success bool           `json:"success"`
	Data    domain.Request `json:"data"`
}

type errorResponse struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testEnv struct {
	router      *gin.Engine
	db          *gorm.DB
	clientToken string
	workerToken string
	adminToken  string
	worker      domain.Worker
	clientID    int64
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	client := domain.User{Email: "client@test.iq", PasswordHash: "x", Role: domain.RoleClient, Name: "Client", IsActive: true}
	require.NoError(t, db.Create(&client).Error)
	workerUser := domain.User{Email: "worker@test.iq", PasswordHash: "x", Role: domain.RoleWorker, Name: "Worker", IsActive: true}
	require.NoError(t, db.Create(&workerUser).Error)
	admin := domain.User{Email: "admin@test.iq", PasswordHash: "x", Role: domain.RoleAdmin, Name: "Admin", IsActive: true}
	require.NoError(t, db.Create(&admin).Error)

	profession := domain.Profession{Name: "Electrician", NameAr: "كهربائي"}
	require.NoError(t, db.Create(&profession).Error)
	w := domain.Worker{UserID: workerUser.ID, ProfessionID: profession.ID, IsAvailable: true}
	require.NoError(t, db.Create(&w).Error)

	userRepo := repository.NewUserRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New("test-secret", time.Hour)

	requestHandler := NewHandler(NewService(requestRepo, workerRepo))
	reviewHandler := review.NewHandler(review.NewService(reviewRepo, requestRepo))

	router := gin.New()
	v1 := router.Group("/api/v1")
	protected := v1.Group("/")
	protected.Use(middleware.Auth(j, userRepo))
	requestHandler.RegisterRoutes(v1, protected)
	reviewHandler.RegisterRoutes(v1, protected)

	clientToken, err := j.GenerateToken(client.ID, string(domain.RoleClient))
	require.NoError(t, err)
	workerToken, err := j.GenerateToken(workerUser.ID, string(domain.RoleWorker))
	require.NoError(t, err)
	adminToken, err := j.GenerateToken(admin.ID, string(domain.RoleAdmin))
	require.NoError(t, err)

	return &testEnv{
		router:      router,
		db:          db,
		clientToken: clientToken,
		workerToken: workerToken,
		adminToken:  adminToken,
		worker:      w,
		clientID:    client.ID,
	}
}

func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) createRequest(t *testing.T) domain.Request {
	t.Helper()
	w := performRequest(env.router, http.MethodPost, "/api/v1/requests", gin.H{
		"worker_id":           env.worker.ID,
		"problem_description": "No power in the kitchen",
	}, env.clientToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, domain.RequestPending, resp.Data.Status)
	return resp.Data
}

func (env *testEnv) patchStatus(t *testing.T, id int64, token string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	return performRequest(env.router, http.MethodPatch,
		fmt.Sprintf("/api/v1/requests/%d/status", id), body, token)
}

func TestLifecycle_AcceptCompleteReview(t *testing.T) {
	env := setupEnv(t)
	r := env.createRequest(t)

	w := env.patchStatus(t, r.ID, env.workerToken, gin.H{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.patchStatus(t, r.ID, env.workerToken, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.RequestCompleted, resp.Data.Status)
	assert.NotNil(t, resp.Data.CompletedAt)

	w = performRequest(env.router, http.MethodPost, "/api/v1/reviews", gin.H{
		"request_id": r.ID,
		"rating":     5,
		"comment":    "Fast and tidy work",
	}, env.clientToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var updated domain.Worker
	require.NoError(t, env.db.First(&updated, env.worker.ID).Error)
	assert.InDelta(t, 5.0, updated.AverageRating, 0.001)
	assert.Equal(t, int64(1), updated.TotalJobs)
}

func TestLifecycle_RejectWithReason(t *testing.T) {
	env := setupEnv(t)
	r := env.createRequest(t)

	reason := "غير متوفر هذا الأسبوع"
	w := env.patchStatus(t, r.ID, env.workerToken, gin.H{
		"status":          "rejected",
		"rejected_reason": reason,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.RequestRejected, resp.Data.Status)
	require.NotNil(t, resp.Data.RejectedReason)
	assert.Equal(t, reason, *resp.Data.RejectedReason)

	// Terminal: even an admin cannot pull it back.
	w = env.patchStatus(t, r.ID, env.adminToken, gin.H{"status": "accepted"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "ILLEGAL_TRANSITION", errResp.Error.Code)
	assert.Contains(t, errResp.Error.Message, "rejected")
}

func TestLifecycle_RejectWithoutReasonFails(t *testing.T) {
	env := setupEnv(t)
	r := env.createRequest(t)

	w := env.patchStatus(t, r.ID, env.workerToken, gin.H{"status": "rejected"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "VALIDATION_ERROR", errResp.Error.Code)
}

func TestLifecycle_ClientCannotAccept(t *testing.T) {
	env := setupEnv(t)
	r := env.createRequest(t)

	w := env.patchStatus(t, r.ID, env.clientToken, gin.H{"status": "accepted"})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestLifecycle_ClientCancels(t *testing.T) {
	env := setupEnv(t)
	r := env.createRequest(t)

	w := env.patchStatus(t, r.ID, env.clientToken, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dataResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.RequestCancelled, resp.Data.Status)
}

func TestLifecycle_ReviewBeforeCompletionRejected(t *testing.T) {
	env := setupEnv(t)
	r := env.createRequest(t)

	w := performRequest(env.router, http.MethodPost, "/api/v1/reviews", gin.H{
		"request_id": r.ID,
		"rating":     5,
	}, env.clientToken)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var errResp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "REQUEST_NOT_COMPLETED", errResp.Error.Code)
}

func TestMutationsRequireAuth(t *testing.T) {
	env := setupEnv(t)

	w := performRequest(env.router, http.MethodPost, "/api/v1/requests", gin.H{
		"worker_id":           env.worker.ID,
		"problem_description": "x",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicReadsNeedNoToken(t *testing.T) {
	env := setupEnv(t)
	r := env.createRequest(t)

	w := performRequest(env.router, http.MethodGet, fmt.Sprintf("/api/v1/requests/%d", r.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(env.router, http.MethodGet,
		fmt.Sprintf("/api/v1/requests/client/%d", env.clientID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
}
