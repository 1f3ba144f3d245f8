package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"
	"payment-journey-tracker/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Webhook Handler Tests ---

func TestWebhookReceive_AcksAndPassesSignature(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReceiver := mocks.NewMockWebhookReceiver(ctrl)
	h := NewWebhookHandler(mockReceiver)

	body := []byte(`{"id":"evt-1","topic":"customer_created"}`)
	mockReceiver.EXPECT().
		HandleWebhook(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req ports.WebhookRequest) ports.WebhookAck {
			assert.Equal(t, body, req.Body)
			assert.Equal(t, "abc123", req.Signature)
			return ports.WebhookAck{Received: true, EventID: "evt-1", ProcessingTimeMs: 3}
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhooks", bytes.NewReader(body))
	c.Request.Header.Set(HeaderWebhookSignature, "abc123")

	h.Receive(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var ack map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.Equal(t, true, ack["received"])
	assert.Equal(t, "evt-1", ack["eventId"])
}

func TestWebhookReceive_InternalFailureStillAcked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReceiver := mocks.NewMockWebhookReceiver(ctrl)
	h := NewWebhookHandler(mockReceiver)

	mockReceiver.EXPECT().
		HandleWebhook(gomock.Any(), gomock.Any()).
		Return(ports.WebhookAck{Received: true, Error: true, RequestID: "req-1"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhooks", bytes.NewReader([]byte("{}")))

	h.Receive(c)

	assert.Equal(t, http.StatusOK, w.Code, "provider retries on non-2xx, so failures still ack")
	var ack map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.Equal(t, true, ack["error"])
}

// --- Journey Handler Tests ---

func sampleInstance() domain.JourneyInstance {
	now := time.Now().UTC()
	return domain.JourneyInstance{
		ID:                uuid.New(),
		DefinitionID:      uuid.New(),
		DefinitionVersion: 1,
		ResourceID:        "transfer-1",
		ResourceType:      domain.ResourceTypeTransfer,
		Status:            domain.InstanceStatusActive,
		StartTime:         now.Add(-time.Hour),
		LastEventTime:     now,
		CompletedSteps:    []string{"Transfer Pending"},
		ProgressPct:       50,
	}
}

func TestJourneyList_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInst := mocks.NewMockInstanceRepository(ctrl)
	mockStep := mocks.NewMockStepRepository(ctrl)
	h := NewJourneyHandler(mockInst, mockStep)

	inst := sampleInstance()
	mockInst.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, params ports.InstanceListParams) ([]domain.JourneyInstance, int64, error) {
			assert.Equal(t, 1, params.Page)
			assert.Equal(t, 20, params.PageSize)
			require.NotNil(t, params.Status)
			assert.Equal(t, domain.InstanceStatusActive, *params.Status)
			return []domain.JourneyInstance{inst}, 41, nil
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/journeys?status=active", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(41), data["total"])
	assert.Equal(t, float64(3), data["total_pages"])
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, inst.ID.String(), first["id"])
	assert.Equal(t, "active", first["status"])
}

func TestJourneyList_BadDefinitionID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewJourneyHandler(mocks.NewMockInstanceRepository(ctrl), mocks.NewMockStepRepository(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/journeys?definition_id=not-a-uuid", nil)

	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJourneyList_ClampsPageSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInst := mocks.NewMockInstanceRepository(ctrl)
	h := NewJourneyHandler(mockInst, mocks.NewMockStepRepository(ctrl))

	mockInst.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, params ports.InstanceListParams) ([]domain.JourneyInstance, int64, error) {
			assert.Equal(t, 20, params.PageSize, "oversized page_size falls back to the default")
			return nil, 0, nil
		})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/journeys?page_size=500", nil)

	h.List(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJourneyGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInst := mocks.NewMockInstanceRepository(ctrl)
	h := NewJourneyHandler(mockInst, mocks.NewMockStepRepository(ctrl))

	inst := sampleInstance()
	mockInst.EXPECT().GetByID(gomock.Any(), inst.ID).Return(&inst, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/journeys/"+inst.ID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: inst.ID.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, inst.ID.String(), data["id"])
	assert.Equal(t, "transfer-1", data["resource_id"])
}

func TestJourneyGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInst := mocks.NewMockInstanceRepository(ctrl)
	h := NewJourneyHandler(mockInst, mocks.NewMockStepRepository(ctrl))

	id := uuid.New()
	mockInst.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/journeys/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "JRN_002", resp["error_code"])
}

func TestJourneyGet_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewJourneyHandler(mocks.NewMockInstanceRepository(ctrl), mocks.NewMockStepRepository(ctrl))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/journeys/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJourneySteps_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInst := mocks.NewMockInstanceRepository(ctrl)
	mockStep := mocks.NewMockStepRepository(ctrl)
	h := NewJourneyHandler(mockInst, mockStep)

	inst := sampleInstance()
	steps := []domain.JourneyStep{
		{ID: uuid.New(), InstanceID: inst.ID, Sequence: 0, StepName: domain.StartedStepName, EventID: "evt-1", EventType: "transfer_created"},
		{ID: uuid.New(), InstanceID: inst.ID, Sequence: 1, StepName: "Transfer Pending", EventID: "evt-2", EventType: "transfer_pending", Expected: true, OnTime: true},
	}
	mockInst.EXPECT().GetByID(gomock.Any(), inst.ID).Return(&inst, nil)
	mockStep.EXPECT().ListByInstance(gomock.Any(), inst.ID).Return(steps, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/journeys/"+inst.ID.String()+"/steps", nil)
	c.Params = gin.Params{{Key: "id", Value: inst.ID.String()}}

	h.Steps(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, inst.ID.String(), data["instance_id"])
	items := data["steps"].([]interface{})
	require.Len(t, items, 2)
	second := items[1].(map[string]interface{})
	assert.Equal(t, "Transfer Pending", second["step_name"])
	assert.Equal(t, true, second["expected"])
}

func TestJourneyStats_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInst := mocks.NewMockInstanceRepository(ctrl)
	h := NewJourneyHandler(mockInst, mocks.NewMockStepRepository(ctrl))

	mockInst.EXPECT().GetStats(gomock.Any()).Return(&ports.InstanceStats{
		Total: 12, Active: 5, Stuck: 2, Completed: 3, Failed: 1, Abandoned: 1,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/journeys/stats", nil)

	h.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(12), data["total"])
	assert.Equal(t, float64(2), data["stuck"])
}

func TestJourneyStats_DatabaseError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInst := mocks.NewMockInstanceRepository(ctrl)
	h := NewJourneyHandler(mockInst, mocks.NewMockStepRepository(ctrl))

	mockInst.EXPECT().GetStats(gomock.Any()).Return(nil, errors.New("connection refused"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/journeys/stats", nil)

	h.Stats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Health Check Tests ---

func TestHealthCheck_AllHealthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Ping(gomock.Any()).Return(nil)
	pg.EXPECT().Name().Return("postgresql")

	rd := mocks.NewMockHealthChecker(ctrl)
	rd.EXPECT().Ping(gomock.Any()).Return(nil)
	rd.EXPECT().Name().Return("redis")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(pg, rd)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Ping(gomock.Any()).Return(nil)
	pg.EXPECT().Name().Return("postgresql")

	rd := mocks.NewMockHealthChecker(ctrl)
	rd.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	rd.EXPECT().Name().Return("redis").AnyTimes()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(pg, rd)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	redisDep := deps["redis"].(map[string]interface{})
	assert.Equal(t, "unhealthy", redisDep["status"])
}
