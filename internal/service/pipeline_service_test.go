package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-journey-tracker/internal/core/domain"
	"payment-journey-tracker/internal/core/ports"
	"payment-journey-tracker/internal/core/ports/mocks"
	"payment-journey-tracker/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type pipelineTestDeps struct {
	svc       *PipelineService
	eventRepo *mocks.MockEventRepository
	instRepo  *mocks.MockInstanceRepository
	processor *mocks.MockResourceProcessor
	tracker   *mocks.MockJourneyTracker
	clock     *fakeClock
	ctrl      *gomock.Controller
}

func setupPipeline(t *testing.T) *pipelineTestDeps {
	ctrl := gomock.NewController(t)
	d := &pipelineTestDeps{
		eventRepo: mocks.NewMockEventRepository(ctrl),
		instRepo:  mocks.NewMockInstanceRepository(ctrl),
		processor: mocks.NewMockResourceProcessor(ctrl),
		tracker:   mocks.NewMockJourneyTracker(ctrl),
		clock:     newFakeClock(time.Now()),
		ctrl:      ctrl,
	}
	d.svc = NewPipelineService(
		d.eventRepo, d.instRepo,
		[]ports.ResourceProcessor{d.processor},
		d.tracker, d.clock, zerolog.Nop(),
		PipelineOptions{Workers: 1, QueueSize: 8, MaxAttempts: 3, MaxEventAge: 24 * time.Hour},
	)
	return d
}

func queuedEvent(clock *fakeClock) *domain.WebhookEvent {
	resourceID := "transfer-1"
	return &domain.WebhookEvent{
		ID:              uuid.New(),
		EventID:         "evt-1",
		EventType:       "transfer_created",
		ResourceType:    domain.ResourceTypeTransfer,
		ResourceID:      &resourceID,
		EventTimestamp:  clock.Now(),
		ReceivedAt:      clock.Now(),
		Payload:         []byte(`{"amount":"100.00"}`),
		ProcessingState: domain.ProcessingStateQueued,
	}
}

func TestPipeline_ProcessEvent_Success(t *testing.T) {
	d := setupPipeline(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	event := queuedEvent(d.clock)

	d.eventRepo.EXPECT().GetByID(ctx, event.ID).Return(event, nil)
	d.eventRepo.EXPECT().Update(ctx, event).Return(nil).Times(2)
	d.eventRepo.EXPECT().ListRecentByResource(ctx, "transfer-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	d.instRepo.EXPECT().ListOpenByResource(ctx, "transfer-1").Return(nil, nil)
	d.processor.EXPECT().CanProcess(event).Return(true)
	d.processor.EXPECT().Process(ctx, event, gomock.Any()).Return(nil)
	d.tracker.EXPECT().ProcessEvent(ctx, event, gomock.Any()).Return(nil)

	err := d.svc.ProcessEvent(ctx, event.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.ProcessingStateCompleted, event.ProcessingState)
	assert.Equal(t, 1, event.ProcessingAttempts)
	assert.NotNil(t, event.ProcessedAt)
	assert.NotNil(t, event.ProcessingDurationMs)
	assert.Nil(t, event.LastProcessingError)
}

func TestPipeline_ProcessEvent_NotFound(t *testing.T) {
	d := setupPipeline(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	id := uuid.New()

	d.eventRepo.EXPECT().GetByID(ctx, id).Return(nil, nil)

	err := d.svc.ProcessEvent(ctx, id)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PIPE_001", appErr.Code)
}

func TestPipeline_ProcessEvent_TerminalSkipped(t *testing.T) {
	d := setupPipeline(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	event := queuedEvent(d.clock)
	event.ProcessingState = domain.ProcessingStateCompleted

	d.eventRepo.EXPECT().GetByID(ctx, event.ID).Return(event, nil)

	require.NoError(t, d.svc.ProcessEvent(ctx, event.ID))
	assert.Equal(t, 0, event.ProcessingAttempts, "terminal event must not reprocess")
}

func TestPipeline_ProcessEvent_RetryableFailureRequeues(t *testing.T) {
	d := setupPipeline(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	event := queuedEvent(d.clock)

	d.eventRepo.EXPECT().GetByID(ctx, event.ID).Return(event, nil)
	d.eventRepo.EXPECT().Update(ctx, event).Return(nil).Times(2)
	d.eventRepo.EXPECT().ListRecentByResource(ctx, "transfer-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	d.instRepo.EXPECT().ListOpenByResource(ctx, "transfer-1").Return(nil, nil)
	d.processor.EXPECT().CanProcess(event).Return(true)
	d.processor.EXPECT().Process(ctx, event, gomock.Any()).Return(errors.New("provider glitch"))
	d.processor.EXPECT().Name().Return("transfer").AnyTimes()

	err := d.svc.ProcessEvent(ctx, event.ID)
	require.Error(t, err)

	assert.Equal(t, domain.ProcessingStateQueued, event.ProcessingState)
	assert.Equal(t, 1, event.ProcessingAttempts)
	require.NotNil(t, event.LastProcessingError)
	assert.Contains(t, *event.LastProcessingError, "provider glitch")
}

func TestPipeline_ProcessEvent_ValidationErrorQuarantinesImmediately(t *testing.T) {
	d := setupPipeline(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	event := queuedEvent(d.clock)

	d.eventRepo.EXPECT().GetByID(ctx, event.ID).Return(event, nil)
	d.eventRepo.EXPECT().Update(ctx, event).Return(nil).Times(2)
	d.eventRepo.EXPECT().ListRecentByResource(ctx, "transfer-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	d.instRepo.EXPECT().ListOpenByResource(ctx, "transfer-1").Return(nil, nil)
	d.processor.EXPECT().CanProcess(event).Return(true)
	d.processor.EXPECT().Process(ctx, event, gomock.Any()).Return(errors.New("validation: transfer event carries no transfer identifier"))
	d.processor.EXPECT().Name().Return("transfer").AnyTimes()

	err := d.svc.ProcessEvent(ctx, event.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PIPE_003", appErr.Code)

	assert.Equal(t, domain.ProcessingStateQuarantined, event.ProcessingState)
	assert.NotNil(t, event.QuarantinedAt)
	require.NotNil(t, event.QuarantineReason)
	assert.Contains(t, *event.QuarantineReason, "quarantined after 1 attempts")
}

func TestPipeline_ProcessEvent_QuarantineAfterMaxAttempts(t *testing.T) {
	d := setupPipeline(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	event := queuedEvent(d.clock)
	event.ProcessingAttempts = 2 // this run is attempt 3 of 3

	d.eventRepo.EXPECT().GetByID(ctx, event.ID).Return(event, nil)
	d.eventRepo.EXPECT().Update(ctx, event).Return(nil).Times(2)
	d.eventRepo.EXPECT().ListRecentByResource(ctx, "transfer-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	d.instRepo.EXPECT().ListOpenByResource(ctx, "transfer-1").Return(nil, nil)
	d.processor.EXPECT().CanProcess(event).Return(true)
	d.processor.EXPECT().Process(ctx, event, gomock.Any()).Return(errors.New("still broken"))
	d.processor.EXPECT().Name().Return("transfer").AnyTimes()

	err := d.svc.ProcessEvent(ctx, event.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PIPE_003", appErr.Code)

	assert.Equal(t, domain.ProcessingStateQuarantined, event.ProcessingState)
	assert.Equal(t, 3, event.ProcessingAttempts)
}

func TestPipeline_ProcessEvent_StaleEventNotRetried(t *testing.T) {
	d := setupPipeline(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	event := queuedEvent(d.clock)
	event.EventTimestamp = d.clock.Now().Add(-48 * time.Hour)

	d.eventRepo.EXPECT().GetByID(ctx, event.ID).Return(event, nil)
	d.eventRepo.EXPECT().Update(ctx, event).Return(nil).Times(2)
	d.eventRepo.EXPECT().ListRecentByResource(ctx, "transfer-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	d.instRepo.EXPECT().ListOpenByResource(ctx, "transfer-1").Return(nil, nil)
	d.processor.EXPECT().CanProcess(event).Return(true)
	d.processor.EXPECT().Process(ctx, event, gomock.Any()).Return(errors.New("transient"))
	d.processor.EXPECT().Name().Return("transfer").AnyTimes()

	err := d.svc.ProcessEvent(ctx, event.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PIPE_003", appErr.Code, "stale events quarantine instead of retrying")
}

func TestPipeline_ProcessEvent_TrackerErrorDoesNotFailEvent(t *testing.T) {
	d := setupPipeline(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	event := queuedEvent(d.clock)

	d.eventRepo.EXPECT().GetByID(ctx, event.ID).Return(event, nil)
	d.eventRepo.EXPECT().Update(ctx, event).Return(nil).Times(2)
	d.eventRepo.EXPECT().ListRecentByResource(ctx, "transfer-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	d.instRepo.EXPECT().ListOpenByResource(ctx, "transfer-1").Return(nil, nil)
	d.processor.EXPECT().CanProcess(event).Return(true)
	d.processor.EXPECT().Process(ctx, event, gomock.Any()).Return(nil)
	d.tracker.EXPECT().ProcessEvent(ctx, event, gomock.Any()).Return(errors.New("tracker hiccup"))

	require.NoError(t, d.svc.ProcessEvent(ctx, event.ID))
	assert.Equal(t, domain.ProcessingStateCompleted, event.ProcessingState)
}

func TestPipeline_ProcessEvent_NoProcessorMatched(t *testing.T) {
	d := setupPipeline(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	event := queuedEvent(d.clock)
	event.ResourceType = domain.ResourceTypeUnknown

	d.eventRepo.EXPECT().GetByID(ctx, event.ID).Return(event, nil)
	d.eventRepo.EXPECT().Update(ctx, event).Return(nil).Times(2)
	d.eventRepo.EXPECT().ListRecentByResource(ctx, "transfer-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	d.instRepo.EXPECT().ListOpenByResource(ctx, "transfer-1").Return(nil, nil)
	d.processor.EXPECT().CanProcess(event).Return(false)
	d.tracker.EXPECT().ProcessEvent(ctx, event, gomock.Any()).Return(nil)

	require.NoError(t, d.svc.ProcessEvent(ctx, event.ID))
	assert.Equal(t, domain.ProcessingStateCompleted, event.ProcessingState)
}

func TestPipeline_EnqueueAndDrain(t *testing.T) {
	d := setupPipeline(t)
	defer d.ctrl.Finish()

	assert.True(t, d.svc.Enqueue(uuid.New()))

	// Drain with no workers started: the single queued item is dropped when
	// the channel closes, and later enqueues are rejected.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d.eventRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	d.svc.Start(ctx)
	d.svc.Drain()

	assert.False(t, d.svc.Enqueue(uuid.New()), "enqueue after drain must be rejected")
}

func TestPipeline_QueueFullRejects(t *testing.T) {
	eventRepo := mocks.NewMockEventRepository(gomock.NewController(t))
	instRepo := mocks.NewMockInstanceRepository(gomock.NewController(t))
	svc := NewPipelineService(eventRepo, instRepo, nil, nil, SystemClock(), zerolog.Nop(),
		PipelineOptions{Workers: 1, QueueSize: 2, MaxAttempts: 3, MaxEventAge: time.Hour})

	// Workers never started: fill the buffer.
	assert.True(t, svc.Enqueue(uuid.New()))
	assert.True(t, svc.Enqueue(uuid.New()))
	assert.False(t, svc.Enqueue(uuid.New()), "full queue sheds instead of blocking")
}
