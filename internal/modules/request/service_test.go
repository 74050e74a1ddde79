package request

import (
	"context"
	"testing"

	"craftmosul/internal/domain"
	"craftmosul/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Mock repositories
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	if req != nil {
		req.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) List(ctx context.Context, limit, offset int) ([]domain.Request, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Request), args.Get(1).(int64), args.Error(2)
}

func (m *MockRequestRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Request, int64, error) {
	args := m.Called(ctx, clientID, limit, offset)
	return args.Get(0).([]domain.Request), args.Get(1).(int64), args.Error(2)
}

func (m *MockRequestRepository) ListByWorker(ctx context.Context, workerID int64, limit, offset int) ([]domain.Request, int64, error) {
	args := m.Called(ctx, workerID, limit, offset)
	return args.Get(0).([]domain.Request), args.Get(1).(int64), args.Error(2)
}

func (m *MockRequestRepository) UpdateDescription(ctx context.Context, id int64, description string) (*domain.Request, error) {
	args := m.Called(ctx, id, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) Transition(ctx context.Context, id int64, to domain.RequestStatus, rejectedReason *string) (*domain.Request, error) {
	args := m.Called(ctx, id, to, rejectedReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *MockRequestRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockWorkerDirectory struct {
	mock.Mock
}

func (m *MockWorkerDirectory) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockWorkerDirectory) GetByUserID(ctx context.Context, userID int64) (*domain.Worker, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func newTestService() (*Service, *MockRequestRepository, *MockWorkerDirectory) {
	requests := new(MockRequestRepository)
	workers := new(MockWorkerDirectory)
	return NewService(requests, workers), requests, workers
}

func pendingRequest() *domain.Request {
	return &domain.Request{
		ID:                 10,
		ClientID:           1,
		WorkerID:           5,
		ProblemDescription: "Kitchen sink is leaking",
		Status:             domain.RequestPending,
	}
}

func clientPrincipal(id int64) domain.Principal {
	return domain.Principal{UserID: id, Role: domain.RoleClient}
}

func workerPrincipal(userID int64) domain.Principal {
	return domain.Principal{UserID: userID, Role: domain.RoleWorker}
}

var adminPrincipal = domain.Principal{UserID: 100, Role: domain.RoleAdmin}

func TestCreate_Success(t *testing.T) {
	svc, requests, workers := newTestService()
	ctx := context.Background()

	workers.On("GetByID", ctx, int64(5)).Return(&domain.Worker{ID: 5, UserID: 50}, nil)
	requests.On("Create", ctx, mock.AnythingOfType("*domain.Request")).Return(nil)
	requests.On("GetByID", ctx, int64(999)).Return(&domain.Request{
		ID:       999,
		ClientID: 1,
		WorkerID: 5,
		Status:   domain.RequestPending,
	}, nil)

	r, err := svc.Create(ctx, 1, CreateRequestRequest{
		WorkerID:           5,
		ProblemDescription: "Kitchen sink is leaking",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestPending, r.Status)
	assert.Equal(t, int64(1), r.ClientID)
	requests.AssertExpectations(t)
	workers.AssertExpectations(t)
}

func TestCreate_UnknownWorker(t *testing.T) {
	svc, _, workers := newTestService()
	ctx := context.Background()

	workers.On("GetByID", ctx, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(ctx, 1, CreateRequestRequest{
		WorkerID:           404,
		ProblemDescription: "anything",
	})

	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

func TestCreate_BlankDescription(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), 1, CreateRequestRequest{
		WorkerID:           5,
		ProblemDescription: "   ",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatus_WorkerAccepts(t *testing.T) {
	svc, requests, workers := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil)
	workers.On("GetByUserID", ctx, int64(50)).Return(&domain.Worker{ID: 5, UserID: 50}, nil)
	requests.On("Transition", ctx, int64(10), domain.RequestAccepted, (*string)(nil)).
		Return(&domain.Request{ID: 10, Status: domain.RequestAccepted}, nil)

	r, err := svc.UpdateStatus(ctx, 10, workerPrincipal(50), domain.RequestAccepted, nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, r.Status)
	requests.AssertExpectations(t)
}

func TestUpdateStatus_UnassignedWorkerForbidden(t *testing.T) {
	svc, requests, workers := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil)
	// A different worker profile than the one the request targets.
	workers.On("GetByUserID", ctx, int64(60)).Return(&domain.Worker{ID: 6, UserID: 60}, nil)

	_, err := svc.UpdateStatus(ctx, 10, workerPrincipal(60), domain.RequestAccepted, nil)

	assert.ErrorIs(t, err, ErrForbidden)
	requests.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_ClientCancelsOwn(t *testing.T) {
	svc, requests, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil)
	requests.On("Transition", ctx, int64(10), domain.RequestCancelled, (*string)(nil)).
		Return(&domain.Request{ID: 10, Status: domain.RequestCancelled}, nil)

	r, err := svc.UpdateStatus(ctx, 10, clientPrincipal(1), domain.RequestCancelled, nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestCancelled, r.Status)
}

func TestUpdateStatus_ClientCannotAccept(t *testing.T) {
	svc, requests, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil)

	_, err := svc.UpdateStatus(ctx, 10, clientPrincipal(1), domain.RequestAccepted, nil)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatus_ClientCannotCancelForeignRequest(t *testing.T) {
	svc, requests, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil)

	_, err := svc.UpdateStatus(ctx, 10, clientPrincipal(42), domain.RequestCancelled, nil)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateStatus_RejectRequiresReason(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), 10, workerPrincipal(50), domain.RequestRejected, nil)
	assert.ErrorIs(t, err, ErrValidation)

	blank := "   "
	_, err = svc.UpdateStatus(context.Background(), 10, workerPrincipal(50), domain.RequestRejected, &blank)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatus_WorkerRejectsWithReason(t *testing.T) {
	svc, requests, workers := newTestService()
	ctx := context.Background()

	reason := "غير متوفر هذا الأسبوع"
	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil)
	workers.On("GetByUserID", ctx, int64(50)).Return(&domain.Worker{ID: 5, UserID: 50}, nil)
	requests.On("Transition", ctx, int64(10), domain.RequestRejected, &reason).
		Return(&domain.Request{ID: 10, Status: domain.RequestRejected, RejectedReason: &reason}, nil)

	r, err := svc.UpdateStatus(ctx, 10, workerPrincipal(50), domain.RequestRejected, &reason)

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestRejected, r.Status)
	assert.Equal(t, reason, *r.RejectedReason)
}

func TestUpdateStatus_PendingCannotComplete(t *testing.T) {
	svc, requests, workers := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil)
	workers.On("GetByUserID", ctx, int64(50)).Return(&domain.Worker{ID: 5, UserID: 50}, nil)

	_, err := svc.UpdateStatus(ctx, 10, workerPrincipal(50), domain.RequestCompleted, nil)

	var te *TransitionError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, domain.RequestPending, te.From)
	assert.Equal(t, domain.RequestCompleted, te.To)
}

func TestUpdateStatus_TerminalStatesAreTerminalForAdmin(t *testing.T) {
	svc, requests, _ := newTestService()
	ctx := context.Background()

	for _, terminal := range []domain.RequestStatus{
		domain.RequestRejected, domain.RequestCompleted, domain.RequestCancelled,
	} {
		r := pendingRequest()
		r.Status = terminal
		requests.ExpectedCalls = nil
		requests.On("GetByID", ctx, int64(10)).Return(r, nil)

		_, err := svc.UpdateStatus(ctx, 10, adminPrincipal, domain.RequestAccepted, nil)

		var te *TransitionError
		assert.ErrorAs(t, err, &te, "status %s must be terminal", terminal)
	}
}

func TestUpdateStatus_AdminSkipsOwnershipCheck(t *testing.T) {
	svc, requests, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil)
	requests.On("Transition", ctx, int64(10), domain.RequestAccepted, (*string)(nil)).
		Return(&domain.Request{ID: 10, Status: domain.RequestAccepted}, nil)

	r, err := svc.UpdateStatus(ctx, 10, adminPrincipal, domain.RequestAccepted, nil)

	assert.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, r.Status)
}

func TestUpdateStatus_InvalidStatusValue(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.UpdateStatus(context.Background(), 10, adminPrincipal, domain.RequestStatus("done"), nil)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateStatus_LostRaceReportsCurrentStatus(t *testing.T) {
	svc, requests, _ := newTestService()
	ctx := context.Background()

	// First read sees pending, but a concurrent cancel lands before our
	// transaction, so the repository refuses and the re-read sees cancelled.
	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil).Once()
	requests.On("Transition", ctx, int64(10), domain.RequestAccepted, (*string)(nil)).
		Return(nil, repository.ErrIllegalTransition)
	cancelled := pendingRequest()
	cancelled.Status = domain.RequestCancelled
	requests.On("GetByID", ctx, int64(10)).Return(cancelled, nil).Once()

	_, err := svc.UpdateStatus(ctx, 10, adminPrincipal, domain.RequestAccepted, nil)

	var te *TransitionError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, domain.RequestCancelled, te.From)
}

func TestUpdateDescription_AssignedWorkerMayEdit(t *testing.T) {
	svc, requests, workers := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil)
	workers.On("GetByUserID", ctx, int64(50)).Return(&domain.Worker{ID: 5, UserID: 50}, nil)
	requests.On("UpdateDescription", ctx, int64(10), "Also the faucet drips").
		Return(&domain.Request{ID: 10, ProblemDescription: "Also the faucet drips"}, nil)

	r, err := svc.UpdateDescription(ctx, 10, workerPrincipal(50), "Also the faucet drips")

	assert.NoError(t, err)
	assert.Equal(t, "Also the faucet drips", r.ProblemDescription)
}

func TestUpdateDescription_StrangerForbidden(t *testing.T) {
	svc, requests, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(10)).Return(pendingRequest(), nil)

	_, err := svc.UpdateDescription(ctx, 10, clientPrincipal(42), "hijack attempt")

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestGet_NotFound(t *testing.T) {
	svc, requests, _ := newTestService()
	ctx := context.Background()

	requests.On("GetByID", ctx, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(ctx, 404)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransitionTable(t *testing.T) {
	legal := map[domain.RequestStatus][]domain.RequestStatus{
		domain.RequestPending:  {domain.RequestAccepted, domain.RequestRejected, domain.RequestCancelled},
		domain.RequestAccepted: {domain.RequestCompleted, domain.RequestCancelled},
	}
	all := []domain.RequestStatus{
		domain.RequestPending, domain.RequestAccepted, domain.RequestRejected,
		domain.RequestCompleted, domain.RequestCancelled,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, t2 := range legal[from] {
				if t2 == to {
					want = true
				}
			}
			assert.Equal(t, want, domain.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}
