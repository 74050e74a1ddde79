package request

import (
	"context"

	"craftmosul/internal/domain"
)

// RequestRepository defines the storage operations the lifecycle needs.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	List(ctx context.Context, limit, offset int) ([]domain.Request, int64, error)
	ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Request, int64, error)
	ListByWorker(ctx context.Context, workerID int64, limit, offset int) ([]domain.Request, int64, error)
	UpdateDescription(ctx context.Context, id int64, description string) (*domain.Request, error)
	Transition(ctx context.Context, id int64, to domain.RequestStatus, rejectedReason *string) (*domain.Request, error)
	Delete(ctx context.Context, id int64) error
}

// WorkerDirectory resolves worker rows for existence and ownership checks.
type WorkerDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Worker, error)
}
