package domain

import "time"

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCompleted RequestStatus = "completed"
	RequestCancelled RequestStatus = "cancelled"
)

// requestTransitions is the full legality table for status changes.
// Statuses absent from the map are terminal. The table applies to every
// role, admins included.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending:  {RequestAccepted, RequestRejected, RequestCancelled},
	RequestAccepted: {RequestCompleted, RequestCancelled},
}

// CanTransition reports whether a request may move from one status to another.
func CanTransition(from, to RequestStatus) bool {
	for _, t := range requestTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal targets for a status, empty for
// terminal states.
func AllowedTransitions(from RequestStatus) []RequestStatus {
	return requestTransitions[from]
}

// ValidRequestStatus reports whether s is one of the five known statuses.
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// Request is a client's service request addressed to a single worker.
type Request struct {
	ID                 int64         `json:"id" gorm:"primaryKey"`
	ClientID           int64         `json:"client_id" gorm:"not null;index"`
	WorkerID           int64         `json:"worker_id" gorm:"not null;index"`
	ProblemDescription string        `json:"problem_description" gorm:"type:text;not null"`
	Status             RequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	RejectedReason     *string       `json:"rejected_reason,omitempty" gorm:"type:text"`
	CompletedAt        *time.Time    `json:"completed_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`

	Client *User   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Worker *Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

func (Request) TableName() string { return "requests" }
