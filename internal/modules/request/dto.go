package request

type CreateRequestRequest struct {
	WorkerID           int64  `json:"worker_id" binding:"required"`
	ProblemDescription string `json:"problem_description" binding:"required"`
}

type UpdateRequestRequest struct {
	ProblemDescription string `json:"problem_description" binding:"required"`
}

type UpdateStatusRequest struct {
	Status         string  `json:"status" binding:"required"`
	RejectedReason *string `json:"rejected_reason"`
}
