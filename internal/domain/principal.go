package domain

// Principal is the authenticated caller's resolved identity, attached to
// the request context by the auth middleware and passed explicitly into
// business logic.
type Principal struct {
	UserID int64
	Role   UserRole
}

func (p Principal) IsAdmin() bool  { return p.Role == RoleAdmin }
func (p Principal) IsClient() bool { return p.Role == RoleClient }
func (p Principal) IsWorker() bool { return p.Role == RoleWorker }
