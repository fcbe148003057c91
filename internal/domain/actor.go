package domain

// Role is the access level of an actor, resolved by the external
// authentication layer before a request reaches the engine
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

// IsStaff returns true for roles allowed to decide bookings,
// change payment status and toggle the active flag
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// IsAuthenticated returns true for any identified (non-guest) actor
func (r Role) IsAuthenticated() bool {
	return r == RoleUser || r.IsStaff()
}

// Actor is the resolved identity performing an operation.
// The engine never authenticates; it receives the actor as an
// explicit parameter on every mutating call.
type Actor struct {
	ID    int64
	Email string
	Role  Role
}
