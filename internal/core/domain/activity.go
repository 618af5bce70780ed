package domain

import "time"

// ActivityKind identifies what the operator attempted.
type ActivityKind string

const (
	ActivityLogin            ActivityKind = "login"
	ActivityRegister         ActivityKind = "register"
	ActivityRoleConflict     ActivityKind = "role_conflict"
	ActivityMint             ActivityKind = "mint"
	ActivityCreateCollection ActivityKind = "create_collection"
)

// Activity is an audit record of a state-changing attempt.
type Activity struct {
	Kind ActivityKind
	Role Role
	// Account is the hex account id, empty when unknown.
	Account string
	// Subject is an optional collection or brand name.
	Subject   string
	Succeeded bool
	// Detail carries the error text on failure.
	Detail string
	At     time.Time
}
