// Package match holds the couple decision reconciliation rules.
//
// Everything in here is pure: no storage, no clocks, no logging. The explore
// service loads a Record, runs Apply / IsHidden / PartnerSignal against it and
// persists whatever comes back.
package match

// Action is what a member did with a candidate. The zero value means the
// member has not acted yet.
type Action string

const (
	ActionNone     Action = ""
	ActionLiked    Action = "liked"
	ActionRejected Action = "rejected"
)

// Valid reports whether a is a decision a member can request.
func (a Action) Valid() bool {
	return a == ActionLiked || a == ActionRejected
}

// Status is the combined decision of both slots of a Record.
type Status string

const (
	StatusPending      Status = "pending"
	StatusBothLiked    Status = "bothLiked"
	StatusBothRejected Status = "bothRejected"
	StatusMixed        Status = "mixed"
)

// DeriveStatus combines two slot actions. It is total over every pair of
// actions; anything undecided is pending.
func DeriveStatus(a, b Action) Status {
	switch {
	case a == ActionNone || b == ActionNone:
		return StatusPending
	case a == ActionLiked && b == ActionLiked:
		return StatusBothLiked
	case a == ActionRejected && b == ActionRejected:
		return StatusBothRejected
	default:
		return StatusMixed
	}
}
