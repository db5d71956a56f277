package cart

import "github.com/mkhai207/app-shop-checkout/internal/domain"

// Status is one mutation's lifecycle position.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// MutationState is the status plus the user-facing message for one
// mutation kind.
type MutationState struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// State is the explicit application-state object for the cart: the last
// authoritative snapshot plus the per-mutation status flags. It is
// mutated only through Slice transitions, never directly.
type State struct {
	Cart   *domain.Cart  `json:"cart"`
	Add    MutationState `json:"add"`
	Update MutationState `json:"update"`
	Remove MutationState `json:"remove"`
	Clear  MutationState `json:"clear"`
}

func initialState() State {
	return State{
		Add:    MutationState{Status: StatusIdle},
		Update: MutationState{Status: StatusIdle},
		Remove: MutationState{Status: StatusIdle},
		Clear:  MutationState{Status: StatusIdle},
	}
}
