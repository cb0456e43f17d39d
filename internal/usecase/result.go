package usecase

// State is the lifecycle of one independently fetched panel.
type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Result carries one panel of a composite view. A failed or still-pending
// panel never blanks its siblings.
type Result[T any] struct {
	State State  `json:"state"`
	Data  *T     `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func Pending[T any]() Result[T] { return Result[T]{State: StatePending} }

func Ready[T any](v T) Result[T] { return Result[T]{State: StateReady, Data: &v} }

func Failed[T any](err error) Result[T] {
	return Result[T]{State: StateFailed, Error: err.Error()}
}

// Ok reports whether the panel has data.
func (r Result[T]) Ok() bool { return r.State == StateReady }
