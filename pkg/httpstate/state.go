package httpstate

// Phase is the lifecycle stage of a tracked request.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSuccess Phase = "success"
	PhaseError   Phase = "error"
)

func (p Phase) String() string { return string(p) }

// State is a snapshot of a tracked request. Nil pointers mean absent. At most
// one of IsLoading, IsSuccess and IsError is true.
type State[T any] struct {
	Data      *T      `json:"data"`
	Status    *int    `json:"status"`
	IsLoading bool    `json:"isLoading"`
	IsSuccess bool    `json:"isSuccess"`
	IsError   bool    `json:"isError"`
	Error     *string `json:"error"`
}

// Phase derives the lifecycle stage from the flags.
func (s State[T]) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseLoading
	case s.IsSuccess:
		return PhaseSuccess
	case s.IsError:
		return PhaseError
	default:
		return PhaseIdle
	}
}

func loadingState[T any]() State[T] {
	return State[T]{IsLoading: true}
}

func (s State[T]) withStatus(code int) State[T] {
	s.Status = &code
	return s
}

func (s State[T]) succeeded(data T) State[T] {
	s.Data = &data
	s.IsLoading = false
	s.IsSuccess = true
	s.IsError = false
	s.Error = nil
	return s
}

func (s State[T]) failed(msg string) State[T] {
	s.Data = nil
	s.IsLoading = false
	s.IsSuccess = false
	s.IsError = true
	s.Error = &msg
	return s
}
