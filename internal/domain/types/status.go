package types

// StatusKind classifies the message shown next to the current results.
type StatusKind int

const (
	StatusOK StatusKind = iota
	StatusError
	StatusCancelled
)

// String returns a lower-case label for the kind.
func (k StatusKind) String() string {
	switch k {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Status is the current user-facing status message of a session.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
}
