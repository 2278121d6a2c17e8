package access

import "net/http"

type Operation string

const (
	OpRead  Operation = "read"
	OpWrite Operation = "write"
)

// Identity is the caller as established by the bearer token, if any.
type Identity struct {
	Authenticated bool
	UserID        uint
	Email         string
	Role          string
}

var Anonymous = Identity{}

// OperationForMethod maps an HTTP method onto the operation it performs.
// Safe methods read; everything else writes.
func OperationForMethod(method string) Operation {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return OpRead
	default:
		return OpWrite
	}
}
