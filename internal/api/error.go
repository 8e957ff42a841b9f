package api

// ConnectFailedMessage replaces transport-level failures; the underlying
// cause survives only through Unwrap for logging.
const ConnectFailedMessage = "Failed to connect to server. Please try again."

// Error is the single failure shape every call returns: the server's verbatim
// error string for HTTP failures, or the fixed connect message for transport
// failures (Status 0).
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// IsConnect reports whether the failure never reached the server.
func (e *Error) IsConnect() bool { return e.Status == 0 }

func connectError(cause error) *Error {
	return &Error{Message: ConnectFailedMessage, cause: cause}
}

func serverError(status int, message string) *Error {
	if message == "" {
		message = "Request failed"
	}
	return &Error{Status: status, Message: message}
}
