package libpqmxx

// ExecutionError reports a query failure raised by the server: a statement
// that could not be executed, surfaced with the connection's error text.
// It is the only error category meant for application-level handling;
// protocol contract breaches panic instead (see wire.ProtocolError).
type ExecutionError struct {
	Message string
}

func (e *ExecutionError) Error() string {
	return e.Message
}
