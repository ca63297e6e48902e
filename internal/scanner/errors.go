package scanner

// ValidationError indicates the submitted URL was rejected before any network
// activity. Its message is safe to show to the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnreachableError indicates the target could not be fetched after both the
// HEAD and GET attempts. Message is the client-facing text; the wrapped
// transport error is kept for logs.
type UnreachableError struct {
	Message string
	Err     error
}

func (e *UnreachableError) Error() string {
	return e.Message
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}
