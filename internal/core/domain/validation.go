package domain

// ValidationError reports a missing or malformed field. Message is shown to
// the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
