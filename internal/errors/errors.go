package errors

// DomainError is an inspectable error with a stable code the HTTP layer can
// map to a status without parsing messages.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
