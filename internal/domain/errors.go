package domain

import "fmt"

// ValidationError reports the first rule a piece of user input violated.
// It is raised before any remote call is made.
type ValidationError struct {
	Field   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthRequiredError is returned when an action needs a signed-in user and none is present.
type AuthRequiredError struct {
	Action string
}

func (e *AuthRequiredError) Error() string {
	if e.Action == "" {
		return "sign in required"
	}
	return "sign in required to " + e.Action
}

// RemoteWriteError wraps a failure of the document store to apply a write batch.
// The batch is atomic, so nothing was applied.
type RemoteWriteError struct {
	Err error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("remote write failed: %v", e.Err)
}

func (e *RemoteWriteError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when a lookup by identifier matches no record.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s [%s] not found", e.Kind, e.ID)
}
