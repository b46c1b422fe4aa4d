package inventory

import "fmt"

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation targeting an asset id that is not in the
// live table.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("asset %d not found", e.ID)
}

// AuthorizationError reports a mutation attempted without an acting identity.
// Reads never require one.
type AuthorizationError struct{}

func (e *AuthorizationError) Error() string {
	return "mutation requires an acting user"
}
