package roster

import "fmt"

// ValidationError reports a mandatory field that was empty or absent on
// append. The table is left unchanged.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

// NotFoundError reports an identity lookup that matched zero rows. The table
// is left unchanged; there is deliberately no positional fallback.
type NotFoundError struct {
	Column string
	Value  string
	Index  int // set for positional lookups, -1 otherwise
}

func (e *NotFoundError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("no record with %s = %q", e.Column, e.Value)
	}
	return fmt.Sprintf("no record at position %d", e.Index)
}

// IntegrityError reports a post-mutation invariant violation. The mutation
// was rolled back and the table reverted to its previous state.
type IntegrityError struct {
	Op     string
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s aborted: %s", e.Op, e.Reason)
}
