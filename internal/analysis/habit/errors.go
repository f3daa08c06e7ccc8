package habit

import "fmt"

// InvalidSampleError rejects a malformed or out-of-range visit at ingestion.
// The whole ingestion call fails so data-quality problems surface upstream.
type InvalidSampleError struct {
	Index  int
	Field  string
	Reason string
}

func (e *InvalidSampleError) Error() string {
	return fmt.Sprintf("invalid visit sample %d: %s %s", e.Index, e.Field, e.Reason)
}

// InsufficientDataError means there are not enough samples yet. It is an
// expected steady state for new users, not a failure.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("not enough data: have %d visit samples, need %d", e.Have, e.Need)
}

// NamingCollaboratorError reports a naming failure for a single candidate.
// The candidate is dropped; the rest of the batch proceeds.
type NamingCollaboratorError struct {
	PlaceKey string
	Err      error
}

func (e *NamingCollaboratorError) Error() string {
	return fmt.Sprintf("naming failed for place %s: %v", e.PlaceKey, e.Err)
}

func (e *NamingCollaboratorError) Unwrap() error { return e.Err }

// PersistenceConflictError is returned by a HabitStore when an upsert fails.
// The miner never retries it.
type PersistenceConflictError struct {
	UserID   string
	PlaceKey string
	Err      error
}

func (e *PersistenceConflictError) Error() string {
	return fmt.Sprintf("failed to persist habit for user %s at place %s: %v", e.UserID, e.PlaceKey, e.Err)
}

func (e *PersistenceConflictError) Unwrap() error { return e.Err }
