package services

import "fmt"

// NotFoundError covers operations that reference a record that does not
// exist or does not belong to the requesting user. Ownership misses are
// deliberately reported as not-found, never as forbidden, so the existence
// of other users' data is not leaked.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ReferentialIntegrityError rejects a delete that would orphan historical
// records, e.g. removing a friend still referenced by a shared expense.
type ReferentialIntegrityError struct {
	Message string
}

func (e *ReferentialIntegrityError) Error() string {
	return e.Message
}
