package census

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyMemberList rejects submissions with a missing or zero-length
// family member list.
var ErrEmptyMemberList = errors.New("family members list is missing or empty")

// InvalidLocationError rejects a household location string that does not
// parse as "<lat>,<lon>". Raw keeps the original input for diagnostics.
type InvalidLocationError struct {
	Raw string
}

func (e *InvalidLocationError) Error() string {
	if e.Raw == "" {
		return "household location is missing"
	}
	return fmt.Sprintf("invalid household location %q", e.Raw)
}

// IncompleteMemberError rejects a member record missing one of the mandatory
// fields. Index is the record's position in the submitted order; Fields names
// every mandatory field that was absent on that record.
type IncompleteMemberError struct {
	Index  int
	Fields []string
}

func (e *IncompleteMemberError) Error() string {
	return fmt.Sprintf("family member %d is missing required fields: %s", e.Index, strings.Join(e.Fields, ", "))
}

// HouseholdCreationError surfaces the defensive post-condition check on the
// store: the household insert returned without a generated identifier.
type HouseholdCreationError struct{}

func (e *HouseholdCreationError) Error() string {
	return "household insert did not produce an identifier"
}

// StoreError wraps any transactional-store failure during begin, insert or
// commit. The transaction has already been rolled back by the time it is
// returned.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err belongs to the pre-store rejection
// class (safe to map to a 400: nothing was written).
func IsValidationError(err error) bool {
	var locErr *InvalidLocationError
	var memberErr *IncompleteMemberError
	return errors.Is(err, ErrEmptyMemberList) || errors.As(err, &locErr) || errors.As(err, &memberErr)
}
