package stage

import (
	"fmt"
	"strings"
)

// UnknownNameError reports a configured name with no matching table entry.
// Wiring treats it as fatal; the message lists the valid options the way
// the operator will want to see them.
type UnknownNameError struct {
	Kind  Kind
	Name  string
	Valid []string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s stage %q, valid options: %s",
		e.Kind, e.Name, strings.Join(e.Valid, ", "))
}

// DuplicateNameError reports two registrations sharing a name within one
// kind. Detected at table construction, before any tick runs.
type DuplicateNameError struct {
	Kind Kind
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate %s stage name %q", e.Kind, e.Name)
}
