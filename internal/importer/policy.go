package importer

import "fmt"

// Policy controls what happens when an imported record collides with
// an existing row.
type Policy string

const (
	// PolicySkip leaves the existing row untouched.
	PolicySkip Policy = "skip"
	// PolicyUpdate overwrites every mutable field of the existing row.
	PolicyUpdate Policy = "update"
	// PolicyClearThenImport deletes all existing rows of the affected
	// kind before importing. Administrative and irreversible.
	PolicyClearThenImport Policy = "clear-then-import"
)

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", string(PolicySkip):
		return PolicySkip, nil
	case string(PolicyUpdate):
		return PolicyUpdate, nil
	case string(PolicyClearThenImport):
		return PolicyClearThenImport, nil
	}
	return "", fmt.Errorf("unknown duplicate policy %q", s)
}
