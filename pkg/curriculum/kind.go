package curriculum

import (
	"github.com/matzehuels/modgraph/pkg/errors"
)

// Kind is a dependency kind between two modules.
type Kind string

const (
	Prerequisite Kind = "pre"
	Corequisite  Kind = "co"
	Suggestion   Kind = "sug"
	Exclusion    Kind = "excl"
)

// AllKinds lists every dependency kind in rendering order.
var AllKinds = []Kind{Prerequisite, Corequisite, Suggestion, Exclusion}

var kindNames = map[Kind]string{
	Prerequisite: "prerequisite",
	Corequisite:  "corequisite",
	Suggestion:   "suggestion",
	Exclusion:    "mutual exclusion",
}

// ParseKind accepts the short tag ("pre") or the long name ("prerequisite").
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == string(k) || s == name {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "unknown dependency kind %q", s)
}

// Valid reports whether k is one of AllKinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// Name returns the long, human readable name of k.
func (k Kind) Name() string { return kindNames[k] }

func (k Kind) String() string { return string(k) }
