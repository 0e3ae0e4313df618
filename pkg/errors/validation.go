package errors

import (
	"strings"
	"unicode"
)

// maxIdentifierLength bounds module and programme names.
const maxIdentifierLength = 256

// ValidateModuleID checks that a module identifier can be emitted as a quoted
// DOT identifier.
//
// Identifiers are otherwise opaque. The rules are:
//   - No empty names
//   - No control characters (newlines, null bytes, ...)
//   - No double quotes or backslashes
//   - Maximum length of 256 characters
func ValidateModuleID(id string) error {
	return validateIdentifier("module", id)
}

// ValidateProgrammeName applies the module identifier rules to a programme
// name, which is also written into node tooltips.
func ValidateProgrammeName(name string) error {
	return validateIdentifier("programme", name)
}

func validateIdentifier(what, id string) error {
	if id == "" {
		return New(ErrCodeInvalidModuleID, "%s name cannot be empty", what)
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidModuleID, "%s name too long (max %d characters): %.32q...", what, maxIdentifierLength, id)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidModuleID, "%s name %q contains control characters", what, id)
		}
	}
	if strings.ContainsAny(id, "\"\\") {
		return New(ErrCodeInvalidModuleID, "%s name %q contains quotes or backslashes", what, id)
	}
	return nil
}

// rankDirs are the Graphviz rank directions.
var rankDirs = map[string]bool{"LR": true, "RL": true, "TB": true, "BT": true}

// ValidateRankDir checks a Graphviz rankdir value (LR, RL, TB or BT).
func ValidateRankDir(dir string) error {
	if !rankDirs[dir] {
		return New(ErrCodeInvalidRankDir, "invalid rank direction %q (must be LR, RL, TB or BT)", dir)
	}
	return nil
}
