// Package gesture turns a single hand pose into a passcode input symbol.
package gesture

import "strings"

// Symbol is the result of classifying one hand pose.
type Symbol string

const (
	// None means the pose did not match any rule.
	None Symbol = ""
	// Delete removes the last committed letter.
	Delete Symbol = "delete"
)

// Letter returns the symbol for r, upper-cased when shift is active.
func Letter(r rune, shift bool) Symbol {
	s := string(r)
	if shift {
		return Symbol(strings.ToUpper(s))
	}
	return Symbol(strings.ToLower(s))
}

// IsLetter reports whether s is a letter rather than a control signal or None.
func (s Symbol) IsLetter() bool {
	return s != None && s != Delete
}

func (s Symbol) String() string {
	if s == None {
		return "none"
	}
	return string(s)
}
