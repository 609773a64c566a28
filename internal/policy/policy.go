// Package policy decides whether a candidate password is acceptable.
//
// Rules are checked in a fixed order and only the first violated rule is
// reported, so messages shown to the user are deterministic:
//
//  1. length between MinLength and MaxLength characters
//  2. at least one digit (0-9)
//  3. at least one lowercase letter (a-z)
//  4. at least one uppercase letter (A-Z)
//  5. at least one special character from SpecialChars
//  6. no whitespace anywhere
package policy

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/inputguard/internal/common"
)

const (
	MinLength = 8
	MaxLength = 30

	// SpecialChars is the canonical set of accepted special characters.
	SpecialChars = "@#$%^&+=!"
)

// Reason identifies the rule a rejected password violated.
type Reason int

const (
	ReasonLength Reason = iota + 1
	ReasonMissingDigit
	ReasonMissingLower
	ReasonMissingUpper
	ReasonMissingSpecial
	ReasonWhitespace
)

func (r Reason) String() string {
	switch r {
	case ReasonLength:
		return "length"
	case ReasonMissingDigit:
		return "missing digit"
	case ReasonMissingLower:
		return "missing lowercase"
	case ReasonMissingUpper:
		return "missing uppercase"
	case ReasonMissingSpecial:
		return "missing special character"
	case ReasonWhitespace:
		return "whitespace not allowed"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Message returns the user-facing explanation for r.
func (r Reason) Message() string {
	switch r {
	case ReasonLength:
		return fmt.Sprintf("Password must be between %d and %d characters.", MinLength, MaxLength)
	case ReasonMissingDigit:
		return "Password must contain at least one digit (0-9)."
	case ReasonMissingLower:
		return "Password must contain at least one lowercase letter (a-z)."
	case ReasonMissingUpper:
		return "Password must contain at least one uppercase letter (A-Z)."
	case ReasonMissingSpecial:
		return fmt.Sprintf("Password must contain at least one special character (%s).", SpecialChars)
	case ReasonWhitespace:
		return "Password must not contain whitespace."
	default:
		return "Password does not meet the requirements."
	}
}

// Violation is returned by Validate for a rejected password.
type Violation struct {
	Reason Reason
}

func (v *Violation) Error() string {
	return "password rejected: " + v.Reason.String()
}

func (v *Violation) Unwrap() error {
	return common.ErrPolicyViolation
}

type rule struct {
	reason Reason
	ok     func(string) bool
}

var rules = []rule{
	{ReasonLength, func(s string) bool {
		n := utf8.RuneCountInString(s)
		return n >= MinLength && n <= MaxLength
	}},
	{ReasonMissingDigit, containsRange('0', '9')},
	{ReasonMissingLower, containsRange('a', 'z')},
	{ReasonMissingUpper, containsRange('A', 'Z')},
	{ReasonMissingSpecial, func(s string) bool { return strings.ContainsAny(s, SpecialChars) }},
	{ReasonWhitespace, func(s string) bool { return strings.IndexFunc(s, unicode.IsSpace) < 0 }},
}

func containsRange(lo, hi rune) func(string) bool {
	return func(s string) bool {
		return strings.IndexFunc(s, func(r rune) bool { return r >= lo && r <= hi }) >= 0
	}
}

// Validate returns nil if candidate satisfies every rule, otherwise a
// *Violation naming the first rule it breaks.
func Validate(candidate string) error {
	for _, r := range rules {
		if !r.ok(candidate) {
			return &Violation{Reason: r.reason}
		}
	}
	return nil
}

// Requirements returns the rule listing shown before the password prompt.
func Requirements() string {
	var b strings.Builder
	b.WriteString("Please enter a password following these rules:\n")
	fmt.Fprintf(&b, "1. Between %d and %d characters\n", MinLength, MaxLength)
	b.WriteString("2. Must contain at least one digit (0-9)\n")
	b.WriteString("3. Must contain at least one lowercase letter (a-z)\n")
	b.WriteString("4. Must contain at least one uppercase letter (A-Z)\n")
	fmt.Fprintf(&b, "5. Must contain at least one special character (%s)\n", SpecialChars)
	b.WriteString("6. No whitespace allowed")
	return b.String()
}
