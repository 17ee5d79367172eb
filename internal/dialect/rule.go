package dialect

import "strings"

// Rule is a referential action on a foreign key.
type Rule int

const (
	Restrict Rule = iota
	NoAction
	Cascade
	SetNull
	SetDefault
)

func (r Rule) String() string {
	switch r {
	case Restrict:
		return "RESTRICT"
	case NoAction:
		return "NO ACTION"
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	case SetDefault:
		return "SET DEFAULT"
	}
	return "RESTRICT"
}

// ParseRule normalizes an engine-reported referential action. Engines spell
// these with either spaces or underscores; anything unrecognized (including
// an empty report) is read as RESTRICT, the strictest action.
func ParseRule(s string) Rule {
	switch strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "_", " ") {
	case "NO ACTION":
		return NoAction
	case "CASCADE":
		return Cascade
	case "SET NULL":
		return SetNull
	case "SET DEFAULT":
		return SetDefault
	default:
		return Restrict
	}
}

// RulesEquivalent treats RESTRICT and NO ACTION as the same action: both
// mean the engine forbids the mutation.
func RulesEquivalent(a, b Rule) bool {
	if a == b {
		return true
	}
	forbids := func(r Rule) bool { return r == Restrict || r == NoAction }
	return forbids(a) && forbids(b)
}
