package commit

import "strings"

// Kind classifies a commit type.
type Kind int

const (
	_ Kind = iota
	KindFix
	KindFeat
	KindCustom
)

// Type is the type of a conventional commit: fix, feat, or any other label.
type Type struct {
	kind  Kind
	label string
}

var (
	Fix  = Type{kind: KindFix}
	Feat = Type{kind: KindFeat}
)

// Custom returns a type other than fix and feat.
// The label keeps its original casing.
func Custom(label string) Type {
	return Type{kind: KindCustom, label: label}
}

// ParseType classifies s case-insensitively.
func ParseType(s string) Type {
	switch strings.ToLower(s) {
	case "fix":
		return Fix
	case "feat":
		return Feat
	default:
		return Custom(s)
	}
}

func (t Type) Kind() Kind {
	return t.kind
}

func (t Type) String() string {
	switch t.kind {
	case KindFix:
		return "fix"
	case KindFeat:
		return "feat"
	default:
		return t.label
	}
}
