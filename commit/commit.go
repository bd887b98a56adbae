// Package commit parses commit messages written in the conventional
// commits format.
package commit

import "slices"

// Commit is a parsed conventional commit.
type Commit struct {
	Type Type

	// Scopes is nil when the header has no scope.
	Scopes      []string
	Description string

	Body   *Body
	Footer *Footer

	// IsBreakingChange is set by a '!' in the header or by a
	// BREAKING CHANGE trailer.
	IsBreakingChange bool
}

// Equal reports whether c and other are the same commit. Paragraphs are
// compared by their lines, regardless of how they were indented.
func (c Commit) Equal(other Commit) bool {
	return c.Type == other.Type &&
		slices.Equal(c.Scopes, other.Scopes) &&
		(c.Scopes == nil) == (other.Scopes == nil) &&
		c.Description == other.Description &&
		equalPtr(c.Body, other.Body, Body.Equal) &&
		equalPtr(c.Footer, other.Footer, Footer.Equal) &&
		c.IsBreakingChange == other.IsBreakingChange
}

func equalPtr[T any](a, b *T, eq func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return eq(*a, *b)
}

// Parse parses a whole commit message, comments included.
func Parse(text string) (Commit, error) {
	return FromMessage(NewMessage(text))
}

// FromMessage builds a Commit from m.
//
// The first paragraph is the header. The last of the remaining paragraphs is
// the footer if every line of it is a trailer. Whatever is left is the body.
func FromMessage(m Message) (Commit, error) {
	paragraphs := m.Paragraphs()
	if len(paragraphs) == 0 {
		return Commit{}, formatError("", "message has to have at least one line")
	}

	h, err := parseHeader(paragraphs[0])
	if err != nil {
		return Commit{}, err
	}
	paragraphs = paragraphs[1:]

	c := Commit{
		Type:        h.commitType,
		Scopes:      h.scopes,
		Description: h.description,
	}

	if len(paragraphs) > 0 {
		last := len(paragraphs) - 1
		if f, err := parseFooter(paragraphs[last]); err == nil {
			c.Footer = &f
			paragraphs = paragraphs[:last]
		}
	}

	if len(paragraphs) > 0 {
		c.Body = &Body{Paragraphs: paragraphs}
	}

	c.IsBreakingChange = h.breaking || (c.Footer != nil && c.Footer.HasBreakingChangeMarker)

	return c, nil
}
