package commit

import (
	"errors"
	"slices"
	"strings"
)

// ErrEmptyLine is returned when an empty line is added to a Paragraph.
var ErrEmptyLine = errors.New("paragraph line must not be empty")

// Paragraph is a run of non-empty lines.
//
// Lines are stored trimmed. Whether a line was indented in its original
// form is remembered, so that Folded can join wrapped trailer values.
type Paragraph struct {
	lines     []string
	continued []bool
}

// NewParagraph builds a Paragraph from raw lines.
func NewParagraph(lines ...string) (Paragraph, error) {
	var p Paragraph
	for _, l := range lines {
		if err := p.AddLine(l); err != nil {
			return Paragraph{}, err
		}
	}
	return p, nil
}

// AddLine appends line. Surrounding whitespace is trimmed.
func (p *Paragraph) AddLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ErrEmptyLine
	}

	p.lines = append(p.lines, trimmed)
	p.continued = append(p.continued, isIndented(line))
	return nil
}

func (p Paragraph) Len() int {
	return len(p.lines)
}

// Line returns the num-th line, or false if num is out of range.
func (p Paragraph) Line(num int) (string, bool) {
	if num < 0 || num >= len(p.lines) {
		return "", false
	}
	return p.lines[num], true
}

func (p Paragraph) Lines() []string {
	return slices.Clone(p.lines)
}

// Equal reports whether p and other hold the same lines.
func (p Paragraph) Equal(other Paragraph) bool {
	return slices.Equal(p.lines, other.lines)
}

// Folded returns a copy of p in which every indented line is joined to the
// line before it, separated by a single space.
func (p Paragraph) Folded() Paragraph {
	var folded Paragraph

	for i, l := range p.lines {
		last := len(folded.lines) - 1
		if p.continued[i] && last >= 0 {
			folded.lines[last] += " " + l
			continue
		}
		folded.lines = append(folded.lines, l)
		folded.continued = append(folded.continued, false)
	}

	return folded
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
