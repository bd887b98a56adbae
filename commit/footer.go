package commit

import (
	"regexp"
	"slices"
	"strings"
)

// trailerPattern is a simplified git trailer: "Key: value" or "Key #value".
// Keys are letters and hyphens, except for the breaking change key which
// contains a space.
var trailerPattern = regexp.MustCompile(`^(?:(?P<breaking>BREAKING CHANGE|BREAKING-CHANGE)|(?P<key>[A-Za-z][-A-Za-z]*))(?P<sep>: | #)(?P<value>.+)$`)

// Body is the free text between header and footer.
type Body struct {
	Paragraphs []Paragraph
}

// Equal reports whether b and other hold equal paragraphs.
func (b Body) Equal(other Body) bool {
	return slices.EqualFunc(b.Paragraphs, other.Paragraphs, Paragraph.Equal)
}

// Footer holds the trailers of the last paragraph of a message.
type Footer struct {
	Elements                []FooterElement
	HasBreakingChangeMarker bool
}

func (f Footer) Equal(other Footer) bool {
	return f.HasBreakingChangeMarker == other.HasBreakingChangeMarker &&
		slices.Equal(f.Elements, other.Elements)
}

// Values returns the values of every trailer named key.
// Keys are compared case-insensitively.
func (f Footer) Values(key string) []string {
	var values []string
	for _, e := range f.Elements {
		if strings.EqualFold(e.Key(), key) {
			values = append(values, e.Value())
		}
	}
	return values
}

// FooterElement is one trailer. Content is the trailer line with wrapped
// continuation lines joined into it.
type FooterElement struct {
	Content           string
	HasBreakingChange bool
}

func (e FooterElement) Key() string {
	m := trailerPattern.FindStringSubmatch(e.Content)
	if m == nil {
		return ""
	}
	if b := m[trailerPattern.SubexpIndex("breaking")]; b != "" {
		return b
	}
	return m[trailerPattern.SubexpIndex("key")]
}

// Value returns the trailer value. For "Key #value" trailers the '#' is
// part of the value.
func (e FooterElement) Value() string {
	m := trailerPattern.FindStringSubmatch(e.Content)
	if m == nil {
		return ""
	}
	value := m[trailerPattern.SubexpIndex("value")]
	if m[trailerPattern.SubexpIndex("sep")] == " #" {
		value = "#" + value
	}
	return value
}

func parseFooterElement(line string) (FooterElement, error) {
	m := trailerPattern.FindStringSubmatch(line)
	if m == nil {
		return FooterElement{}, formatError(line, "line does not match git trailer format")
	}

	return FooterElement{
		Content:           line,
		HasBreakingChange: m[trailerPattern.SubexpIndex("breaking")] != "",
	}, nil
}

func parseFooter(p Paragraph) (Footer, error) {
	var f Footer

	for _, line := range p.Folded().lines {
		e, err := parseFooterElement(line)
		if err != nil {
			return Footer{}, err
		}

		f.HasBreakingChangeMarker = f.HasBreakingChangeMarker || e.HasBreakingChange
		f.Elements = append(f.Elements, e)
	}

	return f, nil
}
