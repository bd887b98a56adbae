package commit

import (
	"slices"
	"strings"
)

// Message is a commit message split into paragraphs.
type Message struct {
	paragraphs []Paragraph
}

// NewMessage splits text into paragraphs.
//
// Paragraphs are separated by blank lines. Lines starting with '#' are
// comments: they are dropped, and they close the paragraph before them.
func NewMessage(text string) Message {
	var m Message

	current := Paragraph{}
	flush := func() {
		if current.Len() > 0 {
			m.paragraphs = append(m.paragraphs, current)
		}
		current = Paragraph{}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			flush()
			continue
		}

		// trimmed is never empty here
		_ = current.AddLine(line)
	}
	flush()

	return m
}

// MessageOf builds a Message from already split paragraphs.
func MessageOf(paragraphs ...Paragraph) Message {
	return Message{paragraphs: slices.Clone(paragraphs)}
}

func (m Message) Len() int {
	return len(m.paragraphs)
}

func (m Message) Paragraph(num int) (Paragraph, bool) {
	if num < 0 || num >= len(m.paragraphs) {
		return Paragraph{}, false
	}
	return m.paragraphs[num], true
}

func (m Message) Paragraphs() []Paragraph {
	return slices.Clone(m.paragraphs)
}

// Lines returns the lines of every paragraph, in order.
func (m Message) Lines() []string {
	var lines []string
	for _, p := range m.paragraphs {
		lines = append(lines, p.lines...)
	}
	return lines
}
