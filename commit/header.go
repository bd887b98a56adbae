package commit

import (
	"regexp"
	"strings"
)

var subjectPattern = regexp.MustCompile(`(?i)^(?P<type>.+?)(?:\((?P<scope>.+)\))?(?P<breaking>!)?:\s?(?P<description>.+)$`)

type header struct {
	commitType  Type
	scopes      []string
	description string
	breaking    bool
}

func parseHeader(p Paragraph) (header, error) {
	if p.Len() != 1 {
		return header{}, formatError(strings.Join(p.lines, "\n"), "header must be a single line")
	}

	line, _ := p.Line(0)

	m := subjectPattern.FindStringSubmatch(line)
	if m == nil {
		return header{}, formatError(line, "header does not match <type>[(<scope>)][!]: <description>")
	}

	h := header{
		commitType:  ParseType(m[subjectPattern.SubexpIndex("type")]),
		description: m[subjectPattern.SubexpIndex("description")],
		breaking:    m[subjectPattern.SubexpIndex("breaking")] != "",
	}
	if scope := m[subjectPattern.SubexpIndex("scope")]; scope != "" {
		h.scopes = strings.Split(scope, ",")
	}

	return h, nil
}
