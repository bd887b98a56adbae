package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	prompt "github.com/elk-language/go-prompt"
	pstrings "github.com/elk-language/go-prompt/strings"
	git "github.com/go-git/go-git/v5"
	"github.com/kyokomi/emoji/v2"
	"github.com/shu-go/orderedmap"
)

type composer struct {
	rule *Rule

	scopesFileName string
	scopes         Scopes
}

func newComposer(repos *git.Repository) *composer {
	c := &composer{}
	c.rule, _ = readRuleFile(repos)

	// scope history

	c.scopes, c.scopesFileName = readScopesFile(repos)
	if c.scopes == nil {
		c.scopes = make(Scopes)
	}

	return c
}

// messageParts are the answers of the prompts.
type messageParts struct {
	typ            string
	scope          string
	desc           string
	body           string
	breakingChange string
}

func (c *composer) buildupCommitMessage() string {
	parts := messageParts{
		typ:            c.promptType(),
		scope:          c.promptScope(),
		desc:           c.promptDesc(),
		body:           c.promptBody(),
		breakingChange: c.promptBreakingChange(),
	}

	if parts.scope != "" && c.scopesFileName != "" {
		c.recordScope(parts.scope, time.Now())
	}

	return c.formatMessage(parts)
}

func (c *composer) formatMessage(parts messageParts) string {
	var header string
	{
		emoji := c.emojiOf(parts.typ, false)
		emojiUnicode := c.emojiOf(parts.typ, true)

		var scopeWithParens string
		if parts.scope != "" {
			scopeWithParens = "(" + parts.scope + ")"
		}

		var bang string
		if parts.breakingChange != "" {
			bang = "!"
		}

		buf := bytes.Buffer{}
		templ, err := template.New("").Parse(c.rule.HeaderFormat)
		if err == nil {
			err = templ.Execute(&buf, map[string]string{
				"type":              parts.typ,
				"scope":             parts.scope,
				"scope_with_parens": scopeWithParens,
				"bang":              bang,
				"emoji":             emoji,
				"emoji_unicode":     emojiUnicode,
				"description":       parts.desc,
			})
		}
		if err != nil {
			logger.Warn("header format", "format", c.rule.HeaderFormat, "err", err)
			buf.Reset()
			buf.WriteString(parts.typ)
			buf.WriteString(scopeWithParens)
			buf.WriteString(bang)
			buf.WriteString(": ")
			buf.WriteString(parts.desc)
		}
		header = buf.String()
	}
	msg := header

	if parts.body != "" {
		msg += "\n\n" + parts.body
	}
	// the trailer needs a paragraph of its own to be read as a footer
	if parts.breakingChange != "" {
		msg += "\n\nBREAKING CHANGE: " + parts.breakingChange
	}

	return msg
}

// recordScope writes the scope history back, most recent first.
func (c *composer) recordScope(scope string, at time.Time) {
	c.scopes[scope] = at

	type tmpscope struct {
		scope string
		ts    time.Time
	}
	sclist := []tmpscope{}
	for k, v := range c.scopes {
		sclist = append(sclist, tmpscope{
			scope: k,
			ts:    v,
		})
	}
	sort.Slice(sclist, func(i, j int) bool {
		return sclist[i].ts.After(sclist[j].ts)
	})

	outscope := orderedmap.New[string, time.Time]()
	for _, s := range sclist {
		outscope.Set(s.scope, s.ts)
	}

	content, err := encodeConfig(c.scopesFileName, outscope)
	if err != nil {
		logger.Warn("encode scopes", "err", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.scopesFileName), 0o755); err != nil {
		logger.Warn("write scopes", "path", c.scopesFileName, "err", err)
		return
	}
	if err := os.WriteFile(c.scopesFileName, content, 0o644); err != nil {
		logger.Warn("write scopes", "path", c.scopesFileName, "err", err)
	}
}

func (c *composer) promptType() string {
	var typ string

	items := make([]prompt.Suggest, 0, len(c.rule.Types.Keys()))

	for _, k := range c.rule.typeNames() {
		typ, ok := c.rule.Types.Get(k)
		if !ok || typ.Desc == "" {
			continue
		}

		item := prompt.Suggest{
			Text:        k,
			Description: c.emojiOf(k, true) + " " + typ.Desc,
		}
		items = append(items, item)
	}

	for typ == "" {
		typ = prompt.Input(prompt.WithPrefix("Type: "), prompt.WithCompleter(prefixCompleter(items)), prompt.WithShowCompletionAtStart())
		typ = strings.TrimSpace(typ)
		if typ == "" {
			fmt.Fprintln(os.Stderr, "type is required")
			continue
		}
		if c.rule.DenyAdlibType && !c.rule.declares(typ) {
			fmt.Fprintln(os.Stderr, "ad-lib type is not allowed")
			typ = ""
		}
	}

	return typ
}

func (c *composer) promptScope() string {
	items := make([]prompt.Suggest, 0, 8)

	for s, t := range c.scopes {
		item := prompt.Suggest{
			Text:        s,
			Description: t.Local().Format(time.RFC3339),
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Description > items[j].Description
	})
	// timestamps are not shown
	for i := range items {
		items[i].Description = ""
	}

	scope := prompt.Input(
		prompt.WithPrefix("Scope: "),
		prompt.WithCompleter(prefixCompleter(items)),
		prompt.WithShowCompletionAtStart(),
	)

	return strings.TrimSpace(scope)
}

func (c *composer) promptDesc() string {
	var desc string

	for desc == "" {
		desc = prompt.Input(prompt.WithPrefix("Description: "), prompt.WithCompleter(prefixCompleter(nil)))
		desc = strings.TrimSpace(desc)
		if desc == "" {
			fmt.Fprintln(os.Stderr, "description required")
		}
	}

	return desc
}

func (c *composer) promptBody() string {
	var body string

	fmt.Println("Body: (Enter 2 empty lines to finish)")

	prevEmpty := false
	buf := bufio.NewReader(os.Stdin)
	for {
		linebyte, _, err := buf.ReadLine()
		if err != nil {
			break
		}

		line := strings.TrimSpace(string(linebyte))

		if line == "" {
			if prevEmpty {
				break
			}
			prevEmpty = true
		} else {
			prevEmpty = false
		}

		if body != "" {
			body += "\n"
		}
		body += line
	}

	return strings.TrimSpace(body)
}

func (c *composer) promptBreakingChange() string {
	var breakingChange string

	if c.rule.UseBreakingChange {
		breakingChange = prompt.Input(prompt.WithPrefix("BREAKING CHANGE: "), prompt.WithCompleter(prefixCompleter(nil)))
		breakingChange = strings.TrimSpace(breakingChange)
	}

	return breakingChange
}

func prefixCompleter(items []prompt.Suggest) func(prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
	return func(in prompt.Document) ([]prompt.Suggest, pstrings.RuneNumber, pstrings.RuneNumber) {
		endIndex := in.CurrentRuneIndex()
		w := in.GetWordBeforeCursor()
		startIndex := endIndex - pstrings.RuneCountInString(w)

		return prompt.FilterHasPrefix(items, w, true), startIndex, endIndex
	}
}

func (c *composer) emojiOf(typ string, emojize bool) string {
	if ct, found := c.rule.Types.Get(typ); found {
		e := ct.Emoji
		if emojize {
			e = strings.TrimSpace(emoji.Emojize(e))
		}
		return e
	}

	return ""
}
