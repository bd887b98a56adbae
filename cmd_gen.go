package main

import (
	"fmt"
	"os"
	"path/filepath"
)

type genCmd struct {
	Emoji bool `cli:"emoji" help:"put emoji shortcodes to the types"`
}

func (c genCmd) Run(g globalCmd, args []string) error {
	g.setup()

	filename := defaultRuleFileName + ".yaml"
	if len(args) > 0 {
		filename = args[0]
	}

	filename, err := filepath.Abs(filename)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "output: %v\n", filename)

	rule := defaultRule(c.Emoji)

	content, err := encodeConfig(filename, rule)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, content, 0o644)
}
