package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/crawl"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	html, err := c.read()
	if err != nil {
		return err
	}

	note, err := deps.Parser.Parse(html)
	if deps.MetaParser != nil {
		note, err = crawl.Supplement(deps.MetaParser, html, note, err)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	rec := &notegrab.NoteRecord{
		SourceURL: c.File,
		PageHash:  crawl.ComputeHash(html),
		Note:      *note,
	}
	return writeRecords(deps.Stdout, c.Format, []*notegrab.NoteRecord{rec})
}

func (c *ParseCmd) read() (string, error) {
	if c.File == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(c.File)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", c.File, err)
	}
	return string(b), nil
}
