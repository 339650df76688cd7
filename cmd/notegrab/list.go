package main

import (
	"fmt"

	"github.com/fwojciec/notegrab"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := notegrab.NoteFilter{Limit: c.Limit}
	if c.Author != "" {
		filter.AuthorID = &c.Author
	}
	switch notegrab.NoteType(c.Type) {
	case "":
	case notegrab.NoteTypeVideo, notegrab.NoteTypeNormal:
		t := notegrab.NoteType(c.Type)
		filter.Type = &t
	default:
		return fmt.Errorf("invalid note type %q: must be video or normal", c.Type)
	}

	recs, err := deps.Notes.FindNotes(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", notegrab.ErrorMessage(err))
		return err
	}

	if c.Format != "text" {
		return writeRecords(deps.Stdout, c.Format, recs)
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No notes found. Use 'notegrab grab' to add some.")
		return nil
	}
	for _, rec := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %-6s  %s  %s\n", rec.ID, rec.Note.Type, rec.Note.Title, rec.SourceURL)
	}
	return nil
}
