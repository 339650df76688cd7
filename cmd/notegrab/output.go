package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/etree"
)

// writeRecords renders records to w in the requested format.
func writeRecords(w io.Writer, format string, recs []*notegrab.NoteRecord) error {
	switch format {
	case "json":
		notes := make([]*notegrab.Note, 0, len(recs))
		for _, rec := range recs {
			notes = append(notes, &rec.Note)
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(notes)
	case "xml":
		if err := etree.Encode(w, recs); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w)
		return err
	default:
		notes := make([]*notegrab.Note, 0, len(recs))
		for _, rec := range recs {
			notes = append(notes, &rec.Note)
		}
		_, err := io.WriteString(w, notegrab.FormatNotes(notes))
		return err
	}
}

// errorMessage returns the user-facing message of err.
func errorMessage(err error) string {
	if notegrab.ErrorCode(err) == notegrab.EINTERNAL {
		return err.Error()
	}
	return notegrab.ErrorMessage(err)
}
