// Package fs provides file-based export of grabbed notes.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/notegrab"
)

// NoteFileName returns the markdown file name for a record: the note ID from
// its source URL, falling back to the record ID and then the page hash.
func NoteFileName(rec *notegrab.NoteRecord) string {
	name := notegrab.NoteIDFromURL(rec.SourceURL)
	if name == "" {
		name = rec.ID
	}
	if name == "" {
		name = rec.PageHash
	}
	if name == "" {
		name = "note"
	}
	return name + ".md"
}

// FormatMarkdown formats a note record with YAML frontmatter.
func FormatMarkdown(rec *notegrab.NoteRecord) string {
	n := &rec.Note

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(rec.SourceURL)
	b.WriteString("\ntype: ")
	b.WriteString(string(n.Type))
	b.WriteString("\ntitle: ")
	b.WriteString(yamlLine(n.Title))
	b.WriteString("\nauthor: ")
	b.WriteString(yamlLine(n.AuthorName))
	b.WriteString("\nauthor_id: ")
	b.WriteString(n.AuthorID)
	b.WriteString("\npublished: ")
	b.WriteString(n.PublishTime)
	if !rec.FetchedAt.IsZero() {
		b.WriteString("\ngrabbed: ")
		b.WriteString(rec.FetchedAt.Format("2006-01-02"))
	}
	b.WriteString("\n---\n\n")

	if n.Title != "" {
		b.WriteString("# ")
		b.WriteString(n.Title)
		b.WriteString("\n\n")
	}
	if n.Desc != "" {
		b.WriteString(n.Desc)
		b.WriteString("\n\n")
	}

	if n.IsVideo() {
		if n.VideoURL != "" {
			b.WriteString("Video: ")
			b.WriteString(n.VideoURL)
			b.WriteString("\n")
		}
		return b.String()
	}
	for _, u := range n.ImageURLs {
		b.WriteString("![](")
		b.WriteString(u)
		b.WriteString(")\n")
	}
	return b.String()
}

// yamlLine keeps frontmatter values on a single line.
func yamlLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Ensure Writer implements notegrab.NoteWriter at compile time.
var _ notegrab.NoteWriter = (*Writer)(nil)

// Writer writes note records as markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteNote writes a record to disk. The file is written under a temporary
// name and renamed into place, so readers never see a partial file.
func (w *Writer) WriteNote(ctx context.Context, rec *notegrab.NoteRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(w.baseDir, ".note-*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.WriteString(FormatMarkdown(rec)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		return err
	}

	return os.Rename(tmp, filepath.Join(w.baseDir, NoteFileName(rec)))
}
