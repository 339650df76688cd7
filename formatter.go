package notegrab

import (
	"fmt"
	"strings"
)

// FormatNote renders a note as a human-readable report.
func FormatNote(n *Note) string {
	var b strings.Builder

	kind := "gallery"
	if n.IsVideo() {
		kind = "video"
	}
	fmt.Fprintf(&b, "Type: %s\n", kind)
	fmt.Fprintf(&b, "Title: %s\n", n.Title)
	fmt.Fprintf(&b, "Description:\n%s\n", n.Desc)
	fmt.Fprintf(&b, "Author: %s (id: %s)\n", n.AuthorName, n.AuthorID)
	fmt.Fprintf(&b, "Published: %s\n", n.PublishTime)

	if n.IsVideo() {
		b.WriteString("Video:\n")
		if n.VideoURL == "" {
			b.WriteString("  (none)\n")
		} else {
			fmt.Fprintf(&b, "  %s\n", n.VideoURL)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Images (%d):\n", len(n.ImageURLs))
	for i, u := range n.ImageURLs {
		fmt.Fprintf(&b, "  [%d] %s\n", i+1, u)
	}
	return b.String()
}

// FormatNotes renders several notes separated by blank lines.
func FormatNotes(notes []*Note) string {
	if len(notes) == 0 {
		return ""
	}

	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, FormatNote(n))
	}
	return strings.Join(parts, "\n")
}
