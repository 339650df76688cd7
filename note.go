package notegrab

// NoteType distinguishes video notes from image galleries.
type NoteType string

// Note types. Anything other than NoteTypeVideo is treated as a gallery.
const (
	NoteTypeVideo  NoteType = "video"
	NoteTypeNormal NoteType = "normal"
)

// Note is the normalized record recovered from a note page.
//
// Exactly one of VideoURL and ImageURLs is meaningful, selected by Type.
// Absent fields are empty strings and ImageURLs is never nil, so every key
// is present when the note is encoded.
type Note struct {
	Type        NoteType `json:"type"`
	Title       string   `json:"title"`
	Desc        string   `json:"desc"`
	AuthorName  string   `json:"author_name"`
	AuthorID    string   `json:"author_id"`
	PublishTime string   `json:"publish_time"`
	VideoURL    string   `json:"video_url"`
	ImageURLs   []string `json:"image_urls"`
}

// IsVideo reports whether the note carries a video rather than a gallery.
func (n *Note) IsVideo() bool {
	return n.Type == NoteTypeVideo
}

// Media returns the meaningful media URLs for the note type.
func (n *Note) Media() []string {
	if n.IsVideo() {
		if n.VideoURL == "" {
			return nil
		}
		return []string{n.VideoURL}
	}
	return n.ImageURLs
}

// Parser turns a fetched note page into a Note.
type Parser interface {
	// Parse extracts the note from raw page HTML.
	// Failures carry one of the extraction error codes
	// (ESTATENOTFOUND, EUNBALANCED, EMALFORMED, ENOENTITY).
	Parse(html string) (*Note, error)
}
