package state

import (
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/jsobj"
)

// DateLayout is the calendar date format of Note.PublishTime.
const DateLayout = "2006-01-02"

var timestampFields = []string{"time", "timestamp", "createTime"}

// Assembler builds notes from resolved entities.
type Assembler struct {
	// Location converts publish timestamps to calendar dates.
	// Defaults to time.Local when nil.
	Location *time.Location
}

// Assemble combines entity fields, author, publish date and media into a Note.
func (a *Assembler) Assemble(e *Entity) *notegrab.Note {
	node := e.Node
	author := ResolveAuthor(e.Author)

	note := &notegrab.Note{
		Type:        noteType(node),
		Title:       node.Field("title").Text(),
		Desc:        notegrab.CleanTopicTags(node.Field("desc").Text()),
		AuthorName:  author.Name,
		AuthorID:    author.ID,
		PublishTime: a.publishDate(node),
		ImageURLs:   []string{},
	}

	if note.IsVideo() {
		note.VideoURL = ResolveVideo(node)
	} else {
		note.ImageURLs = ResolveImages(node)
	}

	return note
}

func noteType(node *jsobj.Value) notegrab.NoteType {
	if node.Field("type").Text() == string(notegrab.NoteTypeVideo) {
		return notegrab.NoteTypeVideo
	}
	return notegrab.NoteTypeNormal
}

// publishDate converts the first non-zero epoch-millisecond timestamp to a
// calendar date, or returns "" when there is none.
func (a *Assembler) publishDate(node *jsobj.Value) string {
	for _, f := range timestampFields {
		ms, ok := epochMillis(node.Field(f))
		if !ok || ms == 0 {
			continue
		}
		loc := a.Location
		if loc == nil {
			loc = time.Local
		}
		return time.UnixMilli(ms).In(loc).Format(DateLayout)
	}
	return ""
}

// epochMillis reads a timestamp given as a number or a numeric string.
func epochMillis(v *jsobj.Value) (int64, bool) {
	if n, ok := v.Int64(); ok {
		return n, true
	}
	if s, ok := v.Str(); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return n, err == nil
	}
	return 0, false
}
