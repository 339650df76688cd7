package notegrab_test

import (
	"testing"

	"github.com/fwojciec/notegrab"
	"github.com/stretchr/testify/assert"
)

func TestNoteRecord_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid record", func(t *testing.T) {
		t.Parallel()

		rec := &notegrab.NoteRecord{
			SourceURL: "https://www.xiaohongshu.com/explore/abc",
			Note:      notegrab.Note{Type: notegrab.NoteTypeNormal},
		}

		assert.NoError(t, rec.Validate())
	})

	t.Run("requires a source URL", func(t *testing.T) {
		t.Parallel()

		rec := &notegrab.NoteRecord{Note: notegrab.Note{Type: notegrab.NoteTypeVideo}}

		assert.Equal(t, notegrab.EINVALID, notegrab.ErrorCode(rec.Validate()))
	})

	t.Run("requires a note type", func(t *testing.T) {
		t.Parallel()

		rec := &notegrab.NoteRecord{SourceURL: "https://a"}

		assert.Equal(t, notegrab.EINVALID, notegrab.ErrorCode(rec.Validate()))
	})
}

func TestNote_Media(t *testing.T) {
	t.Parallel()

	video := &notegrab.Note{Type: notegrab.NoteTypeVideo, VideoURL: "https://v", ImageURLs: []string{"https://ignored"}}
	gallery := &notegrab.Note{Type: notegrab.NoteTypeNormal, ImageURLs: []string{"https://1", "https://2"}}

	assert.Equal(t, []string{"https://v"}, video.Media())
	assert.Equal(t, []string{"https://1", "https://2"}, gallery.Media())
	assert.Nil(t, (&notegrab.Note{Type: notegrab.NoteTypeVideo}).Media())
}
