package etree_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("writes gallery and video notes", func(t *testing.T) {
		t.Parallel()

		recs := []*notegrab.NoteRecord{
			{
				ID:        "r1",
				SourceURL: "https://www.xiaohongshu.com/explore/a?x=1&y=2",
				FetchedAt: time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC),
				Note: notegrab.Note{
					Type:        notegrab.NoteTypeNormal,
					Title:       "Cats & dogs",
					Desc:        "<b>not markup</b>",
					AuthorName:  "N",
					AuthorID:    "u1",
					PublishTime: "2023-11-14",
					ImageURLs:   []string{"https://cdn/1.jpg", "https://cdn/2.jpg"},
				},
			},
			{
				SourceURL: "https://www.xiaohongshu.com/explore/b",
				Note: notegrab.Note{
					Type:      notegrab.NoteTypeVideo,
					VideoURL:  "https://x/video.mp4",
					ImageURLs: []string{},
				},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, etree.Encode(&buf, recs))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
		assert.Contains(t, out, `<note type="normal" id="r1">`)
		assert.Contains(t, out, `<title>Cats &amp; dogs</title>`)
		assert.Contains(t, out, `<desc>&lt;b&gt;not markup&lt;/b&gt;</desc>`)
		assert.Contains(t, out, `<author id="u1">N</author>`)
		assert.Contains(t, out, `<image>https://cdn/2.jpg</image>`)
		assert.Contains(t, out, `<video>https://x/video.mp4</video>`)
	})

	t.Run("writes an empty document for no notes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, etree.Encode(&buf, nil))

		assert.Contains(t, buf.String(), "<notes/>")
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("reads back encoded notes", func(t *testing.T) {
		t.Parallel()

		want := []*notegrab.NoteRecord{
			{
				ID:        "r1",
				SourceURL: "https://www.xiaohongshu.com/explore/a",
				FetchedAt: time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC),
				Note: notegrab.Note{
					Type:        notegrab.NoteTypeNormal,
					Title:       "T",
					Desc:        "line one\nline two",
					AuthorName:  "N",
					AuthorID:    "u1",
					PublishTime: "2023-11-14",
					ImageURLs:   []string{"https://cdn/1.jpg"},
				},
			},
		}

		var buf bytes.Buffer
		require.NoError(t, etree.Encode(&buf, want))

		got, err := etree.Decode(&buf)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("rejects a document without a notes root", func(t *testing.T) {
		t.Parallel()

		_, err := etree.Decode(strings.NewReader(`<urlset></urlset>`))

		require.Error(t, err)
		assert.Equal(t, notegrab.EINVALID, notegrab.ErrorCode(err))
	})

	t.Run("rejects malformed XML", func(t *testing.T) {
		t.Parallel()

		_, err := etree.Decode(strings.NewReader(`<notes><</notes>`))

		require.Error(t, err)
	})
}
