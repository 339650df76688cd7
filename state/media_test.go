package state_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/notegrab/state"
	"github.com/stretchr/testify/assert"
)

func TestResolveVideo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		entity string
		want   string
	}{
		{
			name:   "nested stream master URL wins over video.url",
			entity: `{"video":{"url":"B","media":{"stream":{"h264":[{"masterUrl":"A"}]}}}}`,
			want:   "A",
		},
		{
			name:   "nested stream falls back to backup URL",
			entity: `{"video":{"media":{"stream":{"h264":[{"masterUrl":"","backupUrl":"https://v/backup.mp4"}]}}}}`,
			want:   "https://v/backup.mp4",
		},
		{
			name:   "video url fields",
			entity: `{"video":{"videoUrl":"http://v/1"}}`,
			want:   "https://v/1",
		},
		{
			name:   "video play URL",
			entity: `{"video":{"playUrl":"//v/play"}}`,
			want:   "https://v/play",
		},
		{
			name:   "top-level stream",
			entity: `{"video":{},"stream":{"h264":[{"url":"https://v/s.mp4"}]}}`,
			want:   "https://v/s.mp4",
		},
		{
			name:   "empty h264 list is skipped",
			entity: `{"video":{"media":{"stream":{"h264":[]}},"url":"https://v/u"}}`,
			want:   "https://v/u",
		},
		{
			name:   "searches the tree for a video-looking string",
			entity: `{"video":{"consumer":{"originVideoKey":"pre_post/abc"}},"extra":{"list":[{"k":"https://img/x.jpg"},{"k":"http://sns-video-bd.example.com/stream/abc"}]}}`,
			want:   "https://sns-video-bd.example.com/stream/abc",
		},
		{
			name:   "search returns the first hit in source order",
			entity: `{"a":{"b":"//cdn/first.mp4"},"c":"//cdn/second.mp4"}`,
			want:   "https://cdn/first.mp4",
		},
		{
			name:   "no video anywhere",
			entity: `{"title":"T","video":{}}`,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, state.ResolveVideo(mustParse(t, tt.entity)))
		})
	}
}

// nest wraps inner in depth single-key objects.
func nest(inner string, depth int) string {
	return strings.Repeat(`{"n":`, depth) + inner + strings.Repeat(`}`, depth)
}

func TestResolveVideo_SearchDepthIsBounded(t *testing.T) {
	t.Parallel()

	t.Run("finds strings inside containers at the depth limit", func(t *testing.T) {
		t.Parallel()

		// The object holding "u" sits MaxSearchDepth levels below the entity.
		entity := nest(`{"u":"https://v/deep.mp4"}`, state.MaxSearchDepth)

		assert.Equal(t, "https://v/deep.mp4", state.ResolveVideo(mustParse(t, entity)))
	})

	t.Run("ignores containers below the depth limit", func(t *testing.T) {
		t.Parallel()

		entity := nest(`{"u":"https://v/deep.mp4"}`, state.MaxSearchDepth+1)

		assert.Equal(t, "", state.ResolveVideo(mustParse(t, entity)))
	})
}

func TestResolveImages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		entity string
		want   []string
	}{
		{
			name:   "mixed element types with placeholder filtered",
			entity: `{"imageList":["https://cdn/1.jpg",{"url":"//cdn/2.jpg"},{"url":"https://fe-platform/ph.jpg"}]}`,
			want:   []string{"https://cdn/1.jpg", "https://cdn/2.jpg"},
		},
		{
			name:   "placeholder filtering keeps relative order",
			entity: `{"imageList":["http://a/1.jpg","https://picasso-static/x.png","http://a/2.jpg"]}`,
			want:   []string{"https://a/1.jpg", "https://a/2.jpg"},
		},
		{
			name:   "url field fallback order",
			entity: `{"imageList":[{"url":"","urlDefault":"https://a/default.jpg","urlPre":"https://a/pre.jpg"},{"urlPre":"https://a/pre2.jpg"}]}`,
			want:   []string{"https://a/default.jpg", "https://a/pre2.jpg"},
		},
		{
			name:   "infoList prefers the default scene",
			entity: `{"imageList":[{"infoList":[{"imageScene":"WB_PRV","url":"https://a/prv.jpg"},{"imageScene":"WB_DFT","url":"https://a/dft.jpg"}]}]}`,
			want:   []string{"https://a/dft.jpg"},
		},
		{
			name:   "infoList falls back to the first entry",
			entity: `{"imageList":[{"infoList":[{"imageScene":"WB_PRV","url":"//a/prv.jpg"}]}]}`,
			want:   []string{"https://a/prv.jpg"},
		},
		{
			name:   "images field is used when imageList is absent",
			entity: `{"images":["https://a/1.jpg"]}`,
			want:   []string{"https://a/1.jpg"},
		},
		{
			name:   "empty imageList falls through to images",
			entity: `{"imageList":[],"images":["https://a/1.jpg"]}`,
			want:   []string{"https://a/1.jpg"},
		},
		{
			name:   "elements without URLs are skipped",
			entity: `{"imageList":[{},null,42,{"infoList":[]}]}`,
			want:   []string{},
		},
		{
			name:   "no image list",
			entity: `{"title":"T"}`,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := state.ResolveImages(mustParse(t, tt.entity))

			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
