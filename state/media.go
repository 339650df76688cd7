package state

import (
	"strings"

	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/jsobj"
)

// MaxSearchDepth bounds the last-resort search for a video URL, counted in
// levels below the entity root.
const MaxSearchDepth = 5

var (
	// VideoMarkers identify strings that point at a video file.
	VideoMarkers = []string{"sns-video", ".mp4"}

	// PlaceholderMarkers identify filler images that are not note content.
	PlaceholderMarkers = []string{"picasso-static", "fe-platform"}
)

// DefaultImageScene tags the preferred rendition in an image's infoList.
const DefaultImageScene = "WB_DFT"

var (
	streamURLFields = []string{"masterUrl", "backupUrl", "url"}
	videoURLFields  = []string{"url", "videoUrl", "playUrl"}
	imageListFields = []string{"imageList", "images"}
	imageURLFields  = []string{"url", "urlDefault", "imageUrl", "original", "urlPre"}
)

// videoSources are tried in order until one yields a URL.
var videoSources = []func(entity *jsobj.Value) string{
	func(e *jsobj.Value) string {
		return firstText(e.Path("video", "media", "stream", "h264").Index(0), streamURLFields...)
	},
	func(e *jsobj.Value) string {
		return firstText(e.Field("video"), videoURLFields...)
	},
	func(e *jsobj.Value) string {
		return firstText(e.Path("stream", "h264").Index(0), streamURLFields...)
	},
	func(e *jsobj.Value) string {
		return searchVideoURL(e, MaxSearchDepth)
	},
}

// ResolveVideo returns the playable video URL of a video entity, upgraded
// to https, or "" if none of the known locations holds one.
func ResolveVideo(entity *jsobj.Value) string {
	for _, source := range videoSources {
		if u := source(entity); u != "" {
			return notegrab.UpgradeScheme(u)
		}
	}
	return ""
}

type searchFrame struct {
	node  *jsobj.Value
	depth int
}

// searchVideoURL walks the tree depth-first in source order and returns
// the first string containing a video marker. Containers deeper than
// maxDepth levels below root are not expanded.
func searchVideoURL(root *jsobj.Value, maxDepth int) string {
	stack := []searchFrame{{node: root, depth: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var children []*jsobj.Value
		switch f.node.Kind() {
		case jsobj.String:
			if s := f.node.Text(); hasAny(s, VideoMarkers) {
				return s
			}
			continue
		case jsobj.Object:
			for _, k := range f.node.Keys() {
				children = append(children, f.node.Field(k))
			}
		case jsobj.Array:
			children = f.node.Items()
		default:
			continue
		}

		if f.depth > maxDepth {
			continue
		}
		// Push in reverse so the first child is visited first.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, searchFrame{node: children[i], depth: f.depth + 1})
		}
	}
	return ""
}

// ResolveImages returns the gallery image URLs of an entity in source
// order, skipping placeholders and upgrading schemes to https.
// The result is never nil.
func ResolveImages(entity *jsobj.Value) []string {
	urls := []string{}

	var list *jsobj.Value
	for _, f := range imageListFields {
		if v := entity.Field(f); v.Truthy() {
			list = v
			break
		}
	}

	for _, item := range list.Items() {
		var u string
		switch item.Kind() {
		case jsobj.Object:
			u = imageURL(item)
		case jsobj.String:
			u = item.Text()
		}
		if u == "" || hasAny(u, PlaceholderMarkers) {
			continue
		}
		urls = append(urls, notegrab.UpgradeScheme(u))
	}
	return urls
}

// imageURL reads the URL of one gallery image object, falling back to its
// infoList renditions.
func imageURL(img *jsobj.Value) string {
	if u := firstText(img, imageURLFields...); u != "" {
		return u
	}

	infos := img.Field("infoList")
	for _, info := range infos.Items() {
		if info.Has("url") && info.Field("imageScene").Text() == DefaultImageScene {
			if u := info.Field("url").Text(); u != "" {
				return u
			}
			break
		}
	}
	return infos.Index(0).Field("url").Text()
}

func hasAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
