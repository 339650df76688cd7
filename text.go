package notegrab

import (
	"regexp"
	"strings"
)

// TopicMarker is the suffix the site appends inside inline hashtag markup.
const TopicMarker = "话题"

var topicTagRe = regexp.MustCompile(`#([^#\[]+)\[` + TopicMarker + `\]#`)

// UpgradeScheme rewrites "http://" URLs to "https://" and gives
// protocol-relative URLs ("//host/...") an "https:" prefix.
// Any other input is returned unchanged.
func UpgradeScheme(u string) string {
	switch {
	case strings.HasPrefix(u, "http://"):
		return "https://" + strings.TrimPrefix(u, "http://")
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	default:
		return u
	}
}

// CleanTopicTags rewrites inline hashtag markup such as "#cats[话题]#"
// to the plain "#cats" form. Rewriting one tag can expose another that
// shared its closing "#", so passes repeat until nothing changes.
func CleanTopicTags(text string) string {
	for {
		out := topicTagRe.ReplaceAllString(text, "#$1")
		if out == text {
			return out
		}
		text = out
	}
}
