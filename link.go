package notegrab

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// LinkKind classifies an input link by the page template it leads to.
type LinkKind string

// Link kinds.
const (
	LinkShort       LinkKind = "short"
	LinkShare       LinkKind = "share"
	LinkExplore     LinkKind = "explore"
	LinkExploreUser LinkKind = "explore_user"
)

// ShortLinkHost identifies share short links that need redirect resolution.
const ShortLinkHost = "xhslink.com"

// ClassifyLink reports which kind of link rawURL is.
// Unrecognized links are treated as short links.
func ClassifyLink(rawURL string) LinkKind {
	switch {
	case strings.Contains(rawURL, ShortLinkHost):
		return LinkShort
	case strings.Contains(rawURL, "discovery/item"):
		return LinkShare
	case strings.Contains(rawURL, "explore"):
		if strings.Contains(rawURL, "xsec_source=pc_user") {
			return LinkExploreUser
		}
		return LinkExplore
	default:
		return LinkShort
	}
}

// IsShortLink reports whether rawURL must be resolved before fetching.
func IsShortLink(rawURL string) bool {
	return strings.Contains(rawURL, ShortLinkHost)
}

// UsesDesktopProfile reports whether pages of this kind are fetched with
// desktop browser headers. Share pages also allow meta-tag supplements.
func (k LinkKind) UsesDesktopProfile() bool {
	return k == LinkShare
}

// NormalizeInputURL prepends "https://" to inputs that carry no scheme.
func NormalizeInputURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

// CleanShareURL drops the tracking parameters "source" and "xhsshare" from
// share page URLs. Other URLs are returned unchanged.
// Only the first value of repeated parameters is kept.
func CleanShareURL(rawURL string) string {
	if !strings.Contains(rawURL, "discovery/item") {
		return rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	query := u.Query()
	query.Del("source")
	query.Del("xhsshare")

	flat := make(url.Values, len(query))
	for key, values := range query {
		if len(values) > 0 {
			flat.Set(key, values[0])
		} else {
			flat.Set(key, "")
		}
	}
	u.RawQuery = flat.Encode()

	return u.String()
}

// LinkResolver expands share short links into full note URLs.
type LinkResolver interface {
	// Resolve returns the redirect target of shortURL.
	// Returns ENETWORK if the expected redirect response is absent.
	Resolve(ctx context.Context, shortURL string) (string, error)
}

// noteIDRe matches the note ID segment of explore and share page paths.
var noteIDRe = regexp.MustCompile(`/(?:explore|discovery/item)/([0-9A-Za-z]+)`)

// NoteIDFromURL returns the note ID carried in the path of a note page URL,
// or "" if rawURL does not name a note.
func NoteIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	m := noteIDRe.FindStringSubmatch(u.Path)
	if m == nil {
		return ""
	}
	return m[1]
}
