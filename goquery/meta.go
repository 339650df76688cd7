// Package goquery reads note fields from the Open Graph meta tags of note
// pages using goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/notegrab"
)

// TitleSuffix is appended by the site to og:title.
const TitleSuffix = " - 小红书"

var exploreIDRe = regexp.MustCompile(`/explore/([^/?]+)`)

// Ensure MetaParser implements notegrab.Parser at compile time.
var _ notegrab.Parser = (*MetaParser)(nil)

// MetaParser builds a note from the meta tags of a page. Meta tags carry
// less than the page state: the author name and publish date are always
// empty, and the author ID holds the note ID taken from og:url.
type MetaParser struct{}

// NewMetaParser creates a new MetaParser.
func NewMetaParser() *MetaParser {
	return &MetaParser{}
}

// Parse extracts a note from page meta tags.
// Returns ENOENTITY if the page carries no note metadata at all.
func (p *MetaParser) Parse(html string) (*notegrab.Note, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, notegrab.Errorf(notegrab.EINVALID, "failed to parse HTML: %v", err)
	}

	title := metaContent(doc, "og:title")
	title = strings.TrimSpace(strings.ReplaceAll(title, TitleSuffix, ""))

	desc := metaContent(doc, "description")
	if desc == "" {
		desc = metaContent(doc, "og:description")
	}

	note := &notegrab.Note{
		Title:     title,
		Desc:      notegrab.CleanTopicTags(desc),
		VideoURL:  metaContent(doc, "og:video"),
		ImageURLs: []string{},
	}
	for _, u := range metaContents(doc, "og:image") {
		note.ImageURLs = append(note.ImageURLs, notegrab.UpgradeScheme(u))
	}

	switch {
	case metaContent(doc, "og:type") == string(notegrab.NoteTypeVideo):
		note.Type = notegrab.NoteTypeVideo
	case metaContent(doc, "og:type") == "" && note.VideoURL != "":
		note.Type = notegrab.NoteTypeVideo
	default:
		note.Type = notegrab.NoteTypeNormal
	}

	if m := exploreIDRe.FindStringSubmatch(metaContent(doc, "og:url")); m != nil {
		note.AuthorID = m[1]
	}

	if note.Title == "" && note.Desc == "" && note.VideoURL == "" && len(note.ImageURLs) == 0 {
		return nil, notegrab.Errorf(notegrab.ENOENTITY, "no note metadata in page")
	}

	return note, nil
}

// VideoFromMeta returns the og:video URL of a page, or "" if absent.
func VideoFromMeta(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return metaContent(doc, "og:video")
}

// metaSelector matches meta tags naming the field by either the name or
// the property attribute.
func metaSelector(name string) string {
	return `meta[name="` + name + `"], meta[property="` + name + `"]`
}

// metaContent returns the first non-empty content of the named meta tag.
func metaContent(doc *goquery.Document, name string) string {
	var content string
	doc.Find(metaSelector(name)).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		content = strings.TrimSpace(sel.AttrOr("content", ""))
		return content == ""
	})
	return content
}

// metaContents returns every non-empty content of the named meta tag in
// document order.
func metaContents(doc *goquery.Document, name string) []string {
	var contents []string
	doc.Find(metaSelector(name)).Each(func(_ int, sel *goquery.Selection) {
		if c := strings.TrimSpace(sel.AttrOr("content", "")); c != "" {
			contents = append(contents, c)
		}
	})
	return contents
}
