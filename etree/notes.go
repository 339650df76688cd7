// Package etree exports grabbed notes as XML.
package etree

import (
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/notegrab"
)

// Encode writes records as an indented <notes> document.
func Encode(w io.Writer, recs []*notegrab.NoteRecord) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("notes")
	for _, rec := range recs {
		appendNote(root, rec)
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("writing notes XML: %w", err)
	}
	return nil
}

func appendNote(root *etree.Element, rec *notegrab.NoteRecord) {
	n := &rec.Note

	el := root.CreateElement("note")
	el.CreateAttr("type", string(n.Type))
	if rec.ID != "" {
		el.CreateAttr("id", rec.ID)
	}

	el.CreateElement("source").SetText(rec.SourceURL)
	if !rec.FetchedAt.IsZero() {
		el.CreateElement("fetched").SetText(rec.FetchedAt.UTC().Format(time.RFC3339))
	}
	el.CreateElement("title").SetText(n.Title)
	el.CreateElement("desc").SetText(n.Desc)

	author := el.CreateElement("author")
	author.CreateAttr("id", n.AuthorID)
	author.SetText(n.AuthorName)

	el.CreateElement("published").SetText(n.PublishTime)

	if n.IsVideo() {
		el.CreateElement("video").SetText(n.VideoURL)
		return
	}
	images := el.CreateElement("images")
	for _, u := range n.ImageURLs {
		images.CreateElement("image").SetText(u)
	}
}

// Decode reads records previously written by Encode.
func Decode(r io.Reader) ([]*notegrab.NoteRecord, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("parsing notes XML: %w", err)
	}

	root := doc.SelectElement("notes")
	if root == nil {
		return nil, notegrab.Errorf(notegrab.EINVALID, "missing <notes> root element")
	}

	recs := []*notegrab.NoteRecord{}
	for _, el := range root.SelectElements("note") {
		rec, err := parseNote(el)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseNote(el *etree.Element) (*notegrab.NoteRecord, error) {
	rec := &notegrab.NoteRecord{
		ID:        el.SelectAttrValue("id", ""),
		SourceURL: childText(el, "source"),
		Note: notegrab.Note{
			Type:        notegrab.NoteType(el.SelectAttrValue("type", string(notegrab.NoteTypeNormal))),
			Title:       childText(el, "title"),
			Desc:        childText(el, "desc"),
			PublishTime: childText(el, "published"),
			ImageURLs:   []string{},
		},
	}

	if author := el.SelectElement("author"); author != nil {
		rec.Note.AuthorName = author.Text()
		rec.Note.AuthorID = author.SelectAttrValue("id", "")
	}

	if fetched := childText(el, "fetched"); fetched != "" {
		t, err := time.Parse(time.RFC3339, fetched)
		if err != nil {
			return nil, notegrab.Errorf(notegrab.EINVALID, "invalid fetched time %q", fetched)
		}
		rec.FetchedAt = t
	}

	rec.Note.VideoURL = childText(el, "video")
	if images := el.SelectElement("images"); images != nil {
		for _, img := range images.SelectElements("image") {
			rec.Note.ImageURLs = append(rec.Note.ImageURLs, img.Text())
		}
	}

	return rec, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}
