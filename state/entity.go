// Package state interprets the parsed page state of a note page: it finds
// the note entity among the known page shapes, resolves its author and
// media, and assembles the normalized notegrab.Note.
//
// Everything here is a pure function of the parsed tree.
package state

import (
	"github.com/fwojciec/notegrab"
	"github.com/fwojciec/notegrab/jsobj"
)

// Entity is the subtree holding the note fields, together with the author
// subtree found along the same path.
type Entity struct {
	// Path names the page shape the entity was found under.
	Path   string
	Node   *jsobj.Value
	Author *jsobj.Value
}

// entityPath locates an entity in one known page shape.
// find returns nil when the shape does not match.
type entityPath struct {
	name string
	find func(root *jsobj.Value) *jsobj.Value
}

// Page shapes in priority order. The first match wins.
var entityPaths = []entityPath{
	{
		name: "noteData.data.noteData",
		find: func(root *jsobj.Value) *jsobj.Value {
			return root.Path("noteData", "data", "noteData")
		},
	},
	{
		name: "note.noteDetailMap.*.note",
		find: func(root *jsobj.Value) *jsobj.Value {
			details := root.Path("note", "noteDetailMap")
			keys := details.Keys()
			if len(keys) == 0 {
				return nil
			}
			// The map is keyed by note ID and normally holds a single entry;
			// the first key in source order is used.
			return details.Field(keys[0]).Field("note")
		},
	},
	{
		name: "noteData.data.note",
		find: func(root *jsobj.Value) *jsobj.Value {
			return root.Path("noteData", "data", "note")
		},
	},
}

// ResolveEntity returns the note entity from the first page shape whose
// full path exists and ends in an object. The author is read only from
// the entity's own "user" field.
//
// Returns ENOENTITY if no shape matches.
func ResolveEntity(root *jsobj.Value) (*Entity, error) {
	for _, p := range entityPaths {
		node := p.find(root)
		if !node.IsObject() {
			continue
		}
		return &Entity{
			Path:   p.name,
			Node:   node,
			Author: node.Field("user"),
		}, nil
	}
	return nil, notegrab.Errorf(notegrab.ENOENTITY, "note entity not found under any known page shape")
}
