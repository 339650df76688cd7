package state

import "github.com/fwojciec/notegrab/jsobj"

// Author is the note author. Either field may be empty.
type Author struct {
	Name string
	ID   string
}

var (
	authorNameFields = []string{"nickName", "nickname", "name"}
	authorIDFields   = []string{"userId", "user_id", "id"}
)

// ResolveAuthor reads the author name and identifier from a user subtree.
// A nil or non-object user yields an empty Author.
func ResolveAuthor(user *jsobj.Value) Author {
	return Author{
		Name: firstText(user, authorNameFields...),
		ID:   firstText(user, authorIDFields...),
	}
}

// firstText returns the first non-empty scalar among the named fields of v.
// Numbers are rendered with their source literal.
func firstText(v *jsobj.Value, fields ...string) string {
	for _, f := range fields {
		if s := scalarText(v.Field(f)); s != "" {
			return s
		}
	}
	return ""
}

func scalarText(v *jsobj.Value) string {
	switch v.Kind() {
	case jsobj.String:
		return v.Text()
	case jsobj.Number:
		if !v.Truthy() {
			return ""
		}
		n, _ := v.Number()
		return n.String()
	default:
		return ""
	}
}
