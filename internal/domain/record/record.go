// Package record holds the raw, untyped form of a response document.
package record

// Tag is the wire-level type hint of a field node.
type Tag string

// Wire tags emitted by the search server.
const (
	TagInt    Tag = "int"
	TagLong   Tag = "long"
	TagFloat  Tag = "float"
	TagDouble Tag = "double"
	TagStr    Tag = "str"
	TagBool   Tag = "bool"
	TagDate   Tag = "date"
	TagArr    Tag = "arr"
)

// Field is one named value unit of a record.
// Scalar fields carry Text; arr fields carry Children (which have no Name).
type Field struct {
	Name     string
	Tag      Tag
	Text     string
	Children []Field
}

// IsArray reports whether the field is a multi-valued container.
func (f Field) IsArray() bool { return f.Tag == TagArr }

// Record is one response document prior to mapping, fields in document order.
type Record struct {
	Fields []Field
}

// Get returns the first field with the given wire name.
func (r Record) Get(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
