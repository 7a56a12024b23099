package xmlwire

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Field is one named value of a document being added.
type Field struct {
	Name  string
	Value string
}

// Doc is the field list of one document, in member order.
type Doc []Field

// Add renders <add> with one <doc> per document.
func Add(docs ...Doc) string {
	var b strings.Builder
	if len(docs) == 0 {
		return "<add />"
	}
	b.WriteString("<add>")
	for _, d := range docs {
		if len(d) == 0 {
			b.WriteString("<doc />")
			continue
		}
		b.WriteString("<doc>")
		for _, f := range d {
			b.WriteString(`<field name="`)
			escape(&b, f.Name)
			b.WriteString(`">`)
			escape(&b, f.Value)
			b.WriteString("</field>")
		}
		b.WriteString("</doc>")
	}
	b.WriteString("</add>")
	return b.String()
}

// DeleteByID renders <delete> with one <id> per identifier.
func DeleteByID(ids ...string) string {
	var b strings.Builder
	b.WriteString("<delete>")
	for _, id := range ids {
		b.WriteString("<id>")
		escape(&b, id)
		b.WriteString("</id>")
	}
	b.WriteString("</delete>")
	return b.String()
}

// DeleteByQuery renders <delete> for every document matching q.
func DeleteByQuery(q string) string {
	var b strings.Builder
	b.WriteString("<delete><query>")
	escape(&b, q)
	b.WriteString("</query></delete>")
	return b.String()
}

// CommitOptions are the optional flags of commit and optimize.
// Nil flags are omitted and the server default applies.
type CommitOptions struct {
	WaitFlush    *bool
	WaitSearcher *bool
}

// Commit renders <commit />.
func Commit(opts CommitOptions) string {
	return command("commit", opts)
}

// Optimize renders <optimize />.
func Optimize(opts CommitOptions) string {
	return command("optimize", opts)
}

func command(name string, opts CommitOptions) string {
	var b strings.Builder
	b.WriteString("<" + name)
	flag(&b, "waitFlush", opts.WaitFlush)
	flag(&b, "waitSearcher", opts.WaitSearcher)
	b.WriteString(" />")
	return b.String()
}

func flag(b *strings.Builder, name string, v *bool) {
	if v == nil {
		return
	}
	b.WriteString(" " + name + `="` + strconv.FormatBool(*v) + `"`)
}

// escape writes s with XML special characters replaced. The writer never fails.
func escape(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
