package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/domain/coerce"
)

// Verbatim is a value inserted into the query text without escaping.
type Verbatim string

// OpenBound stands for an unbounded range end.
const OpenBound = "*"

var termEscaper = strings.NewReplacer(
	`\`, `\\`,
	`+`, `\+`,
	`-`, `\-`,
	`&`, `\&`,
	`|`, `\|`,
	`!`, `\!`,
	`(`, `\(`,
	`)`, `\)`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`^`, `\^`,
	`"`, `\"`,
	`~`, `\~`,
	`*`, `\*`,
	`?`, `\?`,
	`:`, `\:`,
	`/`, `\/`,
	" ", `\ `,
	"\t", "\\\t",
	"\n", "\\\n",
	"\r", "\\\r",
)

// Escape backslash-escapes every character the query parser treats as syntax.
func Escape(s string) string {
	return termEscaper.Replace(s)
}

// Term renders v as query text. Verbatim values pass through untouched,
// everything else is formatted like a wire value and escaped.
func Term(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", fmt.Errorf("%w: nil value", domain.ErrInvalidQuery)
	case Verbatim:
		return string(x), nil
	}
	text, ok := coerce.Format(reflect.ValueOf(v))
	if !ok {
		return "", fmt.Errorf("%w: value %v has no query form", domain.ErrInvalidQuery, v)
	}
	if text == "" {
		return `""`, nil
	}
	return Escape(text), nil
}

func bound(v any) (string, error) {
	if v == nil {
		return OpenBound, nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return OpenBound, nil
	}
	return Term(v)
}

func field(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: field name is required", domain.ErrInvalidQuery)
	}
	return Escape(name), nil
}
