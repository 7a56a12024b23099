// Package xmlwire decodes select responses into raw records and renders
// update command bodies.
package xmlwire

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/solrdex/internal/domain"
	"github.com/kailas-cloud/solrdex/internal/domain/record"
)

// mainResult is the name attribute of the document list in a select response.
const mainResult = "response"

// Result is the decoded document list of a select response.
type Result struct {
	NumFound int64
	Start    int64
	Records  []record.Record
}

type envelope struct {
	XMLName xml.Name    `xml:"response"`
	Results []resultXML `xml:"result"`
}

type resultXML struct {
	Name     string   `xml:"name,attr"`
	NumFound *string  `xml:"numFound,attr"`
	Start    *string  `xml:"start,attr"`
	Docs     []docXML `xml:"doc"`
}

type docXML struct {
	Fields []fieldXML `xml:",any"`
}

type fieldXML struct {
	XMLName  xml.Name
	Name     *string    `xml:"name,attr"`
	Text     string     `xml:",chardata"`
	Children []fieldXML `xml:",any"`
}

// DecodeResponse parses a select response body.
func DecodeResponse(raw string) (Result, error) {
	var env envelope
	if err := xml.NewDecoder(strings.NewReader(raw)).Decode(&env); err != nil {
		return Result{}, domain.NewResponseFormatError("malformed xml", err)
	}

	res, ok := pickResult(env.Results)
	if !ok {
		return Result{}, domain.NewResponseFormatError("missing result element", nil)
	}
	if res.NumFound == nil {
		return Result{}, domain.NewResponseFormatError("result has no numFound attribute", nil)
	}
	numFound, err := strconv.ParseInt(*res.NumFound, 10, 64)
	if err != nil {
		return Result{}, domain.NewResponseFormatError("numFound is not an integer", err)
	}
	if numFound < 0 {
		return Result{}, domain.NewResponseFormatError("numFound is negative", nil)
	}
	if int64(len(res.Docs)) > numFound {
		return Result{}, domain.NewResponseFormatError(
			fmt.Sprintf("%d docs exceed numFound %d", len(res.Docs), numFound), nil)
	}
	out := Result{NumFound: numFound}
	if res.Start != nil {
		if out.Start, err = strconv.ParseInt(*res.Start, 10, 64); err != nil {
			return Result{}, domain.NewResponseFormatError("start is not an integer", err)
		}
	}

	out.Records = make([]record.Record, 0, len(res.Docs))
	for i, d := range res.Docs {
		rec, err := toRecord(d)
		if err != nil {
			return Result{}, domain.NewResponseFormatError("doc "+strconv.Itoa(i), err)
		}
		out.Records = append(out.Records, rec)
	}
	return out, nil
}

// pickResult prefers the main document list and falls back to the first result.
func pickResult(results []resultXML) (resultXML, bool) {
	for _, r := range results {
		if r.Name == mainResult {
			return r, true
		}
	}
	if len(results) == 0 {
		return resultXML{}, false
	}
	return results[0], true
}

func toRecord(d docXML) (record.Record, error) {
	rec := record.Record{Fields: make([]record.Field, 0, len(d.Fields))}
	for _, f := range d.Fields {
		if f.Name == nil {
			return record.Record{}, fmt.Errorf("<%s> field has no name attribute", f.XMLName.Local)
		}
		rec.Fields = append(rec.Fields, toField(f))
	}
	return rec, nil
}

func toField(f fieldXML) record.Field {
	out := record.Field{Tag: record.Tag(f.XMLName.Local)}
	if f.Name != nil {
		out.Name = *f.Name
	}
	if out.IsArray() {
		out.Children = make([]record.Field, 0, len(f.Children))
		for _, c := range f.Children {
			out.Children = append(out.Children, toField(c))
		}
		return out
	}
	out.Text = f.Text
	return out
}
