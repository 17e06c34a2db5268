package bonemap

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/lmcintyre/AnimAssist/pkg/errors"
)

// valueSpan is the byte range of an element's content in the source text.
type valueSpan struct {
	start, end int
	// selfClosing marks <hkparam .../> where start and end sit after "/>".
	selfClosing bool
}

// findParamSpan locates the content of the first hkparam named name. The
// tree library drops source positions, so the text is tokenized again and
// decoder offsets are recorded around the element.
func findParamSpan(text, name string) (valueSpan, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.Strict = false
	dec.CharsetReader = passthroughCharset

	var (
		span  valueSpan
		depth int
	)
	for {
		before := int(dec.InputOffset())
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return span, errors.Wrapf(err, errors.ErrTreeFormat, "failed to scan for %q", name)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth > 0 {
				depth++
				continue
			}
			if isParam(t, name) {
				depth = 1
				span.start = int(dec.InputOffset())
			}
		case xml.EndElement:
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				span.end = before
				span.selfClosing = span.end == span.start && strings.HasSuffix(text[:span.start], "/>")
				return span, nil
			}
		}
	}

	return span, errors.Newf(errors.ErrTreeFormat, "animation tree has no %q parameter", name).
		WithDetail("parameter", name)
}

func isParam(t xml.StartElement, name string) bool {
	if t.Name.Local != paramTag {
		return false
	}
	for _, a := range t.Attr {
		if a.Name.Local == "name" && a.Value == name {
			return true
		}
	}
	return false
}

// splice replaces the span's content with value.
func splice(text string, span valueSpan, value string) string {
	if span.selfClosing {
		open := strings.TrimSuffix(text[:span.start], "/>")
		open = strings.TrimRight(open, " \t\r\n")
		return open + ">" + value + "</" + paramTag + ">" + text[span.start:]
	}
	return text[:span.start] + value + text[span.end:]
}
