package naming

import (
	"fmt"
	"strings"
)

// MissingFieldError reports a template placeholder that the attribute set
// cannot supply. It is a recoverable condition: the resolver reacts by
// discarding the candidate scheme, not by failing the item.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("template field %q not available", e.Field)
}

type segment struct {
	text  string
	field bool
}

// Template is a parsed naming template: a sequence of literal and
// {field} placeholder segments. Rendering is a total function over an
// attribute set; a placeholder with no value yields a MissingFieldError
// instead of panicking mid-render.
type Template struct {
	segs []segment
}

// ParseTemplate parses a template string such as
// "{track_number} - {track_title}".
func ParseTemplate(raw string) (*Template, error) {
	t := &Template{}
	rest := raw
	for len(rest) > 0 {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			t.segs = append(t.segs, segment{text: rest})
			break
		}
		if open > 0 {
			t.segs = append(t.segs, segment{text: rest[:open]})
		}
		close := strings.IndexByte(rest[open:], '}')
		if close < 0 {
			return nil, fmt.Errorf("unclosed placeholder in template %q", raw)
		}
		name := rest[open+1 : open+close]
		if name == "" || strings.ContainsAny(name, "{ ") {
			return nil, fmt.Errorf("invalid placeholder %q in template %q", name, raw)
		}
		t.segs = append(t.segs, segment{text: name, field: true})
		rest = rest[open+close+1:]
	}
	return t, nil
}

// References reports whether the template uses any of the given fields.
func (t *Template) References(fields ...string) bool {
	for _, seg := range t.segs {
		if !seg.field {
			continue
		}
		for _, f := range fields {
			if seg.text == f {
				return true
			}
		}
	}
	return false
}

// Render substitutes attribute values for every placeholder. A field the
// attribute set cannot supply returns a *MissingFieldError.
func (t *Template) Render(a *Attributes) (string, error) {
	var b strings.Builder
	for _, seg := range t.segs {
		if !seg.field {
			b.WriteString(seg.text)
			continue
		}
		val, ok := a.Field(seg.text)
		if !ok {
			return "", &MissingFieldError{Field: seg.text}
		}
		b.WriteString(val)
	}
	return b.String(), nil
}

// TemplateReferences reports whether the raw template string uses any of
// the given fields, tolerating templates that fail to parse.
func TemplateReferences(raw string, fields ...string) bool {
	t, err := ParseTemplate(raw)
	if err != nil {
		return false
	}
	return t.References(fields...)
}
