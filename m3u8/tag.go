package m3u8

import (
	"math"
	"strconv"
	"strings"
)

// Attribute is a single name/value pair from a tag's attribute list.
// Quoting is not preserved: the value holds the string contents verbatim,
// and Tag.String re-quotes anything that does not look numeric.
type Attribute struct {
	Name  string
	Value string
}

// Tag is one parsed directive line. Tags are immutable after construction;
// the only apparent exception, a MAP-typed preload hint, is modeled as a
// fresh tag with Hinted set (see promoteToMap) rather than a rename.
//
// ID is unique and strictly increasing within one Parser, in encounter
// order. Tags synthesized during the pass (a variant rebuilt with its URI
// attribute, a promoted preload hint) draw fresh IDs from the same counter.
type Tag struct {
	ID         int
	Name       string
	Value      string
	Attributes []Attribute

	// Hinted marks an EXT-X-MAP that originated as a MAP-typed
	// EXT-X-PRELOAD-HINT rather than a declared map tag.
	Hinted bool
}

// ParseTag parses a single directive line of the form #NAME[:REST] into a
// tag with the given id. REST is an optional scalar value (the longest
// prefix containing neither '=' nor ',') followed by comma-separated
// key=value attributes. Double-quoted attribute values keep commas and '='
// verbatim. Input after the last recognizable attribute is ignored.
func ParseTag(id int, line string) (Tag, error) {
	if len(line) < 2 || line[0] != '#' {
		return Tag{}, &MalformedDirectiveError{Line: line}
	}
	i := 1
	for i < len(line) && isNameByte(line[i]) {
		i++
	}
	if i == 1 {
		return Tag{}, &MalformedDirectiveError{Line: line}
	}
	t := Tag{ID: id, Name: line[1:i]}
	if i == len(line) {
		return t, nil
	}
	if line[i] != ':' {
		return Tag{}, &MalformedDirectiveError{Line: line}
	}
	rest := line[i+1:]

	// Leading scalar value: present only when terminated by ',' or end
	// of input, never by '='.
	j := strings.IndexAny(rest, "=,")
	switch {
	case j < 0:
		t.Value = rest
		return t, nil
	case rest[j] == ',':
		t.Value = rest[:j]
		rest = rest[j+1:]
	}

	for len(rest) > 0 {
		eq := strings.IndexAny(rest, "=,")
		if eq <= 0 || rest[eq] != '=' {
			break // not a key=value pair; discard the remainder
		}
		attr := Attribute{Name: rest[:eq]}
		rest = rest[eq+1:]
		if len(rest) > 0 && rest[0] == '"' {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				attr.Value = rest[1:]
				rest = ""
			} else {
				attr.Value = rest[1 : 1+end]
				rest = rest[2+end:]
			}
		} else if c := strings.IndexByte(rest, ','); c < 0 {
			attr.Value = rest
			rest = ""
		} else {
			attr.Value = rest[:c]
			rest = rest[c:]
		}
		t.Attributes = append(t.Attributes, attr)
		if rest == "" {
			break
		}
		if rest[0] != ',' {
			break // garbage after a quoted value
		}
		rest = rest[1:]
	}
	return t, nil
}

func isNameByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '-'
}

// String reserializes the tag to canonical form: #NAME[:value][,k=v]...
// with numeric-looking attribute values left unquoted and everything else
// double-quoted. Parsing a canonically quoted line and calling String
// reproduces it byte for byte.
func (t Tag) String() string {
	return t.render(false)
}

// Key returns the same serialization as String minus the grouping
// attributes that identify a particular stream or track, so that tags
// describing interchangeable renditions produce identical keys.
func (t Tag) Key() string {
	return t.render(true)
}

func (t Tag) render(key bool) string {
	var b strings.Builder
	b.WriteByte('#')
	b.WriteString(t.Name)
	sep := ":"
	if t.Value != "" {
		b.WriteString(sep)
		b.WriteString(t.Value)
		sep = ","
	}
	for _, a := range t.Attributes {
		if key && groupingAttrs[a.Name] {
			continue
		}
		b.WriteString(sep)
		sep = ","
		b.WriteString(a.Name)
		b.WriteByte('=')
		if numericValue(a.Value) {
			b.WriteString(a.Value)
		} else {
			b.WriteByte('"')
			b.WriteString(a.Value)
			b.WriteByte('"')
		}
	}
	return b.String()
}

// numericValue reports whether s round-trips unquoted, that is, whether it
// parses as a finite number.
func numericValue(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Attr returns the value of the named attribute and whether it was present.
func (t Tag) Attr(name string) (string, bool) {
	for _, a := range t.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// RequiredAttr returns the value of the named attribute, or a
// *MissingAttributeError if the tag does not carry it.
func (t Tag) RequiredAttr(name string) (string, error) {
	v, ok := t.Attr(name)
	if !ok {
		return "", &MissingAttributeError{Tag: t.Name, Attribute: name}
	}
	return v, nil
}

// AttrInt returns the named attribute parsed as an integer, or def when
// the attribute is absent or not numeric.
func (t Tag) AttrInt(name string, def int64) int64 {
	v, ok := t.Attr(name)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// AttrFloat returns the named attribute parsed as a float, or def when
// the attribute is absent or not numeric.
func (t Tag) AttrFloat(name string, def float64) float64 {
	v, ok := t.Attr(name)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// ValueInt returns the scalar value parsed as an integer, or def.
func (t Tag) ValueInt(def int64) int64 {
	n, err := strconv.ParseInt(t.Value, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// ValueFloat returns the scalar value parsed as a float, or def.
func (t Tag) ValueFloat(def float64) float64 {
	f, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return def
	}
	return f
}

// promoteToMap copies a MAP-typed preload hint into a declared-map tag
// carrying a fresh id, leaving the original untouched.
func (t Tag) promoteToMap(id int) Tag {
	attrs := make([]Attribute, len(t.Attributes))
	copy(attrs, t.Attributes)
	return Tag{ID: id, Name: TagMap, Value: t.Value, Attributes: attrs, Hinted: true}
}

// withAttr copies the tag with one more attribute appended, under a fresh id.
func (t Tag) withAttr(id int, name, value string) Tag {
	attrs := make([]Attribute, len(t.Attributes), len(t.Attributes)+1)
	copy(attrs, t.Attributes)
	attrs = append(attrs, Attribute{Name: name, Value: value})
	return Tag{ID: id, Name: t.Name, Value: t.Value, Attributes: attrs}
}
