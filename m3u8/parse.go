package m3u8

import "strings"

// Parser drives the single-pass document walk and owns the tag-id
// counter. A zero Parser starts ids at 0; reusing the same Parser across
// calls continues the sequence, which keeps ids unique per tracked
// rendition when a live playlist is re-parsed. A Parser must not be used
// from multiple goroutines at once; distinct Parsers are independent.
type Parser struct {
	nextID int
}

// NewParser returns a parser with a fresh id sequence.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses one playlist snapshot with a fresh parser.
func Parse(data []byte) (*Playlist, error) {
	return NewParser().Parse(data)
}

// Parse parses one playlist snapshot. The input must be UTF-8 text; each
// line is trimmed, so indentation and CR remnants are harmless. The first
// non-empty line must be #EXTM3U.
//
// The document type is detected from the first tag bearing evidence:
// media-only or segment tags make it a media playlist, EXT-X-STREAM-INF
// or EXT-X-MEDIA make it a master. A segment tag in a detected master
// playlist fails with ErrInvalidHierarchy. Once a segment tag is seen,
// the remainder of the input is consumed as the segment list.
func (p *Parser) Parse(data []byte) (*Playlist, error) {
	lines := splitLines(data)
	i := 0
	for i < len(lines) && lines[i] == "" {
		i++
	}
	if i == len(lines) || lines[i] != "#"+TagHeader {
		return nil, ErrMissingHeader
	}
	i++

	pl := &Playlist{Type: TypeMaster}
	computed := newPlaylistComputed()
	detected := false

	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "" || line[0] != '#' {
			// Bare URIs carry no meaning until segment context
			// exists; a master playlist's variant URIs are
			// consumed below with their EXT-X-STREAM-INF.
			continue
		}
		if !strings.HasPrefix(line, "#EXT") {
			continue // comment
		}
		t, err := ParseTag(p.nextID, line)
		if err != nil {
			return nil, err
		}
		p.nextID++

		// The playlist-level reading of EXT-X-DATERANGE wins over
		// its segment-level one, so media-only classification is
		// checked first.
		switch {
		case mediaOnly[t.Name]:
			if !detected {
				pl.Type = TypeMedia
				detected = true
			}
			pl.Tags = append(pl.Tags, t)
			computed.index(t)

		case segmentOnly[t.Name]:
			if !detected {
				pl.Type = TypeMedia
				detected = true
			}
			if pl.Type != TypeMedia {
				return nil, ErrInvalidHierarchy
			}
			w := newSegmentWalk(p, pl, &computed, len(lines)-i)
			w.tag(t)
			for i++; i < len(lines); i++ {
				if err := w.line(lines[i]); err != nil {
					return nil, err
				}
			}
			pl.Segments, pl.SegmentsInfo = w.finish()

		case t.Name == TagStreamInf:
			detected = true
			// The next line is always the variant URI, even if
			// it looks like a comment or a tag. The tag is
			// rebuilt with the URI attached as an attribute.
			uri := ""
			if i+1 < len(lines) {
				i++
				uri = lines[i]
			}
			t = t.withAttr(p.nextID, AttrURI, uri)
			p.nextID++
			pl.Tags = append(pl.Tags, t)
			computed.index(t)

		case t.Name == TagMedia:
			detected = true
			pl.Tags = append(pl.Tags, t)
			computed.index(t)

		default:
			pl.Tags = append(pl.Tags, t)
			computed.index(t)
		}
	}

	if pl.Type == TypeMedia && pl.Segments == nil {
		pl.Segments = []Segment{}
	}
	pl.Computed = computed
	return pl, nil
}

func splitLines(data []byte) []string {
	lines := strings.Split(string(data), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
