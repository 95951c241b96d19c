package m3u8

import "strings"

// Segment is one addressable media unit of a media playlist.
type Segment struct {
	// URI is the segment address verbatim from the playlist. It is
	// empty for a trailing segment that exists only to host partial
	// segments published before the full segment's URI.
	URI string

	// Tags holds the segment-scoped tags in encounter order. The
	// carried EXT-X-MAP, when one is in effect, appears here too.
	Tags []Tag

	// PartialSegments holds EXT-X-PART tags and PART-typed
	// EXT-X-PRELOAD-HINT tags belonging to this segment.
	PartialSegments []Tag

	Computed SegmentComputed
}

// SegmentComputed caches the first occurrence of each distinguished
// segment tag. Later duplicates stay in Segment.Tags but are not indexed;
// encryption keys are the exception and accumulate.
type SegmentComputed struct {
	Extinf   *Tag
	Duration float64

	// Map is the initialization segment in effect for this segment,
	// either declared on it or carried from an earlier declaration.
	// MapID is the id of that tag, -1 when there is none.
	Map   *Tag
	MapID int

	Gap             *Tag
	ByteRange       *Tag
	Discontinuity   *Tag
	Keys            []Tag
	ProgramDateTime *Tag
	Tiles           *Tag

	Bitrate    int64
	hasBitrate bool
}

func newSegmentComputed() SegmentComputed {
	return SegmentComputed{MapID: -1}
}

// index folds one segment-scoped tag into the computed view, first wins.
func (c *SegmentComputed) index(t Tag) {
	switch t.Name {
	case TagExtinf:
		if c.Extinf == nil {
			c.Extinf = ref(t)
			c.Duration = t.ValueFloat(0)
		}
	case TagMap:
		if c.Map == nil {
			c.Map = ref(t)
			c.MapID = t.ID
		}
	case TagGap:
		slot(&c.Gap, t)
	case TagByteRange:
		slot(&c.ByteRange, t)
	case TagDiscontinuity:
		slot(&c.Discontinuity, t)
	case TagKey:
		c.Keys = append(c.Keys, t)
	case TagProgramDateTime:
		slot(&c.ProgramDateTime, t)
	case TagTiles:
		slot(&c.Tiles, t)
	case TagBitrate:
		if !c.hasBitrate {
			c.Bitrate = t.ValueInt(0)
			c.hasBitrate = true
		}
	}
}

// segmentWalk accumulates segments for the remainder of the line stream
// once the first segment tag has been seen. Playlist-level tags can still
// interleave with segments in a live playlist, so they keep flowing into
// the playlist tag list and index.
type segmentWalk struct {
	p  *Parser
	pl *Playlist
	pc *PlaylistComputed

	segments []Segment
	info     SegmentsComputed

	tags       []Tag
	parts      []Tag
	computed   SegmentComputed
	carriedMap *Tag
}

func newSegmentWalk(p *Parser, pl *Playlist, pc *PlaylistComputed, remaining int) *segmentWalk {
	// Pre-size for the common case of many one-line segments.
	n := remaining / 2
	if n < 100 {
		n = 100
	}
	return &segmentWalk{
		p:        p,
		pl:       pl,
		pc:       pc,
		segments: make([]Segment, 0, n),
		computed: newSegmentComputed(),
	}
}

func (w *segmentWalk) line(line string) error {
	if line == "" {
		return nil
	}
	if line[0] != '#' {
		w.flush(line)
		return nil
	}
	if !strings.HasPrefix(line, "#EXT") {
		return nil // comment
	}
	t, err := ParseTag(w.p.nextID, line)
	if err != nil {
		return err
	}
	w.p.nextID++
	w.tag(t)
	return nil
}

func (w *segmentWalk) tag(t Tag) {
	switch {
	case mediaOnly[t.Name]:
		w.pl.Tags = append(w.pl.Tags, t)
		w.pc.index(t)
	case t.Name == TagMap:
		w.carriedMap = ref(t)
	case t.Name == TagPart:
		w.part(t)
	case t.Name == TagPreloadHint:
		typ, _ := t.Attr(AttrType)
		switch typ {
		case HintPart:
			w.part(t)
		case HintMap:
			m := t.promoteToMap(w.p.nextID)
			w.p.nextID++
			w.carriedMap = &m
		default:
			w.tags = append(w.tags, t)
		}
	default:
		w.tags = append(w.tags, t)
		w.computed.index(t)
	}
}

func (w *segmentWalk) part(t Tag) {
	if v, _ := t.Attr(AttrGap); v == "YES" {
		w.info.GapCount++
	}
	w.info.LowLatency = true
	w.parts = append(w.parts, t)
}

// flush materializes the pending segment at a URI boundary.
func (w *segmentWalk) flush(uri string) {
	if w.carriedMap != nil {
		w.tags = append(w.tags, *w.carriedMap)
		w.computed.index(*w.carriedMap)
	}
	if w.computed.Extinf != nil {
		w.info.LastExtinfDuration = w.computed.Duration
		w.info.HasExtinfDuration = true
	}
	if w.computed.Gap != nil {
		w.info.GapCount++
	}
	w.segments = append(w.segments, Segment{
		URI:             uri,
		Tags:            w.tags,
		PartialSegments: w.parts,
		Computed:        w.computed,
	})
	w.info.Count++
	w.tags = nil
	w.parts = nil
	w.computed = newSegmentComputed()
}

// finish handles input ending mid-sequence of low-latency parts: the
// pending partial segments get a trailing URI-less segment of their own,
// with a computed view rebuilt from its final tag list.
func (w *segmentWalk) finish() ([]Segment, SegmentsComputed) {
	if len(w.parts) > 0 {
		tags := w.tags
		if w.carriedMap != nil {
			tags = append(tags, *w.carriedMap)
		}
		c := newSegmentComputed()
		for _, t := range tags {
			c.index(t)
		}
		w.segments = append(w.segments, Segment{
			Tags:            tags,
			PartialSegments: w.parts,
			Computed:        c,
		})
		w.info.Count++
	}
	return w.segments, w.info
}
