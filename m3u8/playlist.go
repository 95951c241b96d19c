package m3u8

// Playlist kinds.
const (
	TypeMaster = iota
	TypeMedia
)

// Playlist is the immutable result of one parse call.
type Playlist struct {
	// Type is TypeMaster or TypeMedia. Detection is sticky: the first
	// tag that implies a kind decides it for the whole document.
	Type int

	// Tags holds every playlist-scoped tag in encounter order,
	// including tags that interleave with segments in a live playlist.
	Tags []Tag

	// Segments is non-nil exactly when Type is TypeMedia.
	Segments []Segment

	Computed     PlaylistComputed
	SegmentsInfo SegmentsComputed
}

// PlaylistComputed indexes the distinguished playlist-level tags so
// callers never rescan the tag list. Single-valued slots keep the first
// occurrence; lists keep every occurrence in order; numeric fields fall
// back to a defined default when the tag is absent or not numeric.
type PlaylistComputed struct {
	MediaSequence         int64
	SkippedSegments       int64
	DiscontinuitySequence int64 // -1 distinguishes "absent" from 0

	Skip           *Tag
	EndList        *Tag
	ServerControl  *Tag
	PlaylistType   *Tag
	Start          *Tag
	PartInf        *Tag
	TargetDuration *Tag

	Define          []Tag
	DateRanges      []Tag
	Media           []Tag
	Variants        []Tag
	ImageVariants   []Tag
	IFrameVariants  []Tag
	SessionKeys     []Tag
	SessionData     []Tag
	ContentSteering []Tag
}

func newPlaylistComputed() PlaylistComputed {
	return PlaylistComputed{DiscontinuitySequence: -1}
}

// index folds one playlist-scoped tag into the computed view. Unlisted
// names stay in Playlist.Tags only.
func (c *PlaylistComputed) index(t Tag) {
	switch t.Name {
	case TagMediaSequence:
		c.MediaSequence = t.ValueInt(0)
	case TagDiscontinuitySequence:
		c.DiscontinuitySequence = t.ValueInt(-1)
	case TagSkip:
		if c.Skip == nil {
			c.Skip = ref(t)
			c.SkippedSegments = t.AttrInt(AttrSkippedSegments, 0)
		}
	case TagEndList:
		slot(&c.EndList, t)
	case TagServerControl:
		slot(&c.ServerControl, t)
	case TagPlaylistType:
		slot(&c.PlaylistType, t)
	case TagStart:
		slot(&c.Start, t)
	case TagPartInf:
		slot(&c.PartInf, t)
	case TagTargetDuration:
		slot(&c.TargetDuration, t)
	case TagDefine:
		c.Define = append(c.Define, t)
	case TagDateRange:
		c.DateRanges = append(c.DateRanges, t)
	case TagMedia:
		c.Media = append(c.Media, t)
	case TagStreamInf:
		c.Variants = append(c.Variants, t)
	case TagImageStreamInf:
		c.ImageVariants = append(c.ImageVariants, t)
	case TagIFrameStreamInf:
		c.IFrameVariants = append(c.IFrameVariants, t)
	case TagSessionKey:
		c.SessionKeys = append(c.SessionKeys, t)
	case TagSessionData:
		c.SessionData = append(c.SessionData, t)
	case TagContentSteering:
		c.ContentSteering = append(c.ContentSteering, t)
	}
}

// SegmentsComputed aggregates over the whole segment walk.
type SegmentsComputed struct {
	// Count is the number of segments emitted, including a trailing
	// URI-less segment holding dangling partial segments.
	Count int

	// GapCount counts full segments carrying a gap marker plus partial
	// segments flagged GAP=YES.
	GapCount int

	// LastExtinfDuration is the duration of the last segment that had
	// one; HasExtinfDuration distinguishes "never seen" from zero.
	LastExtinfDuration float64
	HasExtinfDuration  bool

	// LowLatency is set when the walk saw at least one partial-segment
	// tag (EXT-X-PART or a PART-typed preload hint).
	LowLatency bool
}

func ref(t Tag) *Tag {
	return &t
}

func slot(dst **Tag, t Tag) {
	if *dst == nil {
		*dst = ref(t)
	}
}
