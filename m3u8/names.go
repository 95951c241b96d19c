package m3u8

// Tag names from RFC 8216 and the rfc8216bis drafts (low-latency HLS).
// Names are stored without the leading "#".
const (
	TagHeader = "EXTM3U"

	// Media playlist tags, Section 4.4.3
	TagTargetDuration        = "EXT-X-TARGETDURATION"
	TagMediaSequence         = "EXT-X-MEDIA-SEQUENCE"
	TagDiscontinuitySequence = "EXT-X-DISCONTINUITY-SEQUENCE"
	TagEndList               = "EXT-X-ENDLIST"
	TagPlaylistType          = "EXT-X-PLAYLIST-TYPE"
	TagIFramesOnly           = "EXT-X-I-FRAMES-ONLY"
	TagServerControl         = "EXT-X-SERVER-CONTROL"
	TagSkip                  = "EXT-X-SKIP"
	TagPartInf               = "EXT-X-PART-INF"

	// Media segment tags, Section 4.4.4
	TagExtinf          = "EXTINF"
	TagByteRange       = "EXT-X-BYTERANGE"
	TagDiscontinuity   = "EXT-X-DISCONTINUITY"
	TagKey             = "EXT-X-KEY"
	TagMap             = "EXT-X-MAP"
	TagProgramDateTime = "EXT-X-PROGRAM-DATE-TIME"
	TagGap             = "EXT-X-GAP"
	TagBitrate         = "EXT-X-BITRATE"
	TagPart            = "EXT-X-PART"
	TagTiles           = "EXT-X-TILES"

	// Metadata tags, Section 4.4.5
	TagDateRange   = "EXT-X-DATERANGE"
	TagPreloadHint = "EXT-X-PRELOAD-HINT"

	// Multivariant (master) playlist tags, Section 4.4.6
	TagMedia           = "EXT-X-MEDIA"
	TagStreamInf       = "EXT-X-STREAM-INF"
	TagIFrameStreamInf = "EXT-X-I-FRAME-STREAM-INF"
	TagImageStreamInf  = "EXT-X-IMAGE-STREAM-INF"
	TagSessionData     = "EXT-X-SESSION-DATA"
	TagSessionKey      = "EXT-X-SESSION-KEY"
	TagContentSteering = "EXT-X-CONTENT-STEERING"
	TagDefine          = "EXT-X-DEFINE"

	// Tags usable in either playlist kind, Section 4.4.2
	TagVersion             = "EXT-X-VERSION"
	TagIndependentSegments = "EXT-X-INDEPENDENT-SEGMENTS"
	TagStart               = "EXT-X-START"
)

// Attribute names the parser itself inspects.
const (
	AttrURI             = "URI"
	AttrType            = "TYPE"
	AttrGap             = "GAP"
	AttrSkippedSegments = "SKIPPED-SEGMENTS"
)

// EXT-X-PRELOAD-HINT TYPE values.
const (
	HintPart = "PART"
	HintMap  = "MAP"
)

// mediaOnly holds the tags that may only appear in a media playlist.
// Seeing one of them is enough to classify the document as media.
var mediaOnly = map[string]bool{
	TagTargetDuration:        true,
	TagMediaSequence:         true,
	TagDiscontinuitySequence: true,
	TagPlaylistType:          true,
	TagIFramesOnly:           true,
	TagEndList:               true,
	TagServerControl:         true,
	TagSkip:                  true,
	TagPartInf:               true,
	TagDateRange:             true,
}

// segmentOnly holds the tags that describe a single media segment. The
// first one encountered moves the parse into segment accumulation.
// EXT-X-DATERANGE is deliberately in both tables: it can open either a
// playlist-level or a segment-level context, and the playlist-level
// reading wins (see Parser.Parse).
var segmentOnly = map[string]bool{
	TagExtinf:          true,
	TagByteRange:       true,
	TagDiscontinuity:   true,
	TagProgramDateTime: true,
	TagKey:             true,
	TagDateRange:       true,
	TagMap:             true,
	TagGap:             true,
	TagTiles:           true,
}

// groupingAttrs are the rendition and variant identity attributes omitted
// from Tag.Key, so that tags describing interchangeable streams compare
// equal.
var groupingAttrs = map[string]bool{
	"URI":             true,
	"GROUP-ID":        true,
	"NAME":            true,
	"LANGUAGE":        true,
	"AUDIO":           true,
	"VIDEO":           true,
	"SUBTITLES":       true,
	"CLOSED-CAPTIONS": true,
}
