// Package m3u8 parses HLS playlists into a queryable document model in a
// single linear pass.
//
// Tag and attribute definitions follow RFC 8216 and the rfc8216bis drafts,
// which add the low-latency tags (EXT-X-PART, EXT-X-PART-INF,
// EXT-X-PRELOAD-HINT, EXT-X-SERVER-CONTROL, EXT-X-SKIP).
//
// The parser is built for clients that re-fetch live playlists over and
// over: one call, one snapshot, one immutable *Playlist. While walking the
// lines it maintains computed views (PlaylistComputed, SegmentComputed,
// SegmentsComputed) so the distinguished tags are reachable in constant
// time without rescanning tag lists. Unknown tags are kept verbatim in the
// relevant tag list and otherwise ignored.
//
// Structural problems are terminal: a missing #EXTM3U header, a segment
// tag inside a master playlist, or a directive line that does not match
// the tag grammar reject the whole document. Malformed numbers inside
// otherwise well-formed tags do not; they fall back to defined defaults
// (0, or -1 for EXT-X-DISCONTINUITY-SEQUENCE).
package m3u8
