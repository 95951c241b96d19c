package m3u8

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parsePlaylist(t *testing.T, str string) *Playlist {
	t.Helper()
	playlist, err := Parse([]byte(str))
	if err != nil {
		t.Fatalf("Error parsing playlist: %v", err)
	}
	return playlist
}

func TestMissingHeader(t *testing.T) {
	inputs := []string{
		"",
		"\n\n",
		"#EXT-X-VERSION:3\n#EXTM3U",
		"not a playlist",
	}
	for _, in := range inputs {
		_, err := Parse([]byte(in))
		assert.True(t, errors.Is(err, ErrMissingHeader), "input %q", in)
	}
}

func TestHeaderAfterBlankLines(t *testing.T) {
	playlist := parsePlaylist(t, `

		#EXTM3U
		#EXT-X-TARGETDURATION:6
	`)
	assert.Equal(t, TypeMedia, playlist.Type)
}

func TestMasterPlaylist(t *testing.T) {
	playlist := parsePlaylist(t, `
		#EXTM3U
		#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="English",URI="audio/en.m3u8"
		#EXT-X-STREAM-INF:BANDWIDTH=1280000,CODECS="mp4a.40.5,avc1.42801e",AUDIO="aac"
		http://example.com/low.m3u8
		#EXT-X-STREAM-INF:BANDWIDTH=2560000,AUDIO="aac"
		http://example.com/mid.m3u8
		#EXT-X-SESSION-DATA:DATA-ID="com.example.title",VALUE="Example"
	`)

	assert.Equal(t, TypeMaster, playlist.Type)
	assert.Nil(t, playlist.Segments)
	assert.Equal(t, 0, playlist.SegmentsInfo.Count)

	assert.Len(t, playlist.Computed.Media, 1)
	assert.Len(t, playlist.Computed.SessionData, 1)
	if assert.Len(t, playlist.Computed.Variants, 2) {
		uri, ok := playlist.Computed.Variants[0].Attr(AttrURI)
		assert.True(t, ok)
		assert.Equal(t, "http://example.com/low.m3u8", uri)
		uri, _ = playlist.Computed.Variants[1].Attr(AttrURI)
		assert.Equal(t, "http://example.com/mid.m3u8", uri)
	}
}

func TestStreamInfConsumesNextLine(t *testing.T) {
	// the line after EXT-X-STREAM-INF is its URI even when it looks
	// like a comment
	playlist := parsePlaylist(t, `
		#EXTM3U
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		#low/index.m3u8
	`)
	uri, _ := playlist.Computed.Variants[0].Attr(AttrURI)
	assert.Equal(t, "#low/index.m3u8", uri)
}

func TestInvalidHierarchy(t *testing.T) {
	_, err := Parse([]byte(`
		#EXTM3U
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		http://example.com/low.m3u8
		#EXTINF:5
		segment.ts
	`))
	assert.True(t, errors.Is(err, ErrInvalidHierarchy))
}

func TestMalformedDirectiveAborts(t *testing.T) {
	_, err := Parse([]byte(`
		#EXTM3U
		#EXT-X-TARGETDURATION:6
		#EXT-X-KEY=METHOD
	`))
	var malformed *MalformedDirectiveError
	if assert.True(t, errors.As(err, &malformed)) {
		assert.Equal(t, "#EXT-X-KEY=METHOD", malformed.Line)
	}
}

func TestSegmentCounting(t *testing.T) {
	playlist := parsePlaylist(t, "#EXTM3U\n#EXT-X-TARGETDURATION:6\n#EXTINF:5\nuri\n#EXTINF:4\nuri2\n")

	assert.Equal(t, TypeMedia, playlist.Type)
	if assert.Len(t, playlist.Segments, 2) {
		assert.Equal(t, "uri", playlist.Segments[0].URI)
		assert.Equal(t, 5.0, playlist.Segments[0].Computed.Duration)
		assert.Equal(t, "uri2", playlist.Segments[1].URI)
		assert.Equal(t, 4.0, playlist.Segments[1].Computed.Duration)
	}
	assert.Equal(t, 2, playlist.SegmentsInfo.Count)
	assert.True(t, playlist.SegmentsInfo.HasExtinfDuration)
	assert.Equal(t, 4.0, playlist.SegmentsInfo.LastExtinfDuration)
}

func TestMediaWithoutSegments(t *testing.T) {
	playlist := parsePlaylist(t, `
		#EXTM3U
		#EXT-X-TARGETDURATION:6
		#EXT-X-PLAYLIST-TYPE:VOD
	`)
	assert.Equal(t, TypeMedia, playlist.Type)
	assert.NotNil(t, playlist.Segments)
	assert.Empty(t, playlist.Segments)
	assert.Equal(t, SegmentsComputed{}, playlist.SegmentsInfo)
}

func TestTypeDetectionSticky(t *testing.T) {
	// master evidence first, media-only tags afterwards do not flip it
	playlist := parsePlaylist(t, `
		#EXTM3U
		#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="English"
		#EXT-X-TARGETDURATION:6
	`)
	assert.Equal(t, TypeMaster, playlist.Type)
}

func TestPlaylistComputedSlots(t *testing.T) {
	playlist := parsePlaylist(t, `
		#EXTM3U
		#EXT-X-MEDIA-SEQUENCE:100
		#EXT-X-SKIP:SKIPPED-SEGMENTS=12
		#EXT-X-PLAYLIST-TYPE:EVENT
		#EXT-X-PLAYLIST-TYPE:VOD
		#EXT-X-SERVER-CONTROL:CAN-SKIP-UNTIL=36.0,PART-HOLD-BACK=1.002
		#EXT-X-PART-INF:PART-TARGET=0.5
		#EXT-X-TARGETDURATION:6
		#EXT-X-DEFINE:NAME="base",VALUE="https://example.com"
		#EXT-X-DEFINE:NAME="token",VALUE="abc"
		#EXT-X-ENDLIST
	`)

	c := playlist.Computed
	assert.EqualValues(t, 100, c.MediaSequence)
	assert.EqualValues(t, 12, c.SkippedSegments)
	assert.EqualValues(t, -1, c.DiscontinuitySequence)

	// first occurrence wins on single slots
	if assert.NotNil(t, c.PlaylistType) {
		assert.Equal(t, "EVENT", c.PlaylistType.Value)
	}
	assert.NotNil(t, c.Skip)
	assert.NotNil(t, c.ServerControl)
	assert.NotNil(t, c.PartInf)
	assert.NotNil(t, c.TargetDuration)
	assert.NotNil(t, c.EndList)
	assert.Nil(t, c.Start)
	assert.Len(t, c.Define, 2)
}

func TestDiscontinuitySequenceZeroVsAbsent(t *testing.T) {
	with := parsePlaylist(t, "#EXTM3U\n#EXT-X-DISCONTINUITY-SEQUENCE:0\n")
	without := parsePlaylist(t, "#EXTM3U\n#EXT-X-TARGETDURATION:6\n")
	assert.EqualValues(t, 0, with.Computed.DiscontinuitySequence)
	assert.EqualValues(t, -1, without.Computed.DiscontinuitySequence)
}

func TestUnknownTagsRetained(t *testing.T) {
	playlist := parsePlaylist(t, `
		#EXTM3U
		#EXT-X-VENDOR-EXTENSION:FOO="bar"
		#EXT-X-TARGETDURATION:6
	`)
	if assert.Len(t, playlist.Tags, 2) {
		assert.Equal(t, "EXT-X-VENDOR-EXTENSION", playlist.Tags[0].Name)
	}
}

func TestParserReuseContinuesIDs(t *testing.T) {
	input := []byte("#EXTM3U\n#EXT-X-TARGETDURATION:6\n#EXTINF:5\nuri\n")

	p := NewParser()
	first, err := p.Parse(input)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := p.Parse(input)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}

	// fresh parser starts at 0; reuse continues where the first call
	// stopped
	assert.Equal(t, 0, first.Tags[0].ID)
	assert.Equal(t, 2, second.Tags[0].ID)

	// structure is identical either way
	assert.Equal(t, first.Type, second.Type)
	assert.Len(t, second.Segments, len(first.Segments))
	assert.Equal(t, first.SegmentsInfo, second.SegmentsInfo)
}

func TestSynthesizedTagIDsIncrease(t *testing.T) {
	playlist := parsePlaylist(t, `
		#EXTM3U
		#EXT-X-STREAM-INF:BANDWIDTH=1280000
		low.m3u8
		#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="English"
	`)
	// the variant is rebuilt with its URI under a fresh id, so the ids
	// seen in the tag list are 1 then 2 (0 went to the pre-rebuild tag)
	assert.Equal(t, 1, playlist.Tags[0].ID)
	assert.Equal(t, 2, playlist.Tags[1].ID)
}
