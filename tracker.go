package manifest

import (
	"context"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/ottkit/go-manifest/m3u8"
)

// Tracker follows live playlists across refreshes. It keeps one
// m3u8.Parser per URL so tag ids stay unique within a tracked rendition
// instead of restarting at 0 on every refresh.
type Tracker struct {
	client *Client

	mu      sync.Mutex
	parsers map[string]*m3u8.Parser
}

// NewTracker creates a tracker that fetches through the given client.
func NewTracker(client *Client) *Tracker {
	return &Tracker{
		client:  client,
		parsers: make(map[string]*m3u8.Parser),
	}
}

// Refresh fetches and re-parses the playlist at url, continuing that
// URL's tag-id sequence.
func (t *Tracker) Refresh(ctx context.Context, url string) (*m3u8.Playlist, error) {
	data, err := t.client.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.parsers[url]
	if !ok {
		p = m3u8.NewParser()
		t.parsers[url] = p
	}
	return p.Parse(data)
}

// Forget drops the parser state for url.
func (t *Tracker) Forget(url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.parsers, url)
}

// Fingerprint hashes the rendition set of a master playlist: every media,
// variant, image and I-frame tag contributes its grouping key (Tag.Key,
// which drops per-stream identifiers such as URI and GROUP-ID). Two
// refreshes with the same fingerprint offer interchangeable rendition
// sets, so a client need not re-run stream selection.
func Fingerprint(playlist *m3u8.Playlist) uint64 {
	d := xxhash.New()
	hashTags(d, playlist.Computed.Media)
	hashTags(d, playlist.Computed.Variants)
	hashTags(d, playlist.Computed.ImageVariants)
	hashTags(d, playlist.Computed.IFrameVariants)
	return d.Sum64()
}

func hashTags(d *xxhash.Digest, tags []m3u8.Tag) {
	for _, t := range tags {
		io.WriteString(d, t.Key())
		d.Write([]byte{'\n'})
	}
}
