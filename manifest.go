// Package manifest fetches HLS playlists over HTTP and hands them to the
// m3u8 parser, owning the byte-level preconditions the parser assumes:
// newline normalization, trimming, and transparent gzip decompression.
package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/klauspost/compress/gzip"

	"github.com/ottkit/go-manifest/m3u8"
)

// ErrPlaylistType is returned by FetchMedia and FetchMaster when the
// fetched document is the other kind.
var ErrPlaylistType = errors.New("manifest: playlist type mismatch")

var gzipMagic = []byte{0x1f, 0x8b}

// Normalize rewrites CRLF and lone CR line breaks to LF and trims
// surrounding whitespace. The parser depends on this; callers feeding
// m3u8.Parse directly should run their bytes through here first.
func Normalize(data []byte) []byte {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	return bytes.TrimSpace(data)
}

// Client fetches and parses playlist snapshots.
type Client struct {
	client *http.Client
}

// NewClient creates a client around the given http.Client, falling back
// to http.DefaultClient when nil.
func NewClient(client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{client: client}
}

// Fetch GETs the playlist at url, decompresses and normalizes it, and
// parses it with a fresh id sequence.
func (c *Client) Fetch(ctx context.Context, url string) (*m3u8.Playlist, error) {
	data, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	playlist, err := m3u8.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing playlist %q: %w", url, err)
	}
	return playlist, nil
}

// FetchMedia fetches a playlist that must be a media playlist.
func (c *Client) FetchMedia(ctx context.Context, url string) (*m3u8.Playlist, error) {
	playlist, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if playlist.Type != m3u8.TypeMedia {
		return nil, ErrPlaylistType
	}
	return playlist, nil
}

// FetchMaster fetches a playlist that must be a master playlist.
func (c *Client) FetchMaster(ctx context.Context, url string) (*m3u8.Playlist, error) {
	playlist, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if playlist.Type != m3u8.TypeMaster {
		return nil, ErrPlaylistType
	}
	return playlist, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building playlist request: %w", err)
	}
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getting playlist %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("getting playlist %q: status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading playlist response: %w", err)
	}

	if resp.Header.Get("Content-Encoding") == "gzip" || bytes.HasPrefix(data, gzipMagic) {
		if data, err = gunzip(data); err != nil {
			return nil, fmt.Errorf("decompressing playlist %q: %w", url, err)
		}
	}
	return Normalize(data), nil
}

func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
