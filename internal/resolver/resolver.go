package resolver

import "context"

// Source holds direct media URLs for a single video. VideoURL and
// AudioURL are equal when the stream is a combined format.
type Source struct {
	VideoURL string
	AudioURL string
}

// Combined reports whether video and audio come from a single stream.
func (s Source) Combined() bool {
	return s.VideoURL == s.AudioURL
}

// PlaylistResolver resolves a playlist or single-item URL into an
// ordered list of page URLs. Possibly slow, possibly failing.
type PlaylistResolver interface {
	ResolvePlaylist(ctx context.Context, url string) ([]string, error)
}

// MediaLocator resolves one page URL and a format selector into
// fetchable source URLs.
type MediaLocator interface {
	LocateMedia(ctx context.Context, pageURL string, selector string) (Source, error)
}
