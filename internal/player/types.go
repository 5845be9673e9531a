package player

import (
	"context"

	"github.com/go-restream/restream/internal/resolver"
)

// Starter abstracts the transcode process supervisor so the worker
// loop can be driven against fakes.
type Starter interface {
	// CleanOutput removes stale manifest and chunk files.
	CleanOutput() error
	// Launch starts the transcode process for one video.
	Launch(src resolver.Source) (Process, error)
}

// Process is a handle for one live transcode process.
type Process interface {
	// WaitStartup blocks until initial output exists, the startup
	// window elapses or the process exits early.
	WaitStartup(ctx context.Context) bool
	// Terminate requests termination and waits for exit; idempotent.
	Terminate()
	// Done closes when the process has exited.
	Done() <-chan struct{}
}

// Status is the read-only projection of playback state.
type Status struct {
	Status string `json:"status"` // "ready" or "loading"
	Video  int    `json:"video"`  // 1-based current video, 0 if none
	Total  int    `json:"total"`  // playlist length
}

// Manager is the public surface of the playback supervisor.
type Manager interface {
	Start()
	Shutdown()

	Next()
	Prev()
	Skip(video int)
	Status() Status
}
