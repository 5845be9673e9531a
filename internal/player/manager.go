package player

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-restream/restream/internal/resolver"
)

// how long to wait before retrying an empty or unreachable playlist
const defaultPlaylistBackoff = 60 * time.Second

// how long to back off after an unexpected cycle failure
const defaultErrorBackoff = 10 * time.Second

// pause between cycles, throttles rapid failure loops
const defaultCycleDelay = 3 * time.Second

// how often the live transcode and the command queue are polled
const defaultPollInterval = 500 * time.Millisecond

// bounded wait for the worker to exit on shutdown
const shutdownTimeout = 5 * time.Second

type Config struct {
	// top-level playlist or single video URL
	URL string
	// format selection expression passed to the media locator
	Selector string

	Resolver resolver.PlaylistResolver
	Locator  resolver.MediaLocator
	Starter  Starter

	// zero values fall back to the defaults above
	PlaylistBackoff time.Duration
	ErrorBackoff    time.Duration
	CycleDelay      time.Duration
	PollInterval    time.Duration
}

// ManagerCtx is the playback supervisor. A single worker goroutine
// owns the playlist and index; external callers only enqueue commands
// or read the atomic status snapshot, so no lock guards playback state.
type ManagerCtx struct {
	logger zerolog.Logger
	config Config

	queue    *commandQueue
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once

	// owned exclusively by the worker goroutine
	playlist []string
	index    int
	proc     Process

	// status snapshot, safe for concurrent readers
	ready atomic.Bool
	video atomic.Int64
	total atomic.Int64
}

var _ Manager = (*ManagerCtx)(nil)

func New(config Config) *ManagerCtx {
	if config.PlaylistBackoff == 0 {
		config.PlaylistBackoff = defaultPlaylistBackoff
	}
	if config.ErrorBackoff == 0 {
		config.ErrorBackoff = defaultErrorBackoff
	}
	if config.CycleDelay == 0 {
		config.CycleDelay = defaultCycleDelay
	}
	if config.PollInterval == 0 {
		config.PollInterval = defaultPollInterval
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &ManagerCtx{
		logger: log.With().Str("module", "player").Logger(),
		config: config,

		queue:  newCommandQueue(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),

		index: -1,
	}
}

// Start launches the worker goroutine. It runs until Shutdown.
func (m *ManagerCtx) Start() {
	m.logger.Info().Str("url", m.config.URL).Msg("starting playback worker")
	go m.worker()
}

// Shutdown stops the worker and terminates any active transcode. Safe
// to call concurrently and more than once; waits a bounded time for
// the worker to exit.
func (m *ManagerCtx) Shutdown() {
	m.stopOnce.Do(func() {
		m.logger.Info().Msg("shutting down playback worker")

		m.queue.push(Command{Kind: CommandStop})
		m.cancel()
	})

	select {
	case <-m.done:
		m.logger.Info().Msg("playback worker shut down gracefully")
	case <-time.After(shutdownTimeout):
		m.logger.Warn().Msg("playback worker did not exit in time")
	}
}

// Next skips to the next video.
func (m *ManagerCtx) Next() {
	m.logger.Debug().Msg("received next command")
	m.queue.push(Command{Kind: CommandNext})
}

// Prev skips to the previous video.
func (m *ManagerCtx) Prev() {
	m.logger.Debug().Msg("received prev command")
	m.queue.push(Command{Kind: CommandPrev})
}

// Skip jumps to a specific 1-based video number. Values below 1 must
// be rejected by the caller before they get here.
func (m *ManagerCtx) Skip(video int) {
	m.logger.Debug().Int("video", video).Msg("received skip command")
	m.queue.push(Command{Kind: CommandSkip, Video: video})
}

// Status returns a snapshot of playback state without touching the
// worker.
func (m *ManagerCtx) Status() Status {
	status := "loading"
	if m.ready.Load() {
		status = "ready"
	}

	return Status{
		Status: status,
		Video:  int(m.video.Load()),
		Total:  int(m.total.Load()),
	}
}

func (m *ManagerCtx) worker() {
	defer close(m.done)

	// force ready on exit so status readers are not stuck on loading
	defer m.ready.Store(true)

	m.logger.Debug().Msg("worker loop started")

	for {
		if stop := m.cycle(); stop {
			break
		}

		if m.ctx.Err() != nil {
			break
		}
	}

	m.logger.Debug().Msg("worker loop finished")
}

// cycle runs one pass of the playback loop: drain one command, ensure
// the playlist, resolve media, drive the transcode and decide the next
// index. Returns true when the worker should exit.
func (m *ManagerCtx) cycle() (stop bool) {
	// the worker must survive any transient fault, only an explicit
	// stop ends it
	defer func() {
		if recovered := recover(); recovered != nil {
			m.logger.Error().Interface("error", recovered).Msg("recovered from cycle failure")

			if m.proc != nil {
				m.proc.Terminate()
				m.proc = nil
				m.ready.Store(false)
			}

			m.sleep(m.config.ErrorBackoff)
		}
	}()

	// drain at most one pending command
	outcome := outcomeNatural
	if cmd, ok := m.queue.pop(); ok {
		if cmd.Kind == CommandStop {
			return true
		}

		m.index = applyCommand(m.index, cmd)
		outcome = outcomeCommand

		m.logger.Info().
			Str("command", cmd.Kind.String()).
			Int("index", m.index).
			Msg("processing command")
	}

	// (re-)resolve the playlist when empty
	if len(m.playlist) == 0 {
		playlist, err := m.config.Resolver.ResolvePlaylist(m.ctx, m.config.URL)
		if err != nil || len(playlist) == 0 {
			m.logger.Warn().Err(err).Msg("playlist empty, retrying after backoff")
			m.sleep(m.config.PlaylistBackoff)
			return false
		}

		m.playlist = playlist
		m.total.Store(int64(len(playlist)))

		// only jump to the first video on the initial load
		if m.index == -1 {
			m.logger.Info().Int("total", len(playlist)).Msg("playlist resolved, starting at first video")
			m.index = 0
		}
	}

	m.index = normalizeIndex(m.index, len(m.playlist))
	m.video.Store(int64(m.index + 1))

	pageURL := m.playlist[m.index]
	m.logger.Info().
		Int("video", m.index+1).
		Int("total", len(m.playlist)).
		Str("url", pageURL).
		Msg("starting video")

	src, err := m.config.Locator.LocateMedia(m.ctx, pageURL, m.config.Selector)
	if err != nil {
		m.logger.Warn().Err(err).Str("url", pageURL).Msg("unable to locate media, skipping video")
		m.index++
		m.endCycle(outcomeSkipped)
		return false
	}

	// old manifest and chunks must never outlive a new stream
	if err := m.config.Starter.CleanOutput(); err != nil {
		m.logger.Warn().Err(err).Msg("unable to clean output directory")
	}

	m.ready.Store(false)

	proc, err := m.config.Starter.Launch(src)
	if err != nil {
		m.logger.Warn().Err(err).Msg("transcode could not be started, skipping video")
		m.index++
		m.endCycle(outcomeSkipped)
		return false
	}
	m.proc = proc

	if !proc.WaitStartup(m.ctx) {
		m.logger.Warn().Msg("transcode failed to start, skipping video")
		proc.Terminate()
		m.proc = nil
		m.index++
		m.endCycle(outcomeSkipped)
		return false
	}

	m.ready.Store(true)
	m.logger.Info().Msg("stream is live, monitoring transcode")

	// wait for natural end, stop or a new command; a pending command
	// stays queued and is drained at the top of the next cycle
monitor:
	for {
		select {
		case <-proc.Done():
			m.logger.Info().Msg("video finished")
			break monitor
		case <-m.ctx.Done():
			proc.Terminate()
			break monitor
		case <-time.After(m.config.PollInterval):
			if !m.queue.empty() {
				m.logger.Info().Msg("command received, terminating current stream")
				proc.Terminate()
				break monitor
			}
		}
	}

	m.endCycle(outcome)
	return false
}

// endCycle consumes the cycle outcome: releases the process handle,
// clears readiness and advances the index only when the stream ended
// naturally with nothing queued and no stop pending.
func (m *ManagerCtx) endCycle(outcome cycleOutcome) {
	m.proc = nil
	m.ready.Store(false)

	if outcome == outcomeNatural && m.queue.empty() && m.ctx.Err() == nil {
		m.logger.Debug().Msg("video finished naturally, advancing to next")
		m.index++
	}

	// skip the pause when a command is already waiting
	if m.queue.empty() {
		m.sleep(m.config.CycleDelay)
	}
}

// sleep waits for the given duration, cut short by shutdown.
func (m *ManagerCtx) sleep(duration time.Duration) {
	select {
	case <-m.ctx.Done():
	case <-time.After(duration):
	}
}
