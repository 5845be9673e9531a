package transcode

import (
	"context"
	"os"
	"os/exec"
	"path"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-restream/restream/internal/resolver"
	"github.com/go-restream/restream/internal/utils"
)

// how long ffmpeg has to produce the manifest and first chunk
const startupTimeout = 20 * time.Second

// how often startup and liveness are probed
const probeInterval = 500 * time.Millisecond

// grace period between SIGTERM and killing the process group
const terminateGrace = 5 * time.Second

type Config struct {
	FFmpegBinary string
	OutputDir    string
}

// Supervisor launches and supervises the external transcode process
// for exactly one video at a time.
type Supervisor struct {
	logger zerolog.Logger
	config Config
}

func New(config Config) *Supervisor {
	if config.FFmpegBinary == "" {
		config.FFmpegBinary = "ffmpeg"
	}

	return &Supervisor{
		logger: log.With().Str("module", "transcode").Logger(),
		config: config,
	}
}

// CleanOutputDir removes all manifest and chunk files from the output
// directory. Must run before every launch so a new stream cannot serve
// stale chunks referenced by an old manifest.
func (s *Supervisor) CleanOutputDir() error {
	entries, err := os.ReadDir(s.config.OutputDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".m3u8") && !strings.HasSuffix(name, ".ts") {
			continue
		}

		if err := os.Remove(path.Join(s.config.OutputDir, name)); err != nil {
			s.logger.Warn().Err(err).Str("file", name).Msg("unable to remove stale file")
		}
	}

	return nil
}

// Launch starts the transcode process for one video. The returned
// Process is live until its Done channel closes.
func (s *Supervisor) Launch(src resolver.Source, resolution string, bitrate string) (*Process, error) {
	logger := s.logger.With().Str("submodule", "ffmpeg").Logger()

	logger.Info().
		Str("resolution", resolution).
		Str("bitrate", bitrate).
		Bool("combined", src.Combined()).
		Msg("starting transcode")

	cmd := FFmpegCmd(s.config.FFmpegBinary, src, resolution, bitrate, s.config.OutputDir)
	cmd.Stderr = utils.LogWriter(logger)
	cmd.SysProcAttr = processGroupAttr()

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p := &Process{
		logger:       logger,
		cmd:          cmd,
		manifestPath: path.Join(s.config.OutputDir, ManifestName),
		chunkPath:    path.Join(s.config.OutputDir, FirstChunkName),
		done:         make(chan struct{}),
	}

	// reap the process and observe its exit status
	go func() {
		err := cmd.Wait()
		if err != nil {
			if exiterr, ok := err.(*exec.ExitError); ok {
				if status, ok := exiterr.Sys().(syscall.WaitStatus); ok {
					logger.Warn().Int("exit-status", status.ExitStatus()).Msg("transcode exited with an exit code != 0")
				}
			} else {
				logger.Err(err).Msg("transcode exited with an error")
			}
		} else {
			logger.Info().Msg("transcode successfully exited")
		}

		close(p.done)
	}()

	return p, nil
}

// Process is a handle for one running transcode.
type Process struct {
	logger       zerolog.Logger
	cmd          *exec.Cmd
	manifestPath string
	chunkPath    string
	done         chan struct{}

	termMu     sync.Mutex
	terminated bool
}

// Done closes when the process has exited, for whatever reason.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Exited reports whether the process has already exited.
func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// WaitStartup polls until the manifest and the first chunk both exist
// and are non-empty. Returns false if the timeout elapses, the context
// is cancelled or the process exits first.
func (p *Process) WaitStartup(ctx context.Context) bool {
	deadline := time.Now().Add(startupTimeout)

	var manifestReady, chunkReady bool
	for time.Now().Before(deadline) {
		if !manifestReady && fileNonEmpty(p.manifestPath) {
			p.logger.Debug().Str("file", p.manifestPath).Msg("manifest found")
			manifestReady = true
		}

		if !chunkReady && fileNonEmpty(p.chunkPath) {
			p.logger.Debug().Str("file", p.chunkPath).Msg("first chunk found")
			chunkReady = true
		}

		if manifestReady && chunkReady {
			p.logger.Info().Msg("stream files found, transcode is live")
			return true
		}

		select {
		case <-p.done:
			p.logger.Warn().Msg("transcode exited while waiting for stream files")
			return false
		case <-ctx.Done():
			return false
		case <-time.After(probeInterval):
		}
	}

	p.logger.Warn().
		Bool("manifest", manifestReady).
		Bool("first-chunk", chunkReady).
		Msg("timed out waiting for stream files")
	return false
}

// Terminate requests graceful termination and waits for exit. It is
// idempotent: terminating an already-exited or already-terminated
// process is a no-op.
func (p *Process) Terminate() {
	p.termMu.Lock()
	defer p.termMu.Unlock()

	if p.terminated {
		return
	}
	p.terminated = true

	if p.Exited() {
		return
	}

	p.logger.Debug().Msg("terminating transcode")
	p.signalTerm()

	select {
	case <-p.done:
	case <-time.After(terminateGrace):
		p.logger.Warn().Msg("transcode did not exit in time, killing process group")
		p.kill()
		<-p.done
	}
}

func fileNonEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}
