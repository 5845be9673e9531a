package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Binary      string // yt-dlp compatible binary
	CookiesFile string // optional, empty to disable
}

// YtDlp resolves playlists and locates media by shelling out to a
// yt-dlp compatible binary. It implements both PlaylistResolver and
// MediaLocator.
type YtDlp struct {
	logger zerolog.Logger
	config Config
}

func New(config Config) *YtDlp {
	logger := log.With().Str("module", "resolver").Logger()

	if config.Binary == "" {
		config.Binary = "yt-dlp"
	}

	if config.CookiesFile != "" {
		if _, err := os.Stat(config.CookiesFile); err != nil {
			logger.Warn().
				Str("cookies", config.CookiesFile).
				Msg("cookies file not found, continuing without it")

			config.CookiesFile = ""
		} else {
			logger.Info().Str("cookies", config.CookiesFile).Msg("using cookies file")
		}
	}

	return &YtDlp{
		logger: logger,
		config: config,
	}
}

func (y *YtDlp) commonArgs() []string {
	args := []string{
		"--quiet",
		"--no-warnings",
		"--ignore-errors",
	}

	if y.config.CookiesFile != "" {
		args = append(args, "--cookies", y.config.CookiesFile)
	}

	return args
}

func (y *YtDlp) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, y.config.Binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			y.logger.Warn().Str("stderr", msg).Msg("resolver command failed")
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

// ResolvePlaylist returns the page URLs contained in a playlist URL. A
// single-item URL resolves to a list of one.
func (y *YtDlp) ResolvePlaylist(ctx context.Context, url string) ([]string, error) {
	y.logger.Info().Str("url", url).Msg("resolving playlist")

	args := append(y.commonArgs(),
		"--flat-playlist",
		"--skip-download",
		"-J",
		url,
	)

	data, err := y.run(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve playlist: %w", err)
	}

	return parsePlaylist(data, url)
}

// parsePlaylist extracts page URLs from flat playlist json output.
func parsePlaylist(data []byte, url string) ([]string, error) {
	var info struct {
		Type    string `json:"_type"`
		Entries []struct {
			URL string `json:"url"`
		} `json:"entries"`
	}

	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("unable to parse playlist json: %w", err)
	}

	if info.Type != "playlist" {
		// not a playlist, treat the input as a single video
		return []string{url}, nil
	}

	entries := make([]string, 0, len(info.Entries))
	for _, entry := range info.Entries {
		if entry.URL == "" {
			continue
		}
		entries = append(entries, entry.URL)
	}

	return entries, nil
}

// LocateMedia returns direct source URLs for one page URL using the
// given format selector.
func (y *YtDlp) LocateMedia(ctx context.Context, pageURL string, selector string) (Source, error) {
	y.logger.Info().Str("url", pageURL).Msg("locating media")

	args := append(y.commonArgs(),
		"-f", selector,
		"--extractor-args", "youtube:player_client=android",
		"-g",
		pageURL,
	)

	data, err := y.run(ctx, args)
	if err != nil {
		return Source{}, fmt.Errorf("unable to locate media: %w", err)
	}

	return parseSource(string(data))
}

// parseSource interprets -g output: one line for combined streams, two
// lines for separate video and audio.
func parseSource(output string) (Source, error) {
	lines := []string{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	switch len(lines) {
	case 0:
		return Source{}, fmt.Errorf("no media urls returned")
	case 1:
		return Source{VideoURL: lines[0], AudioURL: lines[0]}, nil
	default:
		return Source{VideoURL: lines[0], AudioURL: lines[1]}, nil
	}
}
