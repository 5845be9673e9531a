package restream

import (
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-restream/restream/internal/api"
	"github.com/go-restream/restream/internal/config"
	"github.com/go-restream/restream/internal/http"
	"github.com/go-restream/restream/internal/player"
	"github.com/go-restream/restream/internal/quality"
	"github.com/go-restream/restream/internal/resolver"
	"github.com/go-restream/restream/internal/transcode"
)

var Service *Main

func init() {
	Service = &Main{
		ServerConfig: &config.Server{},
		StreamConfig: &config.Stream{},
	}
}

type Main struct {
	ServerConfig *config.Server
	StreamConfig *config.Stream

	logger     zerolog.Logger
	player     player.Manager
	apiManager *api.ApiManagerCtx
	server     *http.HttpManagerCtx
}

// ffmpegStarter binds a quality preset and the transcode supervisor
// behind the player.Starter interface.
type ffmpegStarter struct {
	supervisor *transcode.Supervisor
	preset     quality.Preset
}

func (s ffmpegStarter) CleanOutput() error {
	return s.supervisor.CleanOutputDir()
}

func (s ffmpegStarter) Launch(src resolver.Source) (player.Process, error) {
	proc, err := s.supervisor.Launch(src, s.preset.Resolution, s.preset.Bitrate)
	if err != nil {
		return nil, err
	}

	return proc, nil
}

func (main *Main) Preflight() {
	main.logger = log.With().Str("service", "main").Logger()
}

func (main *Main) Start() {
	stream := main.StreamConfig

	if stream.URL == "" {
		main.logger.Panic().Msg("no stream url configured")
	}

	if stream.PresetsFile != "" {
		if err := quality.LoadFile(stream.PresetsFile); err != nil {
			main.logger.Panic().Err(err).Msg("unable to load preset overrides")
		}
	}
	preset := quality.Lookup(stream.Quality)

	main.logger.Info().
		Str("quality", stream.Quality).
		Strs("available", quality.Keys()).
		Str("resolution", preset.Resolution).
		Msg("quality preset selected")

	ytdlp := resolver.New(resolver.Config{
		Binary:      stream.YtDlpBinary,
		CookiesFile: stream.CookiesFile,
	})

	supervisor := transcode.New(transcode.Config{
		FFmpegBinary: stream.FFmpegBinary,
		OutputDir:    stream.HLSDir,
	})

	main.player = player.New(player.Config{
		URL:      stream.URL,
		Selector: preset.Selector,
		Resolver: ytdlp,
		Locator:  ytdlp,
		Starter:  ffmpegStarter{supervisor, preset},
	})
	main.player.Start()

	main.apiManager = api.New(main.player)

	main.server = http.New(main.ServerConfig, stream.HLSDir)
	main.server.Mount(main.apiManager.Mount)
	main.server.Start()
}

func (main *Main) Shutdown() {
	main.player.Shutdown()

	if err := main.server.Shutdown(); err != nil {
		main.logger.Err(err).Msg("server shutdown with an error")
	} else {
		main.logger.Debug().Msg("server shutdown")
	}
}

func (main *Main) ServeCommand(cmd *cobra.Command, args []string) {
	main.logger.Info().Msg("starting restream server")
	main.Start()
	main.logger.Info().Msg("restream ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	sig := <-quit

	main.logger.Warn().Msgf("received %s, attempting graceful shutdown", sig)
	main.Shutdown()
	main.logger.Info().Msg("shutdown complete")
}
