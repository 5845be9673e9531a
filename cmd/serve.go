package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/go-restream/restream"
	"github.com/go-restream/restream/internal/config"
)

func init() {
	command := &cobra.Command{
		Use:   "serve",
		Short: "serve restream server",
		Long:  `serve restream server`,
		Run:   restream.Service.ServeCommand,
	}

	configs := []config.Config{
		restream.Service.ServerConfig,
		restream.Service.StreamConfig,
	}

	cobra.OnInitialize(func() {
		for _, cfg := range configs {
			cfg.Set()
		}
		restream.Service.Preflight()
	})

	for _, cfg := range configs {
		if err := cfg.Init(command); err != nil {
			log.Panic().Err(err).Msg("unable to run serve command")
		}
	}

	rootCmd.AddCommand(command)
}
