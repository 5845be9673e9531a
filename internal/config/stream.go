package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Stream struct {
	URL     string
	Quality string

	HLSDir      string
	CookiesFile string
	PresetsFile string

	FFmpegBinary string
	YtDlpBinary  string
}

func (Stream) Init(cmd *cobra.Command) error {
	cmd.PersistentFlags().String("url", "", "playlist or single video URL to restream")
	if err := viper.BindPFlag("url", cmd.PersistentFlags().Lookup("url")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("quality", "720p", "quality preset for the output stream")
	if err := viper.BindPFlag("quality", cmd.PersistentFlags().Lookup("quality")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("hls-dir", "", "directory for the live manifest and chunk files")
	if err := viper.BindPFlag("hls-dir", cmd.PersistentFlags().Lookup("hls-dir")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("cookies", "", "cookies file passed to the media locator")
	if err := viper.BindPFlag("cookies", cmd.PersistentFlags().Lookup("cookies")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("presets", "", "yaml file with quality preset overrides")
	if err := viper.BindPFlag("presets", cmd.PersistentFlags().Lookup("presets")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("ffmpeg-binary", "ffmpeg", "path to ffmpeg binary")
	if err := viper.BindPFlag("ffmpeg-binary", cmd.PersistentFlags().Lookup("ffmpeg-binary")); err != nil {
		return err
	}

	cmd.PersistentFlags().String("ytdlp-binary", "yt-dlp", "path to yt-dlp compatible binary")
	if err := viper.BindPFlag("ytdlp-binary", cmd.PersistentFlags().Lookup("ytdlp-binary")); err != nil {
		return err
	}

	return nil
}

func (s *Stream) Set() {
	s.URL = viper.GetString("url")
	s.Quality = viper.GetString("quality")
	s.CookiesFile = viper.GetString("cookies")
	s.PresetsFile = viper.GetString("presets")

	s.FFmpegBinary = viper.GetString("ffmpeg-binary")
	if s.FFmpegBinary == "" {
		s.FFmpegBinary = "ffmpeg"
	}

	s.YtDlpBinary = viper.GetString("ytdlp-binary")
	if s.YtDlpBinary == "" {
		s.YtDlpBinary = "yt-dlp"
	}

	s.HLSDir = viper.GetString("hls-dir")
	if s.HLSDir == "" {
		cwd, _ := os.Getwd()
		s.HLSDir = filepath.Join(cwd, "hls")
	}

	if err := os.MkdirAll(s.HLSDir, 0755); err != nil {
		panic(err)
	}
}
