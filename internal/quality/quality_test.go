package quality

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKnownKeys(t *testing.T) {
	tests := []struct {
		key        string
		resolution string
		bitrate    string
	}{
		{"1080p", "1920x1080", "4000k"},
		{"720p", "1280x720", "2500k"},
		{"480p", "854x480", "1000k"},
		{"360p", "640x360", "700k"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			preset := Lookup(tt.key)
			require.Equal(t, tt.resolution, preset.Resolution)
			require.Equal(t, tt.bitrate, preset.Bitrate)
			require.NotEmpty(t, preset.Selector)
		})
	}
}

func TestLookupUnknownFallsBack(t *testing.T) {
	preset := Lookup("9999p")
	require.Equal(t, presets[DefaultKey], preset)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")

	content := []byte(`
240p:
  selector: "bestvideo[height<=240]+bestaudio/best[height<=240]"
  resolution: "426x240"
  bitrate: "400k"
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	require.NoError(t, LoadFile(path))

	preset := Lookup("240p")
	require.Equal(t, "426x240", preset.Resolution)
	require.Equal(t, "400k", preset.Bitrate)
}

func TestLoadFileMissing(t *testing.T) {
	err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
