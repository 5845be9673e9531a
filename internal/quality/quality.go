package quality

import (
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// DefaultKey is used when an unknown quality is requested.
const DefaultKey = "720p"

type Preset struct {
	// format selection expression passed to the media locator
	Selector   string `yaml:"selector"`
	Resolution string `yaml:"resolution"`
	Bitrate    string `yaml:"bitrate"`
}

var presets = map[string]Preset{
	"1080p": {
		Selector:   "bestvideo[height<=1080]+bestaudio/best[height<=1080]",
		Resolution: "1920x1080",
		Bitrate:    "4000k",
	},
	"720p": {
		Selector:   "bestvideo[height<=720]+bestaudio/best[height<=720]",
		Resolution: "1280x720",
		Bitrate:    "2500k",
	},
	"480p": {
		Selector:   "bestvideo[height<=480]+bestaudio/best[height<=480]",
		Resolution: "854x480",
		Bitrate:    "1000k",
	},
	"360p": {
		Selector:   "bestvideo[height<=360]+bestaudio/best[height<=360]",
		Resolution: "640x360",
		Bitrate:    "700k",
	},
}

// Lookup returns the preset for a quality key. Unknown keys fall back to
// the default preset with a warning instead of failing.
func Lookup(key string) Preset {
	preset, ok := presets[key]
	if !ok {
		log.Warn().
			Str("module", "quality").
			Str("quality", key).
			Str("fallback", DefaultKey).
			Msg("unknown quality, using fallback")

		return presets[DefaultKey]
	}

	return preset
}

// LoadFile merges preset overrides from a yaml file into the catalog.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	overrides := map[string]Preset{}
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return err
	}

	for key, preset := range overrides {
		presets[key] = preset
	}

	return nil
}

// Keys returns all known quality keys.
func Keys() []string {
	keys := make([]string, 0, len(presets))
	for key := range presets {
		keys = append(keys, key)
	}
	return keys
}
