package pipeline

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowbreak/pkg/cache"
	"github.com/matzehuels/flowbreak/pkg/errors"
)

// DefaultConfigFile is the profile looked up in the working directory.
const DefaultConfigFile = "flowbreak.toml"

// Config is a TOML profile. Every section is optional.
//
//	[line]
//	width = 72
//	alignment = "justify"
//
//	[[page.spec]]
//	height = 50
//	width = 72
//	columns = 2
//
//	[cache]
//	backend = "redis"
//	url = "redis://localhost:6379/0"
type Config struct {
	Line  LineOptions  `toml:"line"`
	Page  PageOptions  `toml:"page"`
	Cache cache.Config `toml:"cache"`
}

// LoadConfig decodes the profile at path. Keys that match no option are
// reported as an error so that typos do not pass silently.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// LoadConfigIfExists is [LoadConfig] for optional profiles: a missing file
// yields the zero Config.
func LoadConfigIfExists(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, nil
	}
	return LoadConfig(path)
}
