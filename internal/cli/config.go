package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DOCDANTIC_PLACEHOLDER.
const EnvPrefix = "DOCDANTIC"

const defaultConfigName = "docdantic"

// Config is the layered CLI configuration: defaults, config file, env, flags.
type Config struct {
	Sources      []SourceConfig `mapstructure:"sources"`
	HeadingLevel int            `mapstructure:"heading_level"`
	Placeholder  string         `mapstructure:"placeholder"`
	AllowHTTP    bool           `mapstructure:"allow_http"`
	Timeout      time.Duration  `mapstructure:"timeout"`
	Verbose      bool           `mapstructure:"verbose"`
}

// SourceConfig names one declaration document to register.
type SourceConfig struct {
	Namespace string `mapstructure:"namespace"`
	// Kind is "openapi" or "jsonschema"; empty detects the format.
	Kind     string `mapstructure:"kind"`
	Location string `mapstructure:"location"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("heading_level", 3)
	v.SetDefault("placeholder", "...")
	v.SetDefault("timeout", 10*time.Second)
	return v
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for key, flag := range map[string]string{
		"heading_level": "heading-level",
		"placeholder":   "placeholder",
		"allow_http":    "allow-http",
		"timeout":       "timeout",
		"verbose":       "verbose",
	} {
		if f := flags.Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// loadConfig reads the config file (explicit path or ./docdantic.*) and
// decodes the merged settings.
func loadConfig(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("cli: read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return Config{}, fmt.Errorf("cli: decode config: %w", err)
	}
	if used := v.ConfigFileUsed(); used != "" {
		resolveLocations(cfg.Sources, filepath.Dir(used))
	}
	return cfg, nil
}

// resolveLocations makes relative file locations relative to dir, the
// directory of the config file that declared them.
func resolveLocations(sources []SourceConfig, dir string) {
	for i, src := range sources {
		location := strings.TrimSpace(src.Location)
		if location == "" || filepath.IsAbs(location) ||
			strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
			continue
		}
		sources[i].Location = filepath.Join(dir, location)
	}
}

// parseSourceFlags turns repeated `ns=location` flag values into sources.
func parseSourceFlags(kind string, values []string) ([]SourceConfig, error) {
	out := make([]SourceConfig, 0, len(values))
	for _, value := range values {
		namespace, location, ok := strings.Cut(value, "=")
		namespace = strings.TrimSpace(namespace)
		location = strings.TrimSpace(location)
		if !ok || namespace == "" || location == "" {
			return nil, fmt.Errorf("cli: --%s expects namespace=location, got %q", kind, value)
		}
		out = append(out, SourceConfig{Namespace: namespace, Kind: kind, Location: location})
	}
	return out, nil
}
