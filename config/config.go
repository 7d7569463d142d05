package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Viper keys
const (
	KeyDataPath      = "data_path"
	KeySearchPattern = "search_pattern"
	KeySearchFirst   = "search_first"
	KeySearchLast    = "search_last"
	KeyTablePath     = "table_path"
	KeyHeatmapPath   = "heatmap_path"
	KeyPairGridPath  = "pairgrid_path"
	KeyResultPath    = "result_path"
	KeyModelA        = "model_a"
	KeyModelB        = "model_b"
	KeyLogLevel      = "log_level"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. REPOANALYSIS_DATA_PATH.
const EnvPrefix = "REPOANALYSIS"

// ErrInvalidConfig is returned when a loaded value fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the application
type Config struct {
	DataPath      string
	SearchPattern string
	SearchFirst   int
	SearchLast    int
	TablePath     string
	HeatmapPath   string
	PairGridPath  string
	ResultPath    string
	ModelA        string
	ModelB        string
	LogLevel      string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDataPath, "data")
	v.SetDefault(KeySearchPattern, "searchPage%d.html")
	v.SetDefault(KeySearchFirst, 1)
	v.SetDefault(KeySearchLast, 9)
	v.SetDefault(KeyTablePath, "project_info.csv")
	v.SetDefault(KeyHeatmapPath, "correlation.png")
	v.SetDefault(KeyPairGridPath, "seaborn.png")
	v.SetDefault(KeyResultPath, "longley_results.json")
	v.SetDefault(KeyModelA, "stars ~ forks + contributors + issues + readme")
	v.SetDefault(KeyModelB, "stars ~ forks + contributors + watches + commits + readme")
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads configuration from v. When configFile is empty an optional
// repoanalysis.yaml in the working directory is used if present.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("repoanalysis")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DataPath:      v.GetString(KeyDataPath),
		SearchPattern: v.GetString(KeySearchPattern),
		SearchFirst:   v.GetInt(KeySearchFirst),
		SearchLast:    v.GetInt(KeySearchLast),
		TablePath:     v.GetString(KeyTablePath),
		HeatmapPath:   v.GetString(KeyHeatmapPath),
		PairGridPath:  v.GetString(KeyPairGridPath),
		ResultPath:    v.GetString(KeyResultPath),
		ModelA:        v.GetString(KeyModelA),
		ModelB:        v.GetString(KeyModelB),
		LogLevel:      v.GetString(KeyLogLevel),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required values are present and consistent.
func (c *Config) Validate() error {
	required := map[string]string{
		KeyDataPath:      c.DataPath,
		KeySearchPattern: c.SearchPattern,
		KeyTablePath:     c.TablePath,
		KeyHeatmapPath:   c.HeatmapPath,
		KeyPairGridPath:  c.PairGridPath,
		KeyResultPath:    c.ResultPath,
		KeyModelA:        c.ModelA,
		KeyModelB:        c.ModelB,
	}
	for key, val := range required {
		if val == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidConfig, key)
		}
	}

	verbs := strings.ReplaceAll(c.SearchPattern, "%%", "")
	if strings.Count(verbs, "%") != 1 || strings.Count(verbs, "%d") != 1 {
		return fmt.Errorf("%w: %s must contain exactly one %%d, got %q", ErrInvalidConfig, KeySearchPattern, c.SearchPattern)
	}

	if c.SearchFirst < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidConfig, KeySearchFirst, c.SearchFirst)
	}
	if c.SearchLast < c.SearchFirst {
		return fmt.Errorf("%w: %s (%d) is before %s (%d)", ErrInvalidConfig,
			KeySearchLast, c.SearchLast, KeySearchFirst, c.SearchFirst)
	}
	return nil
}

// SearchPaths returns the explicit list of search-result documents to read,
// in page order.
func (c *Config) SearchPaths() []string {
	paths := make([]string, 0, c.SearchLast-c.SearchFirst+1)
	for i := c.SearchFirst; i <= c.SearchLast; i++ {
		paths = append(paths, filepath.Join(c.DataPath, fmt.Sprintf(c.SearchPattern, i)))
	}
	return paths
}
