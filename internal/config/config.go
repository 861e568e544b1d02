package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/qs/internal/constants"
	"github.com/Paintersrp/qs/internal/switcher"
)

// Profile is the persisted form of one search profile. Sort priorities stay
// strings here; Validate parses them into the closed comparator enumeration
// and rejects the whole config when any entry is malformed.
type Profile struct {
	SearchTags       bool     `yaml:"search_tags"        json:"search_tags"`
	SearchHeaders    bool     `yaml:"search_headers"     json:"search_headers"`
	SearchLinks      bool     `yaml:"search_links"       json:"search_links"`
	SearchProperties bool     `yaml:"search_properties"  json:"search_properties"`
	PropertyKeys     []string `yaml:"property_keys"      json:"property_keys"`
	AllowFuzzy       bool     `yaml:"allow_fuzzy"        json:"allow_fuzzy"`
	MinFuzzyScore    float64  `yaml:"min_fuzzy_score"    json:"min_fuzzy_score"`
	StripDiacritics  bool     `yaml:"strip_diacritics"   json:"strip_diacritics"`
	CaseSensitive    bool     `yaml:"case_sensitive"     json:"case_sensitive"`
	SortPriorities   []string `yaml:"sort_priorities"    json:"sort_priorities"`
	IncludePaths     []string `yaml:"include_paths"      json:"include_paths"`
	ExcludePaths     []string `yaml:"exclude_paths"      json:"exclude_paths"`
	Limit            int      `yaml:"limit"              json:"limit"`
	DebounceMillis   int      `yaml:"debounce_ms"        json:"debounce_ms"`
}

// Config is the on-disk configuration for the switcher.
type Config struct {
	VaultDir       string             `yaml:"vaultdir"        json:"vault_dir"`
	Editor         string             `yaml:"editor"          json:"editor"`
	IgnoredFolders []string           `yaml:"ignored_folders" json:"ignored_folders"`
	StarredPaths   []string           `yaml:"starred"         json:"starred"`
	GrepExecutable string             `yaml:"grep_executable" json:"grep_executable"`
	DefaultProfile string             `yaml:"default_profile" json:"default_profile"`
	Profiles       map[string]Profile `yaml:"profiles"        json:"profiles"`
}

const defaultProfileName = "default"

// DefaultSortPriorities is the chain used when a profile does not configure
// its own.
var DefaultSortPriorities = []string{
	"starred",
	"prefix-name-count",
	"name-count",
	"perfect-word-count",
	"last-opened",
	"last-modified",
	"alphabetical",
}

func defaultProfile() Profile {
	return Profile{
		SearchTags:     true,
		SearchHeaders:  true,
		SearchLinks:    false,
		AllowFuzzy:     true,
		SortPriorities: append([]string(nil), DefaultSortPriorities...),
		Limit:          50,
		DebounceMillis: 60,
	}
}

// NewDefault returns a config pre-populated with the default profile.
func NewDefault(vaultDir string) *Config {
	return &Config{
		VaultDir:       vaultDir,
		DefaultProfile: defaultProfileName,
		Profiles:       map[string]Profile{defaultProfileName: defaultProfile()},
	}
}

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists creates the config directory and an empty config file
// when none exists yet. Loading an empty config still fails validation until
// a vault directory is set, which is what `qs init` is for.
func EnsureConfigExists(home string) error {
	path := GetConfigPath(home)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	return nil
}

// Load reads and validates the config file under the home directory.
func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) ensureDefaults() {
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}
	if _, ok := cfg.Profiles[defaultProfileName]; !ok {
		cfg.Profiles[defaultProfileName] = defaultProfile()
	}
	if cfg.DefaultProfile == "" {
		cfg.DefaultProfile = defaultProfileName
	}
	for name, profile := range cfg.Profiles {
		if len(profile.SortPriorities) == 0 {
			profile.SortPriorities = append([]string(nil), DefaultSortPriorities...)
		}
		if profile.Limit == 0 {
			profile.Limit = 50
		}
		if profile.DebounceMillis == 0 {
			profile.DebounceMillis = 60
		}
		cfg.Profiles[name] = profile
	}
}

// Validate checks every profile before any search runs. All invalid sort
// priorities across all profiles are gathered into one error so the caller
// can surface them together.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.VaultDir) == "" {
		return fmt.Errorf("config: vaultdir is not set")
	}

	var invalid []string
	for name, profile := range cfg.Profiles {
		if _, err := switcher.ParseSortSpecs(profile.SortPriorities); err != nil {
			if specErr, ok := err.(*switcher.InvalidSortSpecsError); ok {
				for _, spec := range specErr.Specs {
					invalid = append(invalid, fmt.Sprintf("profile %q: %s", name, spec))
				}
				continue
			}
			return fmt.Errorf("config: profile %q: %w", name, err)
		}
	}
	if len(invalid) > 0 {
		return &switcher.InvalidSortSpecsError{Specs: invalid}
	}

	if _, ok := cfg.Profiles[cfg.DefaultProfile]; !ok {
		return fmt.Errorf("config: default profile %q does not exist", cfg.DefaultProfile)
	}
	return nil
}

// GetProfile resolves a profile by name, falling back to the default for an
// empty name.
func (cfg *Config) GetProfile(name string) (Profile, error) {
	if name == "" {
		name = cfg.DefaultProfile
	}
	profile, ok := cfg.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("config: unknown profile %q", name)
	}
	return profile, nil
}

// EngineProfile converts the persisted profile into the engine's form.
func (p Profile) EngineProfile() switcher.Profile {
	return switcher.Profile{
		SearchTags:       p.SearchTags,
		SearchHeaders:    p.SearchHeaders,
		SearchLinks:      p.SearchLinks,
		SearchProperties: p.SearchProperties,
		PropertyKeys:     p.PropertyKeys,
		AllowFuzzy:       p.AllowFuzzy,
		MinFuzzyScore:    p.MinFuzzyScore,
		StripDiacritics:  p.StripDiacritics,
		CaseSensitive:    p.CaseSensitive,
		Limit:            p.Limit,
	}
}

// SortSpecs parses the profile's sort priorities. Call Validate first; this
// returns the parse error unchanged otherwise.
func (p Profile) SortSpecs() ([]switcher.SortSpec, error) {
	return switcher.ParseSortSpecs(p.SortPriorities)
}

// PathFilter compiles the include/exclude prefix patterns into the opaque
// predicate the pipeline consumes. Nil means no filtering.
func (p Profile) PathFilter() func(id string) bool {
	if len(p.IncludePaths) == 0 && len(p.ExcludePaths) == 0 {
		return nil
	}

	include := append([]string(nil), p.IncludePaths...)
	exclude := append([]string(nil), p.ExcludePaths...)

	return func(id string) bool {
		for _, prefix := range exclude {
			if strings.HasPrefix(id, prefix) {
				return false
			}
		}
		if len(include) == 0 {
			return true
		}
		for _, prefix := range include {
			if strings.HasPrefix(id, prefix) {
				return true
			}
		}
		return false
	}
}

// Save persists the config through viper so the file keeps a stable shape.
func (cfg *Config) Save(home string) error {
	path := GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(constants.ConfigFileType)

	v.Set("vaultdir", cfg.VaultDir)
	v.Set("editor", cfg.Editor)
	v.Set("ignored_folders", cfg.IgnoredFolders)
	v.Set("starred", cfg.StarredPaths)
	v.Set("grep_executable", cfg.GrepExecutable)
	v.Set("default_profile", cfg.DefaultProfile)
	v.Set("profiles", cfg.Profiles)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
