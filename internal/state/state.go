package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/Paintersrp/qs/internal/config"
	"github.com/Paintersrp/qs/internal/constants"
	"github.com/Paintersrp/qs/internal/services/corpus"
	"github.com/Paintersrp/qs/internal/switcher"
	"github.com/Paintersrp/qs/internal/vault"
)

// State wires together everything a command needs: validated config, the
// active search profile, the corpus service, the watcher, and the recency
// store.
type State struct {
	Config      *config.Config
	Profile     config.Profile
	ProfileName string
	Home        string
	Vault       *vault.Vault
	Watcher     *VaultWatcher
	Corpus      CorpusService
	Recency     *RecencyStore
}

// CorpusService exposes the shared corpus snapshots produced by the corpus
// manager.
type CorpusService interface {
	AcquireSnapshot() ([]switcher.Item, error)
	QueueUpdate(string)
	Stats() corpus.Stats
	Close() error
}

// NewState loads configuration and assembles the runtime services. An empty
// profileOverride selects the configured default profile.
func NewState(profileOverride string) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	profileName := profileOverride
	if profileName == "" {
		profileName = cfg.DefaultProfile
	}
	profile, err := cfg.GetProfile(profileName)
	if err != nil {
		return nil, err
	}

	v := vault.New(cfg.VaultDir, vault.Config{
		IgnoredFolders: cfg.IgnoredFolders,
		StarredPaths:   cfg.StarredPaths,
	})

	corpusService := corpus.NewService(v)

	watcher, err := NewVaultWatcher(cfg.VaultDir)
	if err != nil {
		return nil, fmt.Errorf("failed to watch vault: %w", err)
	}
	watcher.OnChange(corpusService.QueueUpdate)

	recency, err := OpenRecencyStore(home)
	if err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to open recency store: %w", err)
	}

	return &State{
		Config:      cfg,
		Profile:     profile,
		ProfileName: profileName,
		Home:        home,
		Vault:       v,
		Watcher:     watcher,
		Corpus:      corpusService,
		Recency:     recency,
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}

	return config.Load(home)
}

// ApplyProfile switches the active search profile. An empty name keeps the
// current one.
func (s *State) ApplyProfile(name string) error {
	if name == "" || name == s.ProfileName {
		return nil
	}

	profile, err := s.Config.GetProfile(name)
	if err != nil {
		return err
	}
	s.Profile = profile
	s.ProfileName = name
	return nil
}

// RankContext builds the ranking context from the recency store.
func (s *State) RankContext() switcher.RankContext {
	if s == nil || s.Recency == nil {
		return switcher.RankContext{}
	}
	return switcher.RankContext{RecencyRank: s.Recency.Ranks()}
}

// Close releases resources associated with the state, including the vault
// watcher and shared corpus service.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Corpus != nil {
		if err := s.Corpus.Close(); err != nil && !errors.Is(err, corpus.ErrClosed) {
			errs = append(errs, err)
		}
		s.Corpus = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
