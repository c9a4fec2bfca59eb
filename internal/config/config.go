package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the tpupod CLI configuration: a registry of named projects
// plus the path of the persisted selected-project state.
type Config struct {
	StateFile string             `mapstructure:"state_file"`
	Projects  map[string]Project `mapstructure:"projects"`
}

// Project declares one experiment: the pod it targets, how to reach it,
// and what to ship there.
type Project struct {
	TPUProject string `mapstructure:"tpu_project"`
	TPUZone    string `mapstructure:"tpu_zone"`
	TPUName    string `mapstructure:"tpu_name"`

	User                  string  `mapstructure:"user"`
	KeyPath               string  `mapstructure:"key_path"`
	StrictHostKeyChecking bool    `mapstructure:"strict_host_key_checking"`
	KnownHostsFile        *string `mapstructure:"known_hosts_file"`

	WorkingDir   string    `mapstructure:"working_dir"`
	CopyDirs     []CopyDir `mapstructure:"copy_dirs"`
	CopyExcludes []string  `mapstructure:"copy_excludes"`
	KillCommands []string  `mapstructure:"kill_commands"`
	SetupScript  string    `mapstructure:"setup_script"`
}

// CopyDir is one local-to-remote sync pair.
type CopyDir struct {
	Local  string `mapstructure:"local"`
	Remote string `mapstructure:"remote"`
}

// EffectiveKnownHosts returns the UserKnownHostsFile override to use.
// Defaults to /dev/null when not set; an explicit empty string disables
// the override.
func (p *Project) EffectiveKnownHosts() string {
	if p.KnownHostsFile == nil {
		return "/dev/null"
	}
	return *p.KnownHostsFile
}

// Load reads the configuration from cfgFile, or ~/.tpupod/config.yaml
// when cfgFile is empty. A missing config file yields an empty registry,
// not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		configDir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file, defaults only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.StateFile = expandPath(cfg.StateFile)
	for name, p := range cfg.Projects {
		p.KeyPath = expandPath(p.KeyPath)
		p.SetupScript = expandPath(p.SetupScript)
		for i, d := range p.CopyDirs {
			p.CopyDirs[i].Local = expandPath(d.Local)
		}
		cfg.Projects[name] = p
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("state_file", filepath.Join("~", ".tpupod", "state.json"))
}

// expandPath expands a leading ~ to the home directory, preserving any
// trailing slash (it changes rsync semantics). Paths that fail to expand
// are returned unchanged.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	if strings.HasSuffix(path, "/") && !strings.HasSuffix(expanded, "/") {
		expanded += "/"
	}
	return expanded
}

// ConfigDir returns the tpupod configuration directory path.
func ConfigDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tpupod"), nil
}
