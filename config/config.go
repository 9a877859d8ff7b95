package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Source type identifiers.
const (
	SourceGit    = "git"
	SourceGitHub = "github"
)

// Default document locations inside the checked repository.
const (
	DefaultManifestPath = "package.json"
	DefaultLockfilePath = "package-lock.json"
)

// Config is the top-level configuration for versiongate.
type Config struct {
	Source SourceConfig `yaml:"source"`
	Check  CheckConfig  `yaml:"check"`
}

// SourceConfig describes where the pull request under evaluation lives.
type SourceConfig struct {
	Type        string `yaml:"type"`         // "git" or "github"
	RepoDir     string `yaml:"repo_dir"`     // git source: path to the local checkout
	Owner       string `yaml:"owner"`        // github source
	Repo        string `yaml:"repo"`         // github source
	PullRequest int    `yaml:"pull_request"` // github source
	Token       string `yaml:"token"`        // Inline, ${ENV_VAR}, or file path
}

// CheckConfig holds the gate's policy knobs.
type CheckConfig struct {
	IncludeDevDependencies bool   `yaml:"include_dev_dependencies"`
	SkipKeyword            string `yaml:"skip_keyword"` // empty disables skip logic
	ManifestPath           string `yaml:"manifest_path"`
	LockfilePath           string `yaml:"lockfile_path"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Default returns a configuration for checking the local git checkout in the
// current directory.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Type:    SourceGit,
			RepoDir: ".",
		},
		Check: CheckConfig{
			ManifestPath: DefaultManifestPath,
			LockfilePath: DefaultLockfilePath,
		},
	}
}

// Load reads and parses a configuration file, expanding environment
// variables and resolving token file paths.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := Default()
	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.Source.Token = resolveToken(cfg.Source.Token)
	applyDefaults(cfg)

	// The env fallback must run before validation, which requires a token
	// for the github source.
	if cfg.Source.Type == SourceGitHub && cfg.Source.Token == "" {
		cfg.Source.Token = TokenFromEnv()
	}

	if validateErr := validate(cfg); validateErr != nil {
		return nil, validateErr
	}

	return cfg, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".versiongate.yaml",
		".versiongate.yml",
		"versiongate.yaml",
		"versiongate.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

func applyDefaults(cfg *Config) {
	if cfg.Source.Type == "" {
		cfg.Source.Type = SourceGit
	}
	if cfg.Source.RepoDir == "" {
		cfg.Source.RepoDir = "."
	}
	if cfg.Check.ManifestPath == "" {
		cfg.Check.ManifestPath = DefaultManifestPath
	}
	if cfg.Check.LockfilePath == "" {
		cfg.Check.LockfilePath = DefaultLockfilePath
	}
}

// TokenFromEnv reads the GitHub auth token from well-known environment
// variables.
func TokenFromEnv() string {
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("GH_TOKEN")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(cfg *Config) error {
	switch cfg.Source.Type {
	case SourceGit:
		// repo_dir always has a default
	case SourceGitHub:
		if cfg.Source.Owner == "" || cfg.Source.Repo == "" {
			return errors.New("source.owner and source.repo are required for the github source")
		}
		if cfg.Source.PullRequest <= 0 {
			return errors.New("source.pull_request is required for the github source")
		}
		if cfg.Source.Token == "" {
			return errors.New(
				"source.token is required for the github source (set inline, via ${ENV_VAR}, or as file path)",
			)
		}
	default:
		return fmt.Errorf("unknown source type: %q", cfg.Source.Type)
	}

	return nil
}
