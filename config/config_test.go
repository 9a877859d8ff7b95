package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/versiongate/config"
)

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestResolveToken(t *testing.T) {
	t.Run("should return empty string for empty input", func(t *testing.T) {
		t.Parallel()

		// given
		raw := ""

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should return inline token unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "ghp_abc123xyz"

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Equal(t, "ghp_abc123xyz", result)
	})

	t.Run("should expand environment variable reference", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("TEST_TOKEN_RESOLVE", "my-secret-token")
		raw := "${TEST_TOKEN_RESOLVE}"

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Equal(t, "my-secret-token", result)
	})

	t.Run("should return empty for unset env var", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "${DEFINITELY_NOT_SET_VAR_12345}"

		// when
		result := config.ResolveToken(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should read token from file when path exists", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		tokenFile := filepath.Join(tmpDir, "token.key")
		err := os.WriteFile(tokenFile, []byte("  file-based-token  \n"), 0o600)
		require.NoError(t, err)

		// when
		result := config.ResolveToken(tokenFile)

		// then
		assert.Equal(t, "file-based-token", result)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("should accept the git source with defaults applied", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()

		// when
		err := config.Validate(cfg)

		// then
		require.NoError(t, err)
	})

	t.Run("should fail for an unknown source type", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.Source.Type = "mercurial"

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown source type")
	})

	t.Run("should fail when github source is missing owner or repo", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.Source.Type = config.SourceGitHub
		cfg.Source.PullRequest = 42
		cfg.Source.Token = "ghp_token"

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source.owner and source.repo")
	})

	t.Run("should fail when github source is missing the pull request number", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.Source.Type = config.SourceGitHub
		cfg.Source.Owner = "acme"
		cfg.Source.Repo = "widgets"
		cfg.Source.Token = "ghp_token"

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source.pull_request")
	})

	t.Run("should fail when github source is missing the token", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := config.Default()
		cfg.Source.Type = config.SourceGitHub
		cfg.Source.Owner = "acme"
		cfg.Source.Repo = "widgets"
		cfg.Source.PullRequest = 42

		// when
		err := config.Validate(cfg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source.token")
	})
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	t.Run("should fill every empty field with its default", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := &config.Config{}

		// when
		config.ApplyDefaults(cfg)

		// then
		assert.Equal(t, config.SourceGit, cfg.Source.Type)
		assert.Equal(t, ".", cfg.Source.RepoDir)
		assert.Equal(t, config.DefaultManifestPath, cfg.Check.ManifestPath)
		assert.Equal(t, config.DefaultLockfilePath, cfg.Check.LockfilePath)
	})

	t.Run("should preserve explicit values", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := &config.Config{
			Source: config.SourceConfig{Type: config.SourceGitHub, RepoDir: "/srv/checkout"},
			Check:  config.CheckConfig{ManifestPath: "web/package.json"},
		}

		// when
		config.ApplyDefaults(cfg)

		// then
		assert.Equal(t, config.SourceGitHub, cfg.Source.Type)
		assert.Equal(t, "/srv/checkout", cfg.Source.RepoDir)
		assert.Equal(t, "web/package.json", cfg.Check.ManifestPath)
		assert.Equal(t, config.DefaultLockfilePath, cfg.Check.LockfilePath)
	})
}

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestLoad(t *testing.T) {
	t.Run("should load a complete configuration file", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "versiongate.yaml")
		content := `
source:
  type: github
  owner: acme
  repo: widgets
  pull_request: 17
  token: ghp_inline
check:
  include_dev_dependencies: true
  skip_keyword: "[no-bump]"
  manifest_path: web/package.json
`
		err := os.WriteFile(configFile, []byte(content), 0o600)
		require.NoError(t, err)

		// when
		cfg, loadErr := config.Load(configFile)

		// then
		require.NoError(t, loadErr)
		assert.Equal(t, config.SourceGitHub, cfg.Source.Type)
		assert.Equal(t, "acme", cfg.Source.Owner)
		assert.Equal(t, "widgets", cfg.Source.Repo)
		assert.Equal(t, 17, cfg.Source.PullRequest)
		assert.Equal(t, "ghp_inline", cfg.Source.Token)
		assert.True(t, cfg.Check.IncludeDevDependencies)
		assert.Equal(t, "[no-bump]", cfg.Check.SkipKeyword)
		assert.Equal(t, "web/package.json", cfg.Check.ManifestPath)
		assert.Equal(t, config.DefaultLockfilePath, cfg.Check.LockfilePath)
	})

	t.Run("should apply defaults for a minimal git configuration", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "versiongate.yaml")
		err := os.WriteFile(configFile, []byte("source:\n  type: git\n"), 0o600)
		require.NoError(t, err)

		// when
		cfg, loadErr := config.Load(configFile)

		// then
		require.NoError(t, loadErr)
		assert.Equal(t, ".", cfg.Source.RepoDir)
		assert.Equal(t, config.DefaultManifestPath, cfg.Check.ManifestPath)
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := config.Load("/nonexistent/versiongate.yaml")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("should fail for malformed yaml", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "versiongate.yaml")
		err := os.WriteFile(configFile, []byte("source: [not a mapping"), 0o600)
		require.NoError(t, err)

		// when
		_, loadErr := config.Load(configFile)

		// then
		require.Error(t, loadErr)
		assert.Contains(t, loadErr.Error(), "failed to parse config file")
	})

	t.Run("should fall back to the token env vars before validating", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("GITHUB_TOKEN", "ghp_from_env")
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "versiongate.yaml")
		content := `
source:
  type: github
  owner: acme
  repo: widgets
  pull_request: 17
`
		err := os.WriteFile(configFile, []byte(content), 0o600)
		require.NoError(t, err)

		// when
		cfg, loadErr := config.Load(configFile)

		// then
		require.NoError(t, loadErr)
		assert.Equal(t, "ghp_from_env", cfg.Source.Token)
	})

	t.Run("should fail when no token is configured or in the environment", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "")
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "versiongate.yaml")
		content := `
source:
  type: github
  owner: acme
  repo: widgets
  pull_request: 17
`
		err := os.WriteFile(configFile, []byte(content), 0o600)
		require.NoError(t, err)

		// when
		_, loadErr := config.Load(configFile)

		// then
		require.Error(t, loadErr)
		assert.Contains(t, loadErr.Error(), "source.token")
	})

	t.Run("should fail when validation rejects the file", func(t *testing.T) {
		t.Parallel()

		// given
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "versiongate.yaml")
		err := os.WriteFile(configFile, []byte("source:\n  type: github\n"), 0o600)
		require.NoError(t, err)

		// when
		_, loadErr := config.Load(configFile)

		// then
		require.Error(t, loadErr)
	})
}
