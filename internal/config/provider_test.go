package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	t.Run("defaults to development", func(t *testing.T) {
		dir := t.TempDir()
		v := viper.New()
		v.Set("project_root", dir)
		v.Set("timeout", "5m")

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, dir, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(dir, ".scriptkit"), cfg.DataDir)
		assert.Equal(t, 5*time.Minute, cfg.Timeout)
		require.NotNil(t, cfg.Network)
		assert.Equal(t, "development", cfg.Network.Name)
		assert.Equal(t, uint64(31337), cfg.Network.ChainID)
	})

	t.Run("default_network from project file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "scriptkit.toml"), `default_network = "ganache-local"`)
		v := viper.New()
		v.Set("project_root", dir)

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, "ganache-local", cfg.Network.Name)
		assert.Equal(t, filepath.Join(dir, "scriptkit.toml"), cfg.ConfigSource)
	})

	t.Run("explicit network wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "scriptkit.toml"), `
default_network = "ganache-local"

[networks.rinkeby]
rpc_url = "https://rinkeby.example.org"
chain_id = 4
`)
		v := viper.New()
		v.Set("project_root", dir)
		v.Set("network", "rinkeby")

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, "rinkeby", cfg.Network.Name)
		assert.Equal(t, uint64(4), cfg.Network.ChainID)
	})

	t.Run("unknown network", func(t *testing.T) {
		v := viper.New()
		v.Set("project_root", t.TempDir())
		v.Set("network", "nowhere")

		_, err := Provider(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nowhere")
	})
}

func TestSetupViper(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "test"}
		cmd.Flags().StringP("network", "n", "", "")
		cmd.Flags().Bool("debug", false, "")
		cmd.Flags().Bool("non-interactive", false, "")
		return cmd
	}

	t.Run("local config supplies the network", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".scriptkit", "config.local.json"), `{"network":"ganache-local"}`)

		v := SetupViper(dir, newCmd())
		assert.Equal(t, "ganache-local", v.GetString("network"))
		assert.Equal(t, dir, v.GetString("project_root"))
		assert.Equal(t, 5*time.Minute, v.GetDuration("timeout"))
	})

	t.Run("flag overrides local config", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".scriptkit", "config.local.json"), `{"network":"ganache-local"}`)

		cmd := newCmd()
		require.NoError(t, cmd.Flags().Parse([]string{"-n", "rinkeby", "--non-interactive"}))

		v := SetupViper(dir, cmd)
		assert.Equal(t, "rinkeby", v.GetString("network"))
		assert.True(t, v.GetBool("non_interactive"))
	})

	t.Run("environment overrides local config", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ".scriptkit", "config.local.json"), `{"network":"ganache-local"}`)
		t.Setenv("SCRIPTKIT_NETWORK", "mainnet-fork")

		v := SetupViper(dir, newCmd())
		assert.Equal(t, "mainnet-fork", v.GetString("network"))
	})
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "scriptkit.toml"), "")
	nested := filepath.Join(root, "contracts", "test")
	require.NoError(t, os.MkdirAll(nested, 0755))

	t.Chdir(nested)

	found, err := FindProjectRoot()
	require.NoError(t, err)

	expected, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	actual, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}
