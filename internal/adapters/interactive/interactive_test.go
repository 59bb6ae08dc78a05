package interactive

import (
	"context"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
)

func TestCreateFuzzySearchFunc(t *testing.T) {
	items := []string{"development", "ganache-local", "mainnet-fork", "rinkeby"}
	search := createFuzzySearchFunc(items)

	assert.True(t, search("", 0))
	assert.True(t, search("GANACHE", 1))
	assert.True(t, search("mfk", 2))
	assert.False(t, search("xyz", 3))
}

func TestFormatNetworkOptions(t *testing.T) {
	color.NoColor = true
	options := formatNetworkOptions([]string{"development", "rinkeby"}, "rinkeby")
	assert.Equal(t, []string{"development [local]", "rinkeby [live] (active)"}, options)
}

func TestSelectNetwork_NonInteractive(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true, Network: &config.Network{Name: "development"}})
	_, err := s.SelectNetwork(context.Background(), []string{"a", "b"}, "Select network")
	assert.Error(t, err)
}

func TestSelectNetwork_Single(t *testing.T) {
	s := NewSelectorAdapter(&config.RuntimeConfig{Network: &config.Network{Name: "development"}})
	name, err := s.SelectNetwork(context.Background(), []string{"rinkeby"}, "Select network")
	require.NoError(t, err)
	assert.Equal(t, "rinkeby", name)
}

func scripted(answers ...string) func(string) (string, error) {
	return func(string) (string, error) {
		answer := answers[0]
		answers = answers[1:]
		return answer, nil
	}
}

func TestPasswordPrompt(t *testing.T) {
	ctx := context.Background()
	// restored after the test by t.Setenv
	t.Setenv(PasswordEnv, "")
	require.NoError(t, os.Unsetenv(PasswordEnv))

	t.Run("env wins", func(t *testing.T) {
		t.Setenv(PasswordEnv, "from-env")
		p := NewPasswordPrompt(&config.RuntimeConfig{NonInteractive: true})
		pw, err := p.Password(ctx, "deployer", true)
		require.NoError(t, err)
		assert.Equal(t, "from-env", pw)
	})

	t.Run("non-interactive without env", func(t *testing.T) {
		p := NewPasswordPrompt(&config.RuntimeConfig{NonInteractive: true})
		_, err := p.Password(ctx, "deployer", false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), PasswordEnv)
	})

	t.Run("prompt", func(t *testing.T) {
		p := NewPasswordPrompt(&config.RuntimeConfig{})
		p.prompt = scripted("secret")
		pw, err := p.Password(ctx, "deployer", false)
		require.NoError(t, err)
		assert.Equal(t, "secret", pw)
	})

	t.Run("confirm matches", func(t *testing.T) {
		p := NewPasswordPrompt(&config.RuntimeConfig{})
		p.prompt = scripted("secret", "secret")
		pw, err := p.Password(ctx, "deployer", true)
		require.NoError(t, err)
		assert.Equal(t, "secret", pw)
	})

	t.Run("confirm mismatch", func(t *testing.T) {
		p := NewPasswordPrompt(&config.RuntimeConfig{})
		p.prompt = scripted("secret", "other")
		_, err := p.Password(ctx, "deployer", true)
		assert.EqualError(t, err, "passwords do not match")
	})

	t.Run("confirm empty", func(t *testing.T) {
		p := NewPasswordPrompt(&config.RuntimeConfig{})
		p.prompt = scripted("")
		_, err := p.Password(ctx, "deployer", true)
		assert.EqualError(t, err, "password must not be empty")
	})
}
