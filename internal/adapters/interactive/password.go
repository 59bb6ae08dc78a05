package interactive

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/scriptkit/internal/domain/config"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// PasswordEnv supplies keystore passwords without prompting
const PasswordEnv = "SCRIPTKIT_KEYSTORE_PASSWORD"

// PasswordPrompt reads keystore passwords from the environment or the terminal
type PasswordPrompt struct {
	config *config.RuntimeConfig
	// prompt is replaced in tests
	prompt func(label string) (string, error)
}

// NewPasswordPrompt creates a new PasswordPrompt
func NewPasswordPrompt(cfg *config.RuntimeConfig) *PasswordPrompt {
	return &PasswordPrompt{config: cfg, prompt: maskedPrompt}
}

// Password returns the password for credential id, asking twice when confirm
// is set
func (p *PasswordPrompt) Password(_ context.Context, id string, confirm bool) (string, error) {
	if password, ok := os.LookupEnv(PasswordEnv); ok {
		return password, nil
	}

	if p.config.NonInteractive {
		return "", fmt.Errorf("no password for %s: set %s in non-interactive mode", id, PasswordEnv)
	}

	password, err := p.prompt(fmt.Sprintf("Password for %s", id))
	if err != nil {
		return "", fmt.Errorf("password prompt cancelled: %w", err)
	}
	if !confirm {
		return password, nil
	}

	if password == "" {
		return "", errors.New("password must not be empty")
	}
	again, err := p.prompt("Repeat password")
	if err != nil {
		return "", fmt.Errorf("password prompt cancelled: %w", err)
	}
	if again != password {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}

func maskedPrompt(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	return prompt.Run()
}

var _ usecase.PasswordProvider = (*PasswordPrompt)(nil)
