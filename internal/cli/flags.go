package cli

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// accountFlags selects the signing account of a command
type accountFlags struct {
	index int
	id    string
}

func addAccountFlags(cmd *cobra.Command, flags *accountFlags) {
	cmd.Flags().IntVarP(&flags.index, "account-index", "i", 0, "Use the dev account at this index (local networks)")
	cmd.Flags().StringVarP(&flags.id, "account", "a", "", "Use the keystore account with this id")
}

// params only sets Index when the flag was given, so index 0 is explicit
func (f *accountFlags) params(cmd *cobra.Command) usecase.AccountParams {
	var params usecase.AccountParams
	if cmd.Flags().Changed("account-index") {
		index := f.index
		params.Index = &index
	}
	params.ID = f.id
	return params
}

// etherUnits is ordered so that longer suffixes match first
var etherUnits = []struct {
	suffix   string
	decimals int
}{
	{"ether", 18},
	{"gwei", 9},
	{"eth", 18},
	{"wei", 0},
}

// parseAmount parses "1000", "0.1ether", "0.1 eth" or "20gwei" into wei
func parseAmount(s string) (*big.Int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	decimals := 0
	for _, unit := range etherUnits {
		if strings.HasSuffix(s, unit.suffix) {
			s, decimals = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix)), unit.decimals
			break
		}
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("invalid amount %q: too many decimals", s)
	}
	digits := whole + frac + strings.Repeat("0", decimals-len(frac))

	if strings.Trim(digits, "0123456789") != "" {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return value, nil
}
