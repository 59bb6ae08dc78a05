package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/scriptkit/internal/domain"
	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// AccountsRenderer renders keystore and dev accounts
type AccountsRenderer struct {
	out io.Writer
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer) *AccountsRenderer {
	return &AccountsRenderer{out: out}
}

// RenderList renders the keystore entries and, on local networks, the dev accounts
func (r *AccountsRenderer) RenderList(result *usecase.AccountsListResult) error {
	headerStyle.Fprintln(r.out, "🔑 Keystore accounts:")
	if len(result.Keystore) == 0 {
		labelStyle.Fprintln(r.out, "  none, add one with 'scriptkit accounts new <id>'")
	} else {
		t := newTable(r.out)
		t.AppendHeader(table.Row{"ID", "Address"})
		for _, entry := range result.Keystore {
			t.AppendRow(table.Row{entry.ID, addressStyle.Sprint(entry.Address.Hex())})
		}
		t.Render()
	}

	if len(result.Dev) == 0 {
		return nil
	}

	fmt.Fprintln(r.out)
	headerStyle.Fprintf(r.out, "🧪 Dev accounts (%s):\n", result.Network)
	t := newTable(r.out)
	t.AppendHeader(table.Row{"Index", "Address"})
	for _, account := range result.Dev {
		t.AppendRow(table.Row{account.Index, account.Address.Hex()})
	}
	t.Render()
	return nil
}

// RenderNew renders a freshly stored keystore entry
func (r *AccountsRenderer) RenderNew(entry *domain.KeystoreEntry) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Added account '%s'", entry.ID)))
	fmt.Fprintf(r.out, "Address: %s\n", addressStyle.Sprint(entry.Address.Hex()))
	labelStyle.Fprintf(r.out, "Keyfile: %s\n", entry.Path)
	return nil
}

// RenderDeleted renders the ids removed from the keystore
func (r *AccountsRenderer) RenderDeleted(ids []string) error {
	for _, id := range ids {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deleted account '%s'", id)))
	}
	return nil
}
