package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/scriptkit/internal/usecase"
)

// StorageRenderer renders the SimpleStorage deploy-and-call flow
type StorageRenderer struct {
	out io.Writer
}

// NewStorageRenderer creates a new storage renderer
func NewStorageRenderer(out io.Writer) *StorageRenderer {
	return &StorageRenderer{out: out}
}

// Render renders both transactions and the value read back before and after
func (r *StorageRenderer) Render(result *usecase.DeployStorageResult) error {
	labelStyle.Fprintf(r.out, "Compiled output: %s\n", relativePath(result.OutputPath))
	fmt.Fprintf(r.out, "Deploying from %s (nonce strategy %s)\n", result.Account, result.Nonce)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed SimpleStorage to %s", addressStyle.Sprint(result.Deployment.Address.Hex()))))
	fmt.Fprintf(r.out, "  tx %s nonce %d\n", result.DeployTx.Hash.Hex(), result.DeployTx.Nonce)
	fmt.Fprintf(r.out, "Initial value: %s\n", result.InitialValue)
	fmt.Fprintln(r.out, FormatSuccess("Updated stored value"))
	fmt.Fprintf(r.out, "  tx %s nonce %d\n", result.StoreTx.Hash.Hex(), result.StoreTx.Nonce)
	fmt.Fprintf(r.out, "Updated value: %s\n", result.StoredValue)
	return nil
}
