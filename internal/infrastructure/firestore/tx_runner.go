package firestore

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/jhoicas/ppf-inventory/internal/application/inventory"
	"github.com/jhoicas/ppf-inventory/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn dentro de RunTransaction. Firestore reintenta ante contención,
// así que fn puede ejecutarse más de una vez.
type TxRunner struct {
	client *firestore.Client
}

// NewTxRunner construye el runner.
func NewTxRunner(client *firestore.Client) *TxRunner {
	return &TxRunner{client: client}
}

// Run pasa a fn repositorios atados a la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	items repository.InventoryItemRepository,
	sales repository.SaleRepository,
) error) error {
	return r.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		rn := runner{client: r.client, tx: tx}
		return fn(&ItemRepoFS{rn}, &SaleRepoFS{rn})
	})
}
