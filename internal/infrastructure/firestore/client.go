// Package firestore implementa los puertos de persistencia sobre Cloud Firestore.
// Cada ítem es un documento de la colección inventory_items con rollos e historial embebidos.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Colecciones.
const (
	itemsCollection      = "inventory_items"
	categoriesCollection = "ppf_categories"
	salesCollection      = "accessory_sales"
)

// ClientWrapper cliente Firestore y su proyecto.
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// NewClient inicializa el cliente. credentialsFile vacío usa Application Default Credentials
// (o el emulador si FIRESTORE_EMULATOR_HOST está definido).
func NewClient(ctx context.Context, projectID, credentialsFile string) (*ClientWrapper, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("crear cliente firestore: %w", err)
	}
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

// Ping prueba la conexión con una lectura mínima (Firestore no tiene ping).
func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return fmt.Errorf("cliente firestore nil")
	}
	_, err := cw.Client.Collection(categoriesCollection).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("ping firestore: %w", err)
	}
	return nil
}

// Close cierra el cliente.
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// runner ejecuta fn en la transacción recibida o abre una nueva.
type runner struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (r runner) run(ctx context.Context, fn func(tx *firestore.Transaction) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		return fn(tx)
	})
}

// documents ejecuta la consulta dentro de la tx si la hay.
func (r runner) documents(ctx context.Context, q firestore.Query) ([]*firestore.DocumentSnapshot, error) {
	if r.tx != nil {
		return r.tx.Documents(q).GetAll()
	}
	return q.Documents(ctx).GetAll()
}

// get lee un documento; nil, nil si no existe.
func (r runner) get(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	var (
		snap *firestore.DocumentSnapshot
		err  error
	)
	if r.tx != nil {
		snap, err = r.tx.Get(ref)
	} else {
		snap, err = ref.Get(ctx)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return snap, nil
}
