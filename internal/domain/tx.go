package domain

import "context"

// Transactor runs fn inside one storage transaction. Repositories called with the
// context passed to fn take part in it. A nested call joins the outer transaction.
// Returning an error from fn rolls back every write made through the context.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
