package ports

import "context"

// TxManager runs fn inside one storage transaction; repository calls
// made with the callback's context join it.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
