package repomock

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

var errNotImplemented = errors.New("not implemented")

// TxManager вызывает fn без настоящей транзакции и запоминает исход.
type TxManager struct {
	Committed  int
	RolledBack int
}

func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if err := fn(nil); err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}
