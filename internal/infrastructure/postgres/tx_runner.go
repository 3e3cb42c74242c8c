package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/marketplace-pro/internal/application/auth"
	"github.com/tu-usuario/marketplace-pro/internal/domain/repository"
)

var _ auth.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistration inicia una transacción, ejecuta fn con repos atados a la
// tx y hace Commit o Rollback. Lo usa el registro para crear usuario dueño
// y negocio de forma atómica.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	businessRepo repository.BusinessRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	userRepo := NewUserRepository(tx)
	businessRepo := NewBusinessRepository(tx)

	if err := fn(userRepo, businessRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
