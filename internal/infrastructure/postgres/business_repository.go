package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/marketplace-pro/internal/domain"
	"github.com/tu-usuario/marketplace-pro/internal/domain/entity"
	"github.com/tu-usuario/marketplace-pro/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

const businessColumns = `id, name, can_create_users, can_assign_roles,
	COALESCE(owner_id::text, ''), created_at, updated_at`

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL
// (usable con pool o tx).
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador de persistencia para negocios.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Create persiste un nuevo negocio.
func (r *BusinessRepo) Create(business *entity.Business) error {
	query := `
		INSERT INTO businesses (id, name, can_create_users, can_assign_roles, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		business.ID, business.Name, business.CanCreateUsers, business.CanAssignRoles,
		nullIfEmpty(business.OwnerID), business.CreatedAt, business.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID.
func (r *BusinessRepo) GetByID(id string) (*entity.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	var b entity.Business
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.CanCreateUsers, &b.CanAssignRoles, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// Update persiste los cambios de un negocio existente.
func (r *BusinessRepo) Update(business *entity.Business) error {
	query := `
		UPDATE businesses
		SET name = $2, can_create_users = $3, can_assign_roles = $4, owner_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		business.ID, business.Name, business.CanCreateUsers, business.CanAssignRoles,
		nullIfEmpty(business.OwnerID), business.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAccessible lista los negocios visibles para un usuario: los que posee
// más aquel al que pertenece.
func (r *BusinessRepo) ListAccessible(ownerID, businessID string) ([]*entity.Business, error) {
	query := `
		SELECT ` + businessColumns + `
		FROM businesses
		WHERE owner_id = $1 OR id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, ownerID, nullIfEmpty(businessID))
	if err != nil {
		return nil, fmt.Errorf("list accessible businesses: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListAll lista todos los negocios.
func (r *BusinessRepo) ListAll() ([]*entity.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *BusinessRepo) scanMany(rows pgx.Rows) ([]*entity.Business, error) {
	var businesses []*entity.Business
	for rows.Next() {
		var b entity.Business
		if err := rows.Scan(
			&b.ID, &b.Name, &b.CanCreateUsers, &b.CanAssignRoles, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		businesses = append(businesses, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}
