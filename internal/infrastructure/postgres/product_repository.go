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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, business_id, name, description, price, status, business_name,
	created_by, COALESCE(approved_by::text, ''), approved_at, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, business_id, name, description, price, status, business_name,
			created_by, approved_by, approved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.BusinessID, product.Name, product.Description, product.Price,
		product.Status, product.BusinessNameSnapshot, product.CreatedByID,
		nullIfEmpty(product.ApprovedByID), product.ApprovedAt,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.BusinessID, &p.Name, &p.Description, &p.Price, &p.Status, &p.BusinessNameSnapshot,
		&p.CreatedByID, &p.ApprovedByID, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update persiste los cambios de un producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, status = $5, business_name = $6,
			approved_by = $7, approved_at = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.Status,
		product.BusinessNameSnapshot, nullIfEmpty(product.ApprovedByID), product.ApprovedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListVisible lista los productos de los negocios accesibles para el actor:
// los negocios que posee más aquel al que pertenece.
func (r *ProductRepo) ListVisible(actorID, businessID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE business_id IN (SELECT id FROM businesses WHERE owner_id = $1 OR id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, actorID, nullIfEmpty(businessID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list visible products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListAll lista todos los productos.
func (r *ProductRepo) ListAll(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListApproved lista productos aprobados de todos los negocios.
func (r *ProductRepo) ListApproved(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, entity.StatusApproved, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list approved products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListApprovedVisible lista productos aprobados dentro del scope del actor.
func (r *ProductRepo) ListApprovedVisible(actorID, businessID string) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE status = $1
		  AND business_id IN (SELECT id FROM businesses WHERE owner_id = $2 OR id = $3)
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, entity.StatusApproved, actorID, nullIfEmpty(businessID))
	if err != nil {
		return nil, fmt.Errorf("list approved visible products: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.BusinessID, &p.Name, &p.Description, &p.Price, &p.Status, &p.BusinessNameSnapshot,
			&p.CreatedByID, &p.ApprovedByID, &p.ApprovedAt, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
