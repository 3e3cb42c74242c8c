package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El status nunca se
// acepta del cliente: todo producto nace en draft.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	BusinessID  string          `json:"business_id" validate:"omitempty,uuid"` // default: negocio del actor
}

// UpdateProductRequest entrada para actualizar un producto. Status solo lo
// puede escribir un superusuario (corrección administrativa); para el resto
// el workflow pasa por submit-for-approval y approve.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Status      *string          `json:"status" validate:"omitempty,oneof=draft pending_approval approved"`
}

// ProductResponse salida completa de un producto (vista autenticada).
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status"`
	BusinessID   string          `json:"business_id"`
	BusinessName string          `json:"business_name"`
	CreatedByID  string          `json:"created_by,omitempty"`
	ApprovedByID string          `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PublicProductResponse salida reducida para el listado público (solo
// productos aprobados, sin datos de auditoría).
type PublicProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	BusinessName string          `json:"business_name"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PublicProductListResponse lista paginada del listado público.
type PublicProductListResponse struct {
	Items []PublicProductResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
