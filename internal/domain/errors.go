package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los mapean a status codes con errors.Is; la distinción
// 401 / 403 / 404 es parte del contrato de autorización y debe preservarse.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")

	// Workflow de aprobación de productos.
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrAlreadyApproved   = errors.New("el producto ya está aprobado")

	// Sistema de invitaciones.
	ErrTempPasswordExpired = errors.New("la contraseña temporal expiró")

	// Backend LLM remoto; siempre se recupera con generación local,
	// nunca llega al cliente final.
	ErrUpstreamUnavailable = errors.New("servicio remoto no disponible")
)
