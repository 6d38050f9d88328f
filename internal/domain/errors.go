package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNotEditable        = errors.New("la transacción no admite edición")
	ErrPartnerHasCapital  = errors.New("el socio aún tiene capital asignado")
	ErrNothingToUndo      = errors.New("no hay operaciones para deshacer")
	ErrClosingTransition  = errors.New("transición de cierre inválida")
	ErrPercentagesSum     = errors.New("los porcentajes de distribución no suman 100")
)
