package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrVersionConflict lo devuelve la persistencia cuando otro escritor modificó el ítem
	// entre la lectura y la escritura. El llamador debe releer y reintentar.
	ErrVersionConflict = errors.New("conflicto de versión")
)
