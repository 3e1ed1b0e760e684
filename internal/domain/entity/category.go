package entity

import "time"

// Category registro de una categoría PPF declarada por el usuario (conjunto abierto, clave = nombre).
type Category struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
