package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleContador = "contador"
)

// User representa un usuario del sistema (la contadora o el administrador del negocio).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, contador
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
