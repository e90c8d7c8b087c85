package entity

import "time"

// User operador del sistema (login por username).
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
}
