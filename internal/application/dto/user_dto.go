package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=2"`
	Correo   string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol" validate:"required,rol"`
}

// UpdateUserRequest cambios parciales sobre un usuario.
type UpdateUserRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=2"`
	Correo   *string `json:"correo" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Rol      *string `json:"rol" validate:"omitempty,rol"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID       int64     `json:"id"`
	Nombre   string    `json:"nombre"`
	Correo   string    `json:"correo"`
	Rol      string    `json:"rol"`
	CreadoEn time.Time `json:"creado_en"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Correo   string `json:"correo" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión más rol y nombre para el frontend.
type LoginResponse struct {
	Token  string `json:"token"`
	Rol    string `json:"rol"`
	Nombre string `json:"nombre"`
}
