package dto

import "github.com/jhoicas/beanscene-api/internal/domain/entity"

// CreateStaffRequest entrada para crear un empleado (password en texto, se hashea en use case).
type CreateStaffRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Role      string `json:"role" validate:"required,oneof=Staff Manager"`
}

// UpdateStaffRequest reemplazo completo de los datos del empleado (sin password).
type UpdateStaffRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=Staff Manager"`
}

// UpdatePasswordRequest nueva contraseña de un empleado.
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest credenciales enviadas en el cuerpo del login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StaffResponse proyección reducida de un empleado (nunca incluye el hash).
type StaffResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// ToStaffResponse proyecta la entidad sin el hash de la contraseña.
func ToStaffResponse(s *entity.Staff) *StaffResponse {
	if s == nil {
		return nil
	}
	return &StaffResponse{
		ID:        s.ID.Hex(),
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Username:  s.Username,
		Email:     s.Email,
		Role:      s.Role,
	}
}
