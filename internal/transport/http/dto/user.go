package dto

import (
	"wedding_memories/internal/domain/models"
)

// UserRegisterInput is the registration payload.
type UserRegisterInput struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8,max=72"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
}

// ToDomain never takes a role from the client.
func (input UserRegisterInput) ToDomain(passwordHash []byte) models.User {
	return models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: passwordHash,
		Role:         models.RoleGuest,
	}
}
