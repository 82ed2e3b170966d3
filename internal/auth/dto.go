package auth

import (
	coreuser "github.com/frahmantamala/attendance-tracker/internal/core/user"
)

// RegisterDTO is the transport shape for registration requests.
type RegisterDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileDTO struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d *RegisterDTO) Validate() error {
	if d.Name == "" || d.Email == "" || d.Password == "" {
		return ValidationError{Msg: "name, email and password are required"}
	}
	if d.Role == "" {
		d.Role = coreuser.RoleEmployee
	}
	if !coreuser.ValidRole(d.Role) {
		return ValidationError{Msg: "role must be employee or manager"}
	}
	return nil
}

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d UpdateProfileDTO) Validate() error {
	if d.Name == "" || d.Email == "" {
		return ValidationError{Msg: "name and email are required"}
	}
	return nil
}
