package service

import (
	"strings"

	"github.com/AlibekovAA/ricebook/backend/internal/common/constants"
	commonerrors "github.com/AlibekovAA/ricebook/backend/internal/common/errors"
	"github.com/AlibekovAA/ricebook/backend/internal/common/validation"
)

type RegisterInput struct {
	Username string `json:"username" validate:"required,max=32,username"`
	Password string `json:"password" validate:"required,max=72"`
	Email    string `json:"email" validate:"required,email"`
	Dob      string `json:"dob" validate:"required,date"`
	Zipcode  string `json:"zipcode" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Avatar   string `json:"avatar" validate:"omitempty,url"`
	Headline string `json:"headline" validate:"omitempty,max=280"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,max=72"`
}

func (in *RegisterInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Dob = strings.TrimSpace(in.Dob)
	in.Zipcode = strings.TrimSpace(in.Zipcode)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Avatar = strings.TrimSpace(in.Avatar)
}

func (in *LoginInput) normalize() {
	in.Username = strings.TrimSpace(in.Username)
}

func validateRegister(in RegisterInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	return validatePasswordBytes(in.Password)
}

func validateLogin(in LoginInput) error {
	return validation.Struct(in)
}

func validateChangePassword(in ChangePasswordInput) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	return validatePasswordBytes(in.NewPassword)
}

// bcrypt rejects input longer than 72 bytes; the max tag counts runes.
func validatePasswordBytes(password string) error {
	if len(password) > constants.PasswordMaxLength {
		return commonerrors.Validation("password must be at most %d bytes", constants.PasswordMaxLength)
	}
	return nil
}
