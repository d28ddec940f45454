package dto

import "github.com/therishabh/chai-backend/internal/account/domain"

type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`

	Avatar     *domain.Asset `json:"-"`
	CoverImage *domain.Asset `json:"-"`
}
