package repository

import "vinopack/models"

type UserRepository interface {
	CreateUser(user *models.AppUser) error
	GetUserByEmail(email string) (*models.AppUser, error)
}
