package repository

import "vinopack/models"

type ProfileRepository interface {
	SaveProfile(profile *models.WarehouseProfile) error
	GetProfile() (*models.WarehouseProfile, error)
}
