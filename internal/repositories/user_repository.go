package repositories

import "magicbio/internal/models"

// UserRepository defines the interface for account data access.
type UserRepository interface {
	// CreateWithBio persists a new user together with their profile.
	// Either both rows exist afterwards or neither does.
	CreateWithBio(user *models.User, bio *models.Bio) error
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}
