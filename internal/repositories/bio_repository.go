package repositories

import "magicbio/internal/models"

// BioRepository defines the interface for profile data access.
type BioRepository interface {
	// GetByUsername looks up a profile by exact username match.
	// A missing profile is (nil, nil), not an error: any mistyped or
	// unregistered username lands here.
	GetByUsername(username string) (*models.Bio, error)
	GetByUserID(userID string) (*models.Bio, error)
	Update(bio *models.Bio) error
}
