package models

import "gorm.io/gorm"

// LinkItem is one entry in the ordered list of link cards on a profile.
type LinkItem struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url" validate:"required,url"`
	Favicon     bool   `json:"favicon"`
	Media       string `json:"media"`
	Direction   string `json:"direction" validate:"omitempty,oneof=row column"`
	Size        string `json:"size" validate:"omitempty,oneof=s m l"`
}

// SocialItem is one entry in the row of social icon buttons.
type SocialItem struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Link string `json:"link"`
}

// Bio represents a user's public profile page. Links and Social are stored
// as JSON columns so their order survives round trips unchanged.
type Bio struct {
	ID         string       `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string       `json:"userId" gorm:"index;type:varchar(36)" validate:"required"`
	Username   string       `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,max=100"`
	Name       string       `json:"name"`
	Avatar     string       `json:"avatar"`
	Cover      string       `json:"cover"`
	Bio        string       `json:"bio"`
	Links      []LinkItem   `json:"links" gorm:"serializer:json"`
	Social     []SocialItem `json:"social" gorm:"serializer:json"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
