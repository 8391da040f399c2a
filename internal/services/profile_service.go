package services

import (
	"fmt"

	"magicbio/internal/models"
	"magicbio/internal/repositories"

	"github.com/google/uuid"
)

// Fallbacks used by the metadata generator.
const (
	notFoundTitle       = "Profile Not Found"
	notFoundDescription = "The profile you are looking for does not exist."
	fallbackDescription = "Check out my links!"
	defaultPreviewImage = "/images/og.jpg"
)

// LinkView is the transport form of a link card.
type LinkView struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Favicon     bool   `json:"favicon"`
	Media       string `json:"media"`
	Direction   string `json:"direction"`
	Size        string `json:"size"`
}

// SocialView is the transport form of a social icon button.
type SocialView struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Link string `json:"link"`
}

// BioView is the normalized, strongly-typed form of a stored profile.
// All identifier conversion happens here, never at render time.
type BioView struct {
	ID       string       `json:"id"`
	UserID   string       `json:"userId"`
	Username string       `json:"username"`
	Name     string       `json:"name"`
	Avatar   string       `json:"avatar"`
	Cover    string       `json:"cover"`
	Bio      string       `json:"bio"`
	Links    []LinkView   `json:"links"`
	Social   []SocialView `json:"social"`
}

// PageMetadata drives the link-preview tags of a profile page.
type PageMetadata struct {
	Title       string
	Description string
	Image       string
	ImageWidth  int
	ImageHeight int
	ImageAlt    string
	TwitterCard string
}

// BioUpdate carries the editable profile fields. Username and the owning
// user reference are immutable.
type BioUpdate struct {
	Name   string
	Avatar string
	Cover  string
	Bio    string
	Links  []models.LinkItem
	Social []models.SocialItem
}

// ProfileService handles profile reads, edits, and page metadata.
type ProfileService struct {
	bioRepo repositories.BioRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(bioRepo repositories.BioRepository) *ProfileService {
	return &ProfileService{
		bioRepo: bioRepo,
	}
}

// GetBioByUsername fetches a profile by exact username match and normalizes
// it for transport. A missing profile is (nil, nil): absence is an expected
// outcome, not a failure.
func (s *ProfileService) GetBioByUsername(username string) (*BioView, error) {
	bio, err := s.bioRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if bio == nil {
		return nil, nil
	}
	return toBioView(bio), nil
}

// GetBioByUserID fetches the profile owned by the given user.
func (s *ProfileService) GetBioByUserID(userID string) (*BioView, error) {
	bio, err := s.bioRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return toBioView(bio), nil
}

// UpdateBio replaces the editable fields of the caller's profile.
// Link entries without an identifier are assigned one.
func (s *ProfileService) UpdateBio(userID string, update *BioUpdate) (*BioView, error) {
	bio, err := s.bioRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	bio.Name = update.Name
	bio.Avatar = update.Avatar
	bio.Cover = update.Cover
	bio.Bio = update.Bio
	bio.Links = update.Links
	bio.Social = update.Social
	if bio.Links == nil {
		bio.Links = []models.LinkItem{}
	}
	if bio.Social == nil {
		bio.Social = []models.SocialItem{}
	}
	for i := range bio.Links {
		if bio.Links[i].ID == "" {
			bio.Links[i].ID = uuid.New().String()
		}
	}

	if err := s.bioRepo.Update(bio); err != nil {
		return nil, fmt.Errorf("failed to update bio: %w", err)
	}
	return toBioView(bio), nil
}

// GenerateMetadata derives the link-preview metadata for a username.
// Deterministic given the stored profile; absence yields the fixed fallback.
func (s *ProfileService) GenerateMetadata(username string) (PageMetadata, error) {
	view, err := s.GetBioByUsername(username)
	if err != nil {
		return PageMetadata{}, err
	}
	if view == nil {
		return FallbackMetadata(), nil
	}
	return MetadataForBio(view), nil
}

// FallbackMetadata is shown whenever no profile matches the requested username.
func FallbackMetadata() PageMetadata {
	return PageMetadata{
		Title:       notFoundTitle,
		Description: notFoundDescription,
		Image:       defaultPreviewImage,
		ImageWidth:  1200,
		ImageHeight: 630,
		ImageAlt:    "User's cover image",
		TwitterCard: "summary_large_image",
	}
}

// MetadataForBio derives preview metadata from an already-fetched profile.
func MetadataForBio(view *BioView) PageMetadata {
	displayName := view.Name
	if displayName == "" {
		displayName = view.Username
	}

	description := view.Bio
	if description == "" {
		description = fallbackDescription
	}

	image := view.Cover
	if image == "" {
		image = view.Avatar
	}
	if image == "" {
		image = defaultPreviewImage
	}

	altName := view.Name
	if altName == "" {
		altName = "User"
	}

	return PageMetadata{
		Title:       fmt.Sprintf("%s | Magic Bio", displayName),
		Description: description,
		Image:       image,
		ImageWidth:  1200,
		ImageHeight: 630,
		ImageAlt:    fmt.Sprintf("%s's cover image", altName),
		TwitterCard: "summary_large_image",
	}
}

// toBioView converts a stored profile into its transport form. Rendering
// defaults (card size, layout direction) are resolved here so templates
// never see empty enum fields.
func toBioView(bio *models.Bio) *BioView {
	view := &BioView{
		ID:       bio.ID,
		UserID:   bio.UserID,
		Username: bio.Username,
		Name:     bio.Name,
		Avatar:   bio.Avatar,
		Cover:    bio.Cover,
		Bio:      bio.Bio,
		Links:    make([]LinkView, 0, len(bio.Links)),
		Social:   make([]SocialView, 0, len(bio.Social)),
	}

	for _, link := range bio.Links {
		direction := link.Direction
		if direction == "" {
			direction = "row"
		}
		size := link.Size
		if size == "" {
			size = "m" // Cards default to medium when unset
		}
		view.Links = append(view.Links, LinkView{
			ID:          link.ID,
			Title:       link.Title,
			Description: link.Description,
			URL:         link.URL,
			Favicon:     link.Favicon,
			Media:       link.Media,
			Direction:   direction,
			Size:        size,
		})
	}

	for _, social := range bio.Social {
		view.Social = append(view.Social, SocialView(social))
	}

	return view
}
