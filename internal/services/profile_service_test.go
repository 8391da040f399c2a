package services_test

import (
	"testing"

	"magicbio/internal/models"
	"magicbio/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBioRepository is a mock implementation of repositories.BioRepository
type MockBioRepository struct {
	mock.Mock
}

func (m *MockBioRepository) GetByUsername(username string) (*models.Bio, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bio), args.Error(1)
}

func (m *MockBioRepository) GetByUserID(userID string) (*models.Bio, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bio), args.Error(1)
}

func (m *MockBioRepository) Update(bio *models.Bio) error {
	args := m.Called(bio)
	return args.Error(0)
}

func sampleBio() *models.Bio {
	return &models.Bio{
		ID:       "bio-1",
		UserID:   "user-1",
		Username: "alice",
		Name:     "Alice",
		Avatar:   "https://cdn.example.com/alice.png",
		Cover:    "https://cdn.example.com/cover.png",
		Bio:      "Hi there",
		Links: []models.LinkItem{
			{ID: "link-1", Title: "Blog", URL: "https://a.example.com", Direction: "column", Size: "l"},
			{Title: "Shop", URL: "https://b.example.com"},
			{Title: "Music", URL: "https://c.example.com", Favicon: true},
		},
		Social: []models.SocialItem{
			{Name: "GitHub", Icon: "/icons/github.svg", Link: "https://github.com/alice"},
		},
	}
}

func TestProfileService_GetBioByUsername(t *testing.T) {
	mockRepo := new(MockBioRepository)
	profileService := services.NewProfileService(mockRepo)

	mockRepo.On("GetByUsername", "alice").Return(sampleBio(), nil).Once()

	view, err := profileService.GetBioByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, view)

	assert.Equal(t, "bio-1", view.ID)
	assert.Equal(t, "user-1", view.UserID)
	assert.Equal(t, "alice", view.Username)

	// Links keep their stored order
	require.Len(t, view.Links, 3)
	assert.Equal(t, "https://a.example.com", view.Links[0].URL)
	assert.Equal(t, "https://b.example.com", view.Links[1].URL)
	assert.Equal(t, "https://c.example.com", view.Links[2].URL)

	// Explicit layout fields survive, unset ones get rendering defaults
	assert.Equal(t, "column", view.Links[0].Direction)
	assert.Equal(t, "l", view.Links[0].Size)
	assert.Equal(t, "row", view.Links[1].Direction)
	assert.Equal(t, "m", view.Links[1].Size)

	// Sub-identifiers carry over only when present
	assert.Equal(t, "link-1", view.Links[0].ID)
	assert.Empty(t, view.Links[1].ID)

	require.Len(t, view.Social, 1)
	assert.Equal(t, "GitHub", view.Social[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_GetBioByUsername_Absent(t *testing.T) {
	mockRepo := new(MockBioRepository)
	profileService := services.NewProfileService(mockRepo)

	// Absence is an expected outcome, not an error
	mockRepo.On("GetByUsername", "nobody").Return(nil, nil).Once()

	view, err := profileService.GetBioByUsername("nobody")
	assert.NoError(t, err)
	assert.Nil(t, view)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_GenerateMetadata(t *testing.T) {
	mockRepo := new(MockBioRepository)
	profileService := services.NewProfileService(mockRepo)

	mockRepo.On("GetByUsername", "alice").Return(sampleBio(), nil).Once()

	meta, err := profileService.GenerateMetadata("alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice | Magic Bio", meta.Title)
	assert.Equal(t, "Hi there", meta.Description)
	assert.Equal(t, "https://cdn.example.com/cover.png", meta.Image)
	assert.Equal(t, 1200, meta.ImageWidth)
	assert.Equal(t, 630, meta.ImageHeight)
	assert.Equal(t, "Alice's cover image", meta.ImageAlt)
	assert.Equal(t, "summary_large_image", meta.TwitterCard)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_GenerateMetadata_Fallbacks(t *testing.T) {
	mockRepo := new(MockBioRepository)
	profileService := services.NewProfileService(mockRepo)

	// Sparse profile: no display name, no bio text, no cover
	bio := sampleBio()
	bio.Name = ""
	bio.Bio = ""
	bio.Cover = ""
	mockRepo.On("GetByUsername", "alice").Return(bio, nil).Once()

	meta, err := profileService.GenerateMetadata("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice | Magic Bio", meta.Title)
	assert.Equal(t, "Check out my links!", meta.Description)
	assert.Equal(t, "https://cdn.example.com/alice.png", meta.Image)
	assert.Equal(t, "User's cover image", meta.ImageAlt)

	// No imagery at all falls back to the default asset
	bare := sampleBio()
	bare.Cover = ""
	bare.Avatar = ""
	mockRepo.On("GetByUsername", "alice").Return(bare, nil).Once()

	meta, err = profileService.GenerateMetadata("alice")
	require.NoError(t, err)
	assert.Equal(t, "/images/og.jpg", meta.Image)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_GenerateMetadata_NotFound(t *testing.T) {
	mockRepo := new(MockBioRepository)
	profileService := services.NewProfileService(mockRepo)

	mockRepo.On("GetByUsername", "nobody").Return(nil, nil).Once()

	meta, err := profileService.GenerateMetadata("nobody")
	require.NoError(t, err)
	assert.Equal(t, "Profile Not Found", meta.Title)
	assert.Equal(t, "The profile you are looking for does not exist.", meta.Description)
	assert.Equal(t, "/images/og.jpg", meta.Image)
	mockRepo.AssertExpectations(t)
}

func TestProfileService_MetadataDeterministic(t *testing.T) {
	view := &services.BioView{Username: "alice", Name: "Alice", Bio: "Hi"}

	first := services.MetadataForBio(view)
	second := services.MetadataForBio(view)
	assert.Equal(t, first, second)
}

func TestProfileService_UpdateBio(t *testing.T) {
	mockRepo := new(MockBioRepository)
	profileService := services.NewProfileService(mockRepo)

	stored := sampleBio()
	mockRepo.On("GetByUserID", "user-1").Return(stored, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Bio")).Return(nil).Once()

	view, err := profileService.UpdateBio("user-1", &services.BioUpdate{
		Name: "Alice W.",
		Bio:  "Updated",
		Links: []models.LinkItem{
			{Title: "New", URL: "https://new.example.com"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice W.", view.Name)
	assert.Equal(t, "Updated", view.Bio)
	// Username and ownership never change through an edit
	assert.Equal(t, "alice", view.Username)
	assert.Equal(t, "user-1", view.UserID)

	// New link entries are assigned identifiers
	require.Len(t, view.Links, 1)
	assert.NotEmpty(t, view.Links[0].ID)

	// Cleared sequences stay empty, not nil
	assert.NotNil(t, stored.Social)
	assert.Empty(t, stored.Social)
	mockRepo.AssertExpectations(t)
}
