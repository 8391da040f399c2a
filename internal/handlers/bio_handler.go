package handlers

import (
	"fmt"
	"log"

	"magicbio/internal/models"
	"magicbio/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BioHandler handles the authenticated profile-editing API.
type BioHandler struct {
	profileService *services.ProfileService
	validate       *validator.Validate
}

// NewBioHandler creates a new BioHandler.
func NewBioHandler(profileService *services.ProfileService) *BioHandler {
	return &BioHandler{
		profileService: profileService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the bio routes behind the given auth middleware.
func (h *BioHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	bioRoutes := router.Group("/bio", auth)
	bioRoutes.Get("/me", h.HandleGetOwnBio)
	bioRoutes.Put("/me", h.HandleUpdateOwnBio)
}

// UpdateBioRequest is the request body for profile edits.
type UpdateBioRequest struct {
	Name   string              `json:"name" validate:"omitempty,max=100"`
	Avatar string              `json:"avatar" validate:"omitempty,url"`
	Cover  string              `json:"cover" validate:"omitempty,url"`
	Bio    string              `json:"bio" validate:"omitempty,max=500"`
	Links  []models.LinkItem   `json:"links" validate:"dive"`
	Social []models.SocialItem `json:"social" validate:"dive"`
}

// HandleGetOwnBio returns the authenticated user's profile.
func (h *BioHandler) HandleGetOwnBio(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	view, err := h.profileService.GetBioByUserID(userID)
	if err != nil {
		log.Printf("Error fetching bio for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(view)
}

// HandleUpdateOwnBio replaces the editable fields of the authenticated
// user's profile.
func (h *BioHandler) HandleUpdateOwnBio(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	var req UpdateBioRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing bio update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": errorMessages,
		})
	}

	view, err := h.profileService.UpdateBio(userID, &services.BioUpdate{
		Name:   req.Name,
		Avatar: req.Avatar,
		Cover:  req.Cover,
		Bio:    req.Bio,
		Links:  req.Links,
		Social: req.Social,
	})
	if err != nil {
		log.Printf("Error updating bio for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.JSON(view)
}

// callerID extracts the authenticated user ID stored by the JWT middleware.
func callerID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("missing user_id claim")
	}
	return userID, nil
}
