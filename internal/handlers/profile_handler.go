package handlers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"magicbio/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ViewCounter records profile page views. Implementations live in
// pkg/viewcount; a nil counter disables counting.
type ViewCounter interface {
	Incr(ctx context.Context, username string) (int64, error)
}

// ProfileHandler serves the public server-rendered profile pages.
type ProfileHandler struct {
	profileService *services.ProfileService
	views          ViewCounter
	events         services.EventPublisher
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, views ViewCounter, events services.EventPublisher) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		views:          views,
		events:         events,
	}
}

// RegisterRoutes registers the catch-all profile page route. Must be
// registered after every other route so it does not shadow them.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/:username", h.HandleProfilePage)
}

// HandleProfilePage renders the public profile for the requested username,
// or the not-found fallback when no profile matches.
func (h *ProfileHandler) HandleProfilePage(c *fiber.Ctx) error {
	username := c.Params("username")

	bio, err := h.profileService.GetBioByUsername(username)
	if err != nil {
		log.Printf("Error loading profile %s: %v", username, err)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}

	if bio == nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{
			"Meta": services.FallbackMetadata(),
		})
	}

	h.recordView(username)

	return c.Render("profile", fiber.Map{
		"Meta": services.MetadataForBio(bio),
		"Bio":  bio,
		"Year": time.Now().Year(),
	})
}

// recordView bumps the view counter and emits a profile.viewed event.
// Both are side channels: failures are logged, never surfaced.
func (h *ProfileHandler) recordView(username string) {
	if h.views != nil {
		if _, err := h.views.Incr(context.Background(), username); err != nil {
			log.Printf("Warning: failed to count view for %s: %v", username, err)
		}
	}
	if h.events != nil {
		body, err := json.Marshal(map[string]interface{}{
			"username": username,
			"viewedAt": time.Now().Format(time.RFC3339),
		})
		if err == nil {
			if err := h.events.Publish("profile.viewed", body); err != nil {
				log.Printf("Warning: failed to publish profile.viewed for %s: %v", username, err)
			}
		}
	}
}
