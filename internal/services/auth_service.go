package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"magicbio/internal/models"
	"magicbio/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// defaultBioText seeds the profile of every freshly registered user.
const defaultBioText = "Welcome to my bio page!"

// EventPublisher publishes domain events to the message broker.
// Implementations live in pkg/events; a nil publisher disables publishing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	events     EventPublisher
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, events EventPublisher, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		events:     events,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 1 day
	}
}

// Register creates a new user and their default profile. The user row and
// the bio row are written in one transaction, so a failed profile write
// never leaves an orphaned account behind.
func (s *AuthService) Register(username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
	}
	bio := &models.Bio{
		Username: username,
		Name:     username,
		Bio:      defaultBioText,
		Links:    []models.LinkItem{},
		Social:   []models.SocialItem{},
	}

	if err := s.userRepo.CreateWithBio(user, bio); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.publish("user.registered", map[string]interface{}{
		"userID":   user.ID,
		"username": user.Username,
	})

	return nil
}

// Login authenticates a user and returns a JWT token if successful.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":      time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// publish sends a domain event, logging and swallowing failures: events are
// a side channel and must never fail the request that produced them.
func (s *AuthService) publish(routingKey string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
