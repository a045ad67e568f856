package services

import (
	"errors"
	"strings"
	"time"

	"github.com/trackora/trackora/internal/models"
)

var (
	ErrProtocolTitleRequired   = errors.New("protocol title is required")
	ErrProtocolInvalidCategory = errors.New("invalid protocol category")
	ErrProtocolInvalidTime     = errors.New("protocol time must be positive")
	ErrProtocolInvalidPriority = errors.New("invalid protocol priority")
)

type CatalogRepository interface {
	ListByUser(userID uint) ([]models.Protocol, error)
	FindByIDForUser(protocolID uint, userID uint) (models.Protocol, bool, error)
	Create(protocol *models.Protocol) error
	CreateBatch(protocols []models.Protocol) error
	DeleteByIDForUser(protocolID uint, userID uint) error
}

type ProtocolInput struct {
	Title       string
	Description string
	Category    string
	Time        int
	XP          int
	Priority    string
}

type ProtocolService struct {
	catalog CatalogRepository
}

func NewProtocolService(catalog CatalogRepository) *ProtocolService {
	return &ProtocolService{catalog: catalog}
}

// DeriveXP is the default reward when none is supplied explicitly.
func DeriveXP(timeMinutes int) int {
	return timeMinutes / models.XPMinutesPerPoint
}

func ValidateProtocolInput(input ProtocolInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrProtocolTitleRequired
	}
	if !models.IsValidCategory(input.Category) {
		return ErrProtocolInvalidCategory
	}
	if input.Time <= 0 {
		return ErrProtocolInvalidTime
	}
	if input.Priority != "" && !models.IsValidPriority(input.Priority) {
		return ErrProtocolInvalidPriority
	}
	return nil
}

func (service *ProtocolService) Add(userID uint, input ProtocolInput, now time.Time) (models.Protocol, error) {
	if err := ValidateProtocolInput(input); err != nil {
		return models.Protocol{}, err
	}

	xp := input.XP
	if xp <= 0 {
		xp = DeriveXP(input.Time)
	}
	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	protocol := models.Protocol{
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Time:        input.Time,
		XP:          xp,
		Priority:    priority,
		CreatedAt:   now,
	}
	if err := service.catalog.Create(&protocol); err != nil {
		return models.Protocol{}, err
	}
	return protocol, nil
}

// SeedDefaults creates the starter catalog for a freshly registered user.
func (service *ProtocolService) SeedDefaults(userID uint, now time.Time) ([]models.Protocol, error) {
	defaults := models.DefaultProtocols()
	protocols := make([]models.Protocol, 0, len(defaults))
	for _, entry := range defaults {
		protocols = append(protocols, models.Protocol{
			UserID:      userID,
			Title:       entry.Title,
			Description: entry.Description,
			Category:    entry.Category,
			Time:        entry.Time,
			XP:          entry.XP,
			Priority:    entry.Priority,
			IsDefault:   true,
			CreatedAt:   now,
		})
	}
	if err := service.catalog.CreateBatch(protocols); err != nil {
		return nil, err
	}
	return protocols, nil
}

// List returns the catalog in stored order, optionally restricted to one
// category.
func (service *ProtocolService) List(userID uint, categoryFilter string) ([]models.Protocol, error) {
	protocols, err := service.catalog.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if categoryFilter == "" {
		return protocols, nil
	}

	filtered := make([]models.Protocol, 0, len(protocols))
	for _, protocol := range protocols {
		if protocol.Category == categoryFilter {
			filtered = append(filtered, protocol)
		}
	}
	return filtered, nil
}

// Search matches a case-insensitive substring against title, description
// and category, preserving catalog order.
func (service *ProtocolService) Search(userID uint, query string) ([]models.Protocol, error) {
	protocols, err := service.catalog.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return protocols, nil
	}

	matched := make([]models.Protocol, 0, len(protocols))
	for _, protocol := range protocols {
		if strings.Contains(strings.ToLower(protocol.Title), term) ||
			strings.Contains(strings.ToLower(protocol.Description), term) ||
			strings.Contains(strings.ToLower(protocol.Category), term) {
			matched = append(matched, protocol)
		}
	}
	return matched, nil
}

func (service *ProtocolService) FindForUser(protocolID uint, userID uint) (models.Protocol, bool, error) {
	return service.catalog.FindByIDForUser(protocolID, userID)
}

// Remove deletes a catalog entry. Removing an absent ID is a no-op, and
// historical ledger rows are left untouched.
func (service *ProtocolService) Remove(userID uint, protocolID uint) error {
	return service.catalog.DeleteByIDForUser(protocolID, userID)
}
