package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/skycast/internal/models"
)

type ProfileRepository interface {
	FindByUser(userID uint) (models.UserProfile, bool, error)
	Create(profile *models.UserProfile) error
	Save(profile *models.UserProfile) error
}

type ProfileService struct {
	profiles ProfileRepository
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// GetOrCreate returns the user's profile, creating it lazily on first
// access. At most one profile exists per user.
func (service *ProfileService) GetOrCreate(userID uint) (models.UserProfile, error) {
	profile, found, err := service.profiles.FindByUser(userID)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("load profile: %w", err)
	}
	if found {
		return profile, nil
	}

	now := time.Now().UTC()
	profile = models.UserProfile{
		UserID:       userID,
		Avatar:       models.DefaultAvatar,
		CreatedAt:    now,
		LastAccessAt: now,
	}
	if err := service.profiles.Create(&profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

// Update edits the profile fields and bumps last-access, creating the profile
// first when the user has none yet.
func (service *ProfileService) Update(userID uint, phoneNumber string, dateOfBirth *time.Time, avatar string) (models.UserProfile, error) {
	profile, err := service.GetOrCreate(userID)
	if err != nil {
		return models.UserProfile{}, err
	}

	profile.PhoneNumber = strings.TrimSpace(phoneNumber)
	profile.DateOfBirth = dateOfBirth
	if avatar = strings.TrimSpace(avatar); avatar != "" {
		profile.Avatar = avatar
	}
	profile.LastAccessAt = time.Now().UTC()

	if err := service.profiles.Save(&profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// TouchLastAccess bumps the last-access timestamp, called on login.
func (service *ProfileService) TouchLastAccess(userID uint) error {
	profile, err := service.GetOrCreate(userID)
	if err != nil {
		return err
	}
	profile.LastAccessAt = time.Now().UTC()
	if err := service.profiles.Save(&profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
