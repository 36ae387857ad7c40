package db

import (
	"github.com/terraincognita07/skycast/internal/models"
	"gorm.io/gorm"
)

type PreferenceRepository struct {
	database *gorm.DB
}

func NewPreferenceRepository(database *gorm.DB) *PreferenceRepository {
	return &PreferenceRepository{database: database}
}

// ListByUser returns the user's preferences ordered favorites first, then
// alphabetically by city name.
func (repo *PreferenceRepository) ListByUser(userID uint) ([]models.WeatherPreference, error) {
	preferences := make([]models.WeatherPreference, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("is_favorite DESC, city_name ASC").
		Find(&preferences).Error; err != nil {
		return nil, err
	}
	return preferences, nil
}

func (repo *PreferenceRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.WeatherPreference{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *PreferenceRepository) ExistsByUserAndCity(userID uint, cityName string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.WeatherPreference{}).
		Where("user_id = ? AND city_name = ?", userID, cityName).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *PreferenceRepository) FindByUserAndCity(userID uint, cityName string) (models.WeatherPreference, bool, error) {
	var preference models.WeatherPreference
	result := repo.database.
		Where("user_id = ? AND city_name = ?", userID, cityName).
		Limit(1).
		Find(&preference)
	if result.Error != nil {
		return models.WeatherPreference{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeatherPreference{}, false, nil
	}
	return preference, true, nil
}

func (repo *PreferenceRepository) Create(preference *models.WeatherPreference) error {
	return repo.database.Create(preference).Error
}

// DeleteByIDForUser deletes the preference only when it belongs to userID and
// reports how many rows were removed.
func (repo *PreferenceRepository) DeleteByIDForUser(preferenceID uint, userID uint) (int64, error) {
	result := repo.database.
		Where("id = ? AND user_id = ?", preferenceID, userID).
		Delete(&models.WeatherPreference{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
