package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Profiles    *ProfileRepository
	Preferences *PreferenceRepository
	Snapshots   *SnapshotRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Profiles:    NewProfileRepository(database),
		Preferences: NewPreferenceRepository(database),
		Snapshots:   NewSnapshotRepository(database),
	}
}
