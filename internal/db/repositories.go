package db

import "gorm.io/gorm"

type Repositories struct {
	Users     *UserRepository
	Protocols *ProtocolRepository
	Progress  *ProgressRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(database),
		Protocols: NewProtocolRepository(database),
		Progress:  NewProgressRepository(database),
	}
}
