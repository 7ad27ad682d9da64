package repository

import (
	"fmt"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/ds"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Repository — accès au magasin persistant. Instance injectée dans les
// composants, aucun singleton global.
type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Migration automatique des tables
	err = db.AutoMigrate(
		&ds.User{},
		&ds.DeviceRequest{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}
