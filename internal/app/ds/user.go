package ds

import "time"

// Table des utilisateurs
type User struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Email     string `gorm:"type:varchar(100);unique;not null"`
	Password  string `gorm:"type:varchar(255);not null"` // hash SHA-256
	FirstName string `gorm:"type:varchar(100);not null"`
	LastName  string `gorm:"type:varchar(100);not null"`
	Role      string `gorm:"type:varchar(20);not null;default:'user'"` // user, admin
	// Champs de profil modifiables
	Function string `gorm:"type:varchar(100)"` // fonction / titre
	Address  string `gorm:"type:varchar(255)"`
	Phone    string `gorm:"type:varchar(30)"`

	CreatedAt time.Time `gorm:"not null"`
}
