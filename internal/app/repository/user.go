package repository

import (
	"errors"
	"time"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/apperr"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Méthodes pour les utilisateurs

func (r *Repository) GetUserByID(id string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Resource: "utilisateur"}
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByEmail(email string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Resource: "utilisateur"}
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(email, passwordHash, firstName, lastName, userRole string) (*ds.User, error) {
	user := ds.User{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  passwordHash,
		FirstName: firstName,
		LastName:  lastName,
		Role:      userRole,
		CreatedAt: time.Now(),
	}

	err := r.db.Create(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateUserProfile met à jour les seuls champs de profil modifiables
func (r *Repository) UpdateUserProfile(id string, function, address, phone *string) error {
	updates := map[string]interface{}{}
	if function != nil {
		updates["function"] = *function
	}
	if address != nil {
		updates["address"] = *address
	}
	if phone != nil {
		updates["phone"] = *phone
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.User{}).Where("id = ?", id).Updates(updates).Error
}
