package repository

import (
	"errors"
	"time"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/apperr"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/ds"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Méthodes pour les demandes d'appareils

func (r *Repository) CreateRequest(req *ds.DeviceRequest) (*ds.DeviceRequest, error) {
	now := time.Now()
	req.ID = uuid.New().String()
	req.Status = ds.StatusPending
	req.CreatedAt = now
	req.UpdatedAt = now

	err := r.db.Create(req).Error
	if err != nil {
		return nil, err
	}

	return req, nil
}

func (r *Repository) GetRequestByID(id string) (*ds.DeviceRequest, error) {
	var req ds.DeviceRequest
	err := r.db.Where("id = ?", id).First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperr.NotFoundError{Resource: "demande"}
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetAllRequests retourne toutes les demandes avec le demandeur préchargé
// (jointure en lecture, vue dénormalisée pour les administrateurs)
func (r *Repository) GetAllRequests() ([]ds.DeviceRequest, error) {
	var requests []ds.DeviceRequest
	err := r.db.Preload("Submitter").Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// GetRequestsByUser retourne les demandes d'un seul demandeur
func (r *Repository) GetRequestsByUser(userID string) ([]ds.DeviceRequest, error) {
	var requests []ds.DeviceRequest
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// UpdateRequestFields applique un patch partiel: seules les clés présentes
// dans updates sont modifiées. L'horodatage de mise à jour est toujours
// rafraîchi. Dernier écrivain gagnant en cas de mises à jour concurrentes
// (pas de jeton de version, choix assumé).
func (r *Repository) UpdateRequestFields(id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&ds.DeviceRequest{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Resource: "demande"}
	}
	return nil
}

// SetDocumentArtifact enregistre la clé du dernier document généré
func (r *Repository) SetDocumentArtifact(id string, key string) error {
	return r.db.Model(&ds.DeviceRequest{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"document_generated": true,
			"document_key":       key,
		}).Error
}

// DeleteRequest supprime définitivement une demande
func (r *Repository) DeleteRequest(id string) error {
	result := r.db.Where("id = ?", id).Delete(&ds.DeviceRequest{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Resource: "demande"}
	}
	return nil
}

func (r *Repository) CountRequests() (int64, error) {
	var count int64
	err := r.db.Model(&ds.DeviceRequest{}).Count(&count).Error
	return count, err
}

func (r *Repository) CountRequestsByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&ds.DeviceRequest{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

type statusCount struct {
	Status string
	Count  int64
}

// CountRequestsGroupedByStatus — agrégation nombre de demandes par statut
func (r *Repository) CountRequestsGroupedByStatus() (map[string]int64, error) {
	var rows []statusCount
	err := r.db.Model(&ds.DeviceRequest{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]int64, len(rows))
	for _, row := range rows {
		breakdown[row.Status] = row.Count
	}
	return breakdown, nil
}
