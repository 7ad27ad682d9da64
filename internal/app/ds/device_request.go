package ds

import "time"

// Statuts reconnus d'une demande. Le champ Status reste une chaîne ouverte:
// un statut inconnu est accepté tel quel (compatibilité ascendante avec des
// statuts définis par les administrateurs).
const (
	StatusPending   = "en_attente"
	StatusApproved  = "approuve"
	StatusPrepared  = "prepare"
	StatusCompleted = "termine"
)

// Appareils connus du catalogue
const (
	DeviceIPad        = "ipad"
	DeviceMacBook     = "macbook"
	DeviceApplePencil = "apple_pencil"
)

// Beneficiary — bénéficiaire de la demande (souvent un élève), objet-valeur
// imbriqué dans la demande, sans cycle de vie propre.
type Beneficiary struct {
	LastName        string `gorm:"type:varchar(100)"`
	FirstName       string `gorm:"type:varchar(100)"`
	Matricule       string `gorm:"type:varchar(30)"` // identifiant stable (matricule national)
	School          string `gorm:"type:varchar(150)"`
	Class           string `gorm:"type:varchar(30)"`
	NeedCategory    string `gorm:"type:varchar(20)"` // EBS, ESEB, i-EBS
	ReferencePerson string `gorm:"type:varchar(100)"`
}

// Table des demandes d'appareils
type DeviceRequest struct {
	ID     string `gorm:"type:uuid;primaryKey"`
	UserID string `gorm:"type:uuid;not null;index"`

	Devices                 StringList `gorm:"type:jsonb;not null"`
	ApplicationRequirements string     `gorm:"type:text"`

	Beneficiary Beneficiary `gorm:"embedded;embeddedPrefix:beneficiary_"`

	// Logistique
	ReceiptLocation    string `gorm:"type:varchar(150)"` // lieu de remise
	EndOfLoanCondition string `gorm:"type:varchar(150)"` // condition de fin de prêt

	// Contact
	Phone   string `gorm:"type:varchar(30)"`
	Address string `gorm:"type:varchar(255)"`

	Status string `gorm:"type:varchar(30);not null;index"`

	DeviceSerialNumbers StringMap `gorm:"type:jsonb"`
	DeviceAssetTags     StringMap `gorm:"type:jsonb"`
	AdminNotes          string    `gorm:"type:text"`

	// Document officiel généré (dernier artefact uniquement)
	DocumentGenerated bool   `gorm:"not null;default:false"`
	DocumentKey       string `gorm:"type:varchar(100)"` // clé d'artefact adressée par contenu

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Submitter User `gorm:"foreignKey:UserID"`
}
