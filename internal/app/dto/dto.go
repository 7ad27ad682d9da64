package dto

import "time"

// ============ Structures communes ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"` // code machine (erreurs de validation)
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Authentification ============

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Function  string `json:"function,omitempty"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateProfileRequest — patch partiel du profil: un champ nil reste inchangé
type UpdateProfileRequest struct {
	Function *string `json:"function"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
}

// ============ Demandes d'appareils ============

type BeneficiaryPayload struct {
	LastName        string `json:"nom" binding:"required"`
	FirstName       string `json:"prenom" binding:"required"`
	Matricule       string `json:"matricule" binding:"required"`
	School          string `json:"ecole" binding:"required"`
	Class           string `json:"classe" binding:"required"`
	NeedCategory    string `json:"besoin" binding:"required,oneof=EBS ESEB i-EBS"`
	ReferencePerson string `json:"personne_reference"`
}

type CreateRequestRequest struct {
	Devices                 []string           `json:"devices" binding:"required,min=1"`
	ApplicationRequirements string             `json:"application_requirements"`
	Beneficiary             BeneficiaryPayload `json:"beneficiaire" binding:"required"`
	ReceiptLocation         string             `json:"lieu_reception"`
	EndOfLoanCondition      string             `json:"condition_fin_pret"`
	Phone                   string             `json:"phone"`
	Address                 string             `json:"address"`
}

// UpdateRequestRequest — patch partiel: un champ nil est absent de la
// requête et reste inchangé, un champ non-nil est appliqué tel quel.
// Le statut est obligatoire sur chaque mise à jour.
type UpdateRequestRequest struct {
	Status              string             `json:"status" binding:"required"`
	DeviceSerialNumbers *map[string]string `json:"device_serial_numbers"`
	DeviceAssetTags     *map[string]string `json:"device_asset_tags"`
	AdminNotes          *string            `json:"admin_notes"`
	ReceiptLocation     *string            `json:"lieu_reception"`
	EndOfLoanCondition  *string            `json:"condition_fin_pret"`
}

type BeneficiaryResponse struct {
	LastName        string `json:"nom"`
	FirstName       string `json:"prenom"`
	Matricule       string `json:"matricule"`
	School          string `json:"ecole"`
	Class           string `json:"classe"`
	NeedCategory    string `json:"besoin"`
	ReferencePerson string `json:"personne_reference,omitempty"`
}

// UserInfo — vue dénormalisée du demandeur (jointure en lecture)
type UserInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

type RequestResponse struct {
	ID                      string              `json:"id"`
	UserID                  string              `json:"user_id"`
	Devices                 []string            `json:"devices"`
	ApplicationRequirements string              `json:"application_requirements"`
	Beneficiary             BeneficiaryResponse `json:"beneficiaire"`
	ReceiptLocation         string              `json:"lieu_reception,omitempty"`
	EndOfLoanCondition      string              `json:"condition_fin_pret,omitempty"`
	Phone                   string              `json:"phone,omitempty"`
	Address                 string              `json:"address,omitempty"`
	Status                  string              `json:"status"`
	DeviceSerialNumbers     map[string]string   `json:"device_serial_numbers,omitempty"`
	DeviceAssetTags         map[string]string   `json:"device_asset_tags,omitempty"`
	AdminNotes              string              `json:"admin_notes,omitempty"`
	DocumentGenerated       bool                `json:"document_generated"`
	DocumentKey             string              `json:"document_key,omitempty"`
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
	UserInfo                *UserInfo           `json:"user_info,omitempty"`
}

type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
	Total    int               `json:"total"`
}

type CreateRequestResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// ============ Tableau de bord ============

type DashboardStatsResponse struct {
	TotalRequests     int64            `json:"total_requests"`
	PendingRequests   int64            `json:"pending_requests"`
	ApprovedRequests  int64            `json:"approved_requests"`
	CompletedRequests int64            `json:"completed_requests"`
	StatusBreakdown   map[string]int64 `json:"status_breakdown"`
}
