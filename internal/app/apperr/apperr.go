package apperr

import (
	"errors"
	"fmt"
)

// Codes machine pour les erreurs de validation
const (
	CodeInvalidAssetTag = "invalid_asset_tag"
	CodeMissingSerial   = "missing_serial"
	CodeUnknownDevice   = "unknown_device"
)

// NotFoundError — ressource inexistante (demande ou utilisateur)
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s introuvable", e.Resource)
}

// AccessDeniedError — rôle ou propriété insuffisants
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "accès refusé"
}

// ValidationError — champ invalide, avec code machine et appareil concerné
type ValidationError struct {
	Code    string
	Device  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AuthError — jeton de session absent, invalide ou expiré
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// DependencyError — échec d'un collaborateur externe (rendu PDF, webhook).
// Contenue à la frontière du cycle de vie, jamais exposée à l'appelant.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}

func IsAccessDenied(err error) bool {
	var t *AccessDeniedError
	return errors.As(err, &t)
}

func IsValidation(err error) bool {
	var t *ValidationError
	return errors.As(err, &t)
}
