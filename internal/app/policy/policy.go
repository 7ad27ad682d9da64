// Package policy applique les règles d'accès aux demandes: un administrateur
// voit tout, un utilisateur ne voit que ses propres demandes.
package policy

import (
	"github.com/MxBrndl/Demandes-ESEB/internal/app/apperr"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/role"
)

// Identity — identité vérifiée de l'appelant, extraite du jeton de session
type Identity struct {
	UserID string
	Role   role.Role
}

// CanView retourne vrai si l'identité peut consulter une demande soumise
// par submitterID.
func CanView(id Identity, submitterID string) bool {
	return id.Role == role.Admin || id.UserID == submitterID
}

// RequireAdmin échoue avec une erreur d'autorisation si l'appelant n'est
// pas administrateur.
func RequireAdmin(id Identity) error {
	if id.Role != role.Admin {
		return &apperr.AccessDeniedError{Reason: "Accès réservé aux administrateurs"}
	}
	return nil
}

// RequireView échoue si l'identité ne peut pas consulter la demande.
func RequireView(id Identity, submitterID string) error {
	if !CanView(id, submitterID) {
		return &apperr.AccessDeniedError{Reason: "Accès refusé"}
	}
	return nil
}
