// Package validation contient les règles métier pures appliquées avant
// toute mutation d'une demande. Aucun état, aucun effet de bord.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/apperr"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/ds"
)

// Format d'asset tag: H suivi de 5 chiffres
var assetTagPattern = regexp.MustCompile(`^H\d{5}$`)

// Appareils pour lesquels un numéro de série est obligatoire lors du
// passage en "approuve" ou "prepare". Les accessoires (stylets) sont exemptés.
var mandatorySerialDevices = map[string]bool{
	ds.DeviceIPad:    true,
	ds.DeviceMacBook: true,
}

// ValidateAssetTags vérifie le format des asset tags. Un tag vide est
// autorisé (pas encore attribué); tout tag non vide doit respecter H12345.
func ValidateAssetTags(tags map[string]string) error {
	for device, tag := range tags {
		if tag == "" {
			continue
		}
		if !assetTagPattern.MatchString(tag) {
			return &apperr.ValidationError{
				Code:    apperr.CodeInvalidAssetTag,
				Device:  device,
				Message: fmt.Sprintf("Asset tag pour %s doit être au format H12345 (H suivi de 5 chiffres)", device),
			}
		}
	}
	return nil
}

// EffectiveMap retourne la map résultant d'un patch intégral: une map
// fournie remplace entièrement la map existante, une map absente (nil) la
// laisse inchangée. Les règles de validation s'appliquent toujours au
// résultat de cette fusion, jamais au seul patch.
func EffectiveMap(existing map[string]string, patch *map[string]string) map[string]string {
	if patch != nil {
		return *patch
	}
	return existing
}

// ValidateDeviceSubset vérifie que les clés d'une map appareil->valeur sont
// un sous-ensemble des appareils demandés.
func ValidateDeviceSubset(devices []string, m map[string]string) error {
	requested := make(map[string]bool, len(devices))
	for _, d := range devices {
		requested[d] = true
	}
	for device := range m {
		if !requested[device] {
			return &apperr.ValidationError{
				Code:    apperr.CodeUnknownDevice,
				Device:  device,
				Message: fmt.Sprintf("L'appareil %s ne fait pas partie de la demande", device),
			}
		}
	}
	return nil
}

// ValidateApprovalReadiness vérifie que chaque appareil demandé soumis à
// numéro de série obligatoire en possède un non vide lorsque le statut cible
// est "approuve" ou "prepare". serials est la map effective (état existant
// fusionné avec le patch).
func ValidateApprovalReadiness(devices []string, serials map[string]string, targetStatus string) error {
	if targetStatus != ds.StatusApproved && targetStatus != ds.StatusPrepared {
		return nil
	}
	for _, device := range devices {
		if !mandatorySerialDevices[device] {
			continue
		}
		if strings.TrimSpace(serials[device]) == "" {
			return &apperr.ValidationError{
				Code:   apperr.CodeMissingSerial,
				Device: device,
				Message: fmt.Sprintf("Numéro de série obligatoire pour %s lors du passage au statut %s",
					DeviceLabel(device), targetStatus),
			}
		}
	}
	return nil
}

// DeviceLabel retourne le libellé lisible d'un code appareil.
func DeviceLabel(device string) string {
	switch device {
	case ds.DeviceIPad:
		return "iPad"
	case ds.DeviceMacBook:
		return "MacBook"
	case ds.DeviceApplePencil:
		return "Apple Pencil"
	}
	// Code inconnu: "autre_chose" -> "Autre Chose"
	parts := strings.Split(device, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(p)
		parts[i] = string(unicode.ToUpper(first)) + p[size:]
	}
	return strings.Join(parts, " ")
}
