// Package document génère le document officiel de prêt (PDF paginé) à
// partir de l'état courant d'une demande et d'un instantané du demandeur.
// Lecture seule: la demande n'est jamais modifiée.
package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/ds"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/validation"

	"github.com/go-pdf/fpdf"
)

// Valeur affichée pour tout champ optionnel absent, afin que le document
// garde une structure identique quelles que soient les données fournies.
const placeholder = "N/A"

const (
	labelColWidth = 60.0
	valueColWidth = 120.0
	rowHeight     = 8.0
)

// Renderer construit le document officiel d'une demande
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produit les octets PDF du document officiel. Déterministe pour des
// entrées identiques, à l'exception de l'horodatage de génération.
func (r *Renderer) Render(req *ds.DeviceRequest, submitter *ds.User) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// En-tête / papier à lettres
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, tr("DEMANDE D'APPAREIL ÉDUCATIF"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(0, 5, tr("Service ESEB — Prêt de matériel informatique"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Généré le %s", time.Now().Format("02/01/2006 15:04"))), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetTextColor(0, 0, 0)

	r.sectionTitle(pdf, tr, "INFORMATIONS DU DEMANDEUR")
	r.table(pdf, tr, [][2]string{
		{"ID de demande", req.ID},
		{"Date de demande", req.CreatedAt.Format("02/01/2006")},
		{"Statut", orPlaceholder(req.Status)},
		{"Nom", fmt.Sprintf("%s %s", submitter.FirstName, submitter.LastName)},
		{"Email", submitter.Email},
		{"Fonction", orPlaceholder(submitter.Function)},
		{"Téléphone", orPlaceholder(firstNonEmpty(req.Phone, submitter.Phone))},
		{"Adresse", orPlaceholder(firstNonEmpty(req.Address, submitter.Address))},
	})

	r.sectionTitle(pdf, tr, "INFORMATIONS DU BÉNÉFICIAIRE")
	b := req.Beneficiary
	r.table(pdf, tr, [][2]string{
		{"Nom", orPlaceholder(b.LastName)},
		{"Prénom", orPlaceholder(b.FirstName)},
		{"Matricule", orPlaceholder(b.Matricule)},
		{"École", orPlaceholder(b.School)},
		{"Classe", orPlaceholder(b.Class)},
		{"Catégorie de besoin", orPlaceholder(b.NeedCategory)},
		{"Personne de référence", orPlaceholder(b.ReferencePerson)},
	})

	r.sectionTitle(pdf, tr, "MATÉRIEL DEMANDÉ")
	rows := make([][2]string, 0, len(req.Devices)+1)
	for _, device := range req.Devices {
		detail := "Quantité: 1"
		if serial := req.DeviceSerialNumbers[device]; serial != "" {
			detail += " / No de série: " + serial
		}
		if tag := req.DeviceAssetTags[device]; tag != "" {
			detail += " / Asset tag: " + tag
		}
		rows = append(rows, [2]string{validation.DeviceLabel(device), detail})
	}
	rows = append(rows, [2]string{"Exigences logicielles", orPlaceholder(req.ApplicationRequirements)})
	r.table(pdf, tr, rows)

	r.sectionTitle(pdf, tr, "DURÉE DU PRÊT")
	r.table(pdf, tr, [][2]string{
		{"Lieu de remise", orPlaceholder(req.ReceiptLocation)},
		{"Condition de fin de prêt", orPlaceholder(req.EndOfLoanCondition)},
		{"Durée", "Année scolaire en cours, sauf mention contraire"},
	})

	// Bloc réservé à l'administration, complété manuellement
	r.sectionTitle(pdf, tr, "CADRE RÉSERVÉ À L'ADMINISTRATION")
	r.table(pdf, tr, [][2]string{
		{"Avis", "______________________________"},
		{"Date de traitement", "______________________________"},
		{"Visa", "______________________________"},
	})

	r.sectionTitle(pdf, tr, "ACCUSÉ DE RÉCEPTION")
	r.table(pdf, tr, [][2]string{
		{"Bénéficiaire", orPlaceholder(fmt.Sprintf("%s %s", b.FirstName, b.LastName))},
		{"Signature", "______________________________"},
		{"Date", "______________________________"},
	})

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4, tr("Ce document constitue l'enregistrement officiel du prêt. "+
		"Il doit être signé lors de la remise du matériel et conservé par le service ESEB."), "", "L", false)

	// Page 2: mention légale fixe
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, tr("MENTION LÉGALE ET PROTECTION DES DONNÉES"), "", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, tr(legalNotice), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) sectionTitle(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(1)
}

// table dessine un bloc libellé/valeur sur deux colonnes
func (r *Renderer) table(pdf *fpdf.Fpdf, tr func(string) string, rows [][2]string) {
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(labelColWidth, rowHeight, tr(row[0]), "1", 0, "L", true, 0, "")
		pdf.SetFillColor(245, 245, 220)
		pdf.CellFormat(valueColWidth, rowHeight, tr(row[1]), "1", 1, "L", true, 0, "")
	}
	pdf.Ln(4)
}

func orPlaceholder(s string) string {
	if s == "" || s == " " {
		return placeholder
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

const legalNotice = `Les données à caractère personnel recueillies dans le cadre de la présente demande ` +
	`sont traitées par le service ESEB aux seules fins de la gestion du prêt de matériel éducatif, ` +
	`conformément au règlement (UE) 2016/679 (RGPD). Elles sont conservées pendant la durée du prêt ` +
	`et archivées au maximum deux années scolaires après la restitution du matériel.

Le matériel prêté reste la propriété de l'établissement. Le bénéficiaire et son représentant légal ` +
	`s'engagent à en faire un usage strictement pédagogique, à le conserver en bon état et à le ` +
	`restituer à la fin du prêt ou sur demande du service. Toute perte, vol ou dégradation doit être ` +
	`signalé sans délai au service ESEB.

Conformément au RGPD, vous disposez d'un droit d'accès, de rectification et d'effacement des données ` +
	`vous concernant, à exercer auprès du délégué à la protection des données de l'établissement.`
