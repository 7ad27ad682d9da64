package document

import (
	"testing"
	"time"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() *ds.DeviceRequest {
	return &ds.DeviceRequest{
		ID:                      "11111111-2222-3333-4444-555555555555",
		UserID:                  "99999999-8888-7777-6666-555555555555",
		Devices:                 ds.StringList{ds.DeviceIPad, ds.DeviceApplePencil},
		ApplicationRequirements: "Applications de prise de notes",
		Beneficiary: ds.Beneficiary{
			LastName:     "Dupont",
			FirstName:    "Léa",
			Matricule:    "2012120112345",
			School:       "École fondamentale de Belair",
			Class:        "C4.1",
			NeedCategory: "ESEB",
		},
		Status:              ds.StatusPrepared,
		DeviceSerialNumbers: ds.StringMap{ds.DeviceIPad: "DMPX123456"},
		DeviceAssetTags:     ds.StringMap{ds.DeviceIPad: "H12345"},
		CreatedAt:           time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		UpdatedAt:           time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC),
	}
}

func sampleSubmitter() *ds.User {
	return &ds.User{
		ID:        "99999999-8888-7777-6666-555555555555",
		Email:     "enseignant@ecole.lu",
		FirstName: "Marc",
		LastName:  "Weber",
		Role:      "user",
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render(sampleRequest(), sampleSubmitter())
	require.NoError(t, err)
	require.NotEmpty(t, out)

	// Signature PDF
	assert.Equal(t, "%PDF", string(out[:4]))
	// Deux pages: formulaire + mention légale
	assert.Contains(t, string(out), "/Count 2")
}

func TestRenderDoesNotMutateRequest(t *testing.T) {
	r := NewRenderer()
	req := sampleRequest()
	before := *req

	_, err := r.Render(req, sampleSubmitter())
	require.NoError(t, err)

	assert.Equal(t, before.Status, req.Status)
	assert.Equal(t, before.Devices, req.Devices)
	assert.Equal(t, before.DeviceSerialNumbers, req.DeviceSerialNumbers)
	assert.Equal(t, before.UpdatedAt, req.UpdatedAt)
}

func TestRenderWithMissingOptionalFields(t *testing.T) {
	r := NewRenderer()

	// Demande minimale: les champs optionnels absents sont remplacés par un
	// texte fixe, le document garde la même structure.
	req := &ds.DeviceRequest{
		ID:        "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
		UserID:    "99999999-8888-7777-6666-555555555555",
		Devices:   ds.StringList{ds.DeviceMacBook},
		Status:    ds.StatusPending,
		CreatedAt: time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC),
	}

	full, err := r.Render(sampleRequest(), sampleSubmitter())
	require.NoError(t, err)

	minimal, err := r.Render(req, sampleSubmitter())
	require.NoError(t, err)
	require.NotEmpty(t, minimal)

	// Même nombre de pages quelle que soit la complétude des champs
	assert.Contains(t, string(minimal), "/Count 2")
	assert.Contains(t, string(full), "/Count 2")
}

func TestOrPlaceholder(t *testing.T) {
	assert.Equal(t, "N/A", orPlaceholder(""))
	assert.Equal(t, "valeur", orPlaceholder("valeur"))
}
