package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot() CreatedSnapshot {
	return CreatedSnapshot{
		RequestID:               "req-1",
		Devices:                 []string{"ipad", "apple_pencil"},
		ApplicationRequirements: "Prise de notes",
		UserEmail:               "marc.weber@ecole.lu",
		FirstName:               "Marc",
		LastName:                "Weber",
	}
}

func TestNotifyCreatedSendsIncident(t *testing.T) {
	var received incidentPayload
	var contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, 10*time.Second)
	d.NotifyCreated(snapshot())

	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "marc.weber@ecole.lu", received.Caller.Email)
	assert.Equal(t, "Marc", received.Caller.FirstName)
	assert.Equal(t, "Weber", received.Caller.LastName)
	assert.Equal(t, "Demande d'appareil - ipad, apple_pencil", received.BriefDescription)
	assert.Contains(t, received.Request, "Appareils: ipad, apple_pencil")
	assert.Contains(t, received.Request, "Exigences: Prise de notes")
}

func TestNotifyCreatedNoURLIsNoop(t *testing.T) {
	d := NewDispatcher("", 10*time.Second)
	// Ne doit ni paniquer ni bloquer
	d.NotifyCreated(snapshot())
}

func TestNotifyCreatedSwallowsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDispatcher(srv.URL, 10*time.Second)
	d.NotifyCreated(snapshot()) // l'erreur est journalisée, jamais propagée
}

func TestNotifyCreatedSwallowsTransportError(t *testing.T) {
	// Port fermé: erreur de transport absorbée
	d := NewDispatcher("http://127.0.0.1:1", 500*time.Millisecond)
	d.NotifyCreated(snapshot())
}

func TestSendClassifiesFailuresAsDependencyErrors(t *testing.T) {
	var derr *apperr.DependencyError

	// Erreur de transport (port fermé)
	d := NewDispatcher("http://127.0.0.1:1", 500*time.Millisecond)
	err := d.send(snapshot())
	require.ErrorAs(t, err, &derr)

	// Réponse non-2xx
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d = NewDispatcher(srv.URL, 10*time.Second)
	err = d.send(snapshot())
	require.ErrorAs(t, err, &derr)
	assert.Contains(t, err.Error(), "502")
}

func TestBuildIncidentShape(t *testing.T) {
	payload := buildIncident(snapshot())

	b, err := json.Marshal(payload)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &generic))
	assert.Contains(t, generic, "caller")
	assert.Contains(t, generic, "briefDescription")
	assert.Contains(t, generic, "request")

	caller := generic["caller"].(map[string]interface{})
	assert.Contains(t, caller, "email")
	assert.Contains(t, caller, "firstName")
	assert.Contains(t, caller, "lastName")
}
