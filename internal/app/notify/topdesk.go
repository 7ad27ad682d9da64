// Package notify transmet les nouvelles demandes au système d'incidents
// TopDesk. Livraison au mieux, au plus une fois: aucun échec ne remonte à
// l'appelant, aucune nouvelle tentative.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/apperr"

	"github.com/sirupsen/logrus"
)

// CreatedSnapshot — instantané demande + identité du demandeur transmis au
// dispatcher lors de la création.
type CreatedSnapshot struct {
	RequestID               string
	Devices                 []string
	ApplicationRequirements string
	UserEmail               string
	FirstName               string
	LastName                string
}

type callerPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type incidentPayload struct {
	Caller           callerPayload `json:"caller"`
	BriefDescription string        `json:"briefDescription"`
	Request          string        `json:"request"`
}

// Dispatcher envoie les incidents au webhook TopDesk configuré
type Dispatcher struct {
	webhookURL string
	client     *http.Client
}

func NewDispatcher(webhookURL string, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
	}
}

// NotifyCreated envoie l'incident correspondant à une nouvelle demande.
// Sans URL configurée, ne fait rien. Toute erreur de transport, réponse
// non-2xx ou délai dépassé est journalisée puis ignorée.
func (d *Dispatcher) NotifyCreated(snap CreatedSnapshot) {
	if d.webhookURL == "" {
		return
	}

	if err := d.send(snap); err != nil {
		logrus.Errorf("topdesk: incident for request %s: %v", snap.RequestID, err)
		return
	}
	logrus.Infof("topdesk: incident sent for request %s", snap.RequestID)
}

// send effectue l'envoi; tout échec est une erreur de dépendance externe
func (d *Dispatcher) send(snap CreatedSnapshot) error {
	body, err := json.Marshal(buildIncident(snap))
	if err != nil {
		return &apperr.DependencyError{Op: "marshal incident", Err: err}
	}

	resp, err := d.client.Post(d.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return &apperr.DependencyError{Op: "send incident", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apperr.DependencyError{Op: "send incident", Err: fmt.Errorf("webhook responded %d", resp.StatusCode)}
	}
	return nil
}

func buildIncident(snap CreatedSnapshot) incidentPayload {
	devices := strings.Join(snap.Devices, ", ")
	return incidentPayload{
		Caller: callerPayload{
			Email:     snap.UserEmail,
			FirstName: snap.FirstName,
			LastName:  snap.LastName,
		},
		BriefDescription: fmt.Sprintf("Demande d'appareil - %s", devices),
		Request: fmt.Sprintf("Demande d'appareil éducatif:\nAppareils: %s\nExigences: %s",
			devices, snap.ApplicationRequirements),
	}
}
