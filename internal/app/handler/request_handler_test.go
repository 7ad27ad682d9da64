package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

// La garde d'administration des handlers doit refuser un utilisateur
// standard avant toute lecture du magasin: aucun repository n'est câblé ici.

func TestUpdateRequestRejectsNonAdmin(t *testing.T) {
	h := &APIHandler{}

	c, w := newTestContext(t, http.MethodPut, "/api/requests/abc", `{"status":"approuve"}`)
	c.Set("userID", "user-1")
	c.Set("userRole", role.User)

	h.UpdateRequest(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "administrateurs")
}

func TestDeleteRequestRejectsNonAdmin(t *testing.T) {
	h := &APIHandler{}

	c, w := newTestContext(t, http.MethodDelete, "/api/requests/abc", "")
	c.Set("userID", "user-1")
	c.Set("userRole", role.User)

	h.DeleteRequest(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateRequestRejectsMissingIdentity(t *testing.T) {
	h := &APIHandler{}

	c, w := newTestContext(t, http.MethodPut, "/api/requests/abc", `{"status":"approuve"}`)

	h.UpdateRequest(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
