package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/apperr"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/document"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/dto"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/notify"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/policy"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/repository"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/role"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIHandler contient les handlers REST du cycle de vie des demandes
type APIHandler struct {
	Repository  *repository.Repository
	MinIOClient *storage.MinIOClient
	Renderer    *document.Renderer
	Dispatcher  *notify.Dispatcher
	AuthHandler *AuthHandler
}

func NewAPIHandler(r *repository.Repository, minioClient *storage.MinIOClient,
	renderer *document.Renderer, dispatcher *notify.Dispatcher, authHandler *AuthHandler) *APIHandler {
	return &APIHandler{
		Repository:  r,
		MinIOClient: minioClient,
		Renderer:    renderer,
		Dispatcher:  dispatcher,
		AuthHandler: authHandler,
	}
}

// getIdentityFromContext récupère l'identité vérifiée posée par le middleware
func (h *APIHandler) getIdentityFromContext(c *gin.Context) (policy.Identity, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return policy.Identity{}, fmt.Errorf("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(string)
	if !ok {
		logrus.Errorf("getIdentityFromContext: invalid userID type: %T", userID)
		return policy.Identity{}, fmt.Errorf("invalid user ID")
	}

	return policy.Identity{UserID: id, Role: r}, nil
}

// ============ Fonctions auxiliaires ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// handleError mappe la taxonomie d'erreurs vers un statut HTTP distinct
// par catégorie.
func (h *APIHandler) handleError(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	switch {
	case apperr.IsNotFound(err):
		h.errorResponse(c, http.StatusNotFound, err.Error())
	case apperr.IsAccessDenied(err):
		h.errorResponse(c, http.StatusForbidden, err.Error())
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  "fail",
			Message: verr.Message,
			Code:    verr.Code,
		})
	default:
		logrus.Error("unexpected error: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Erreur interne du serveur")
	}
}
