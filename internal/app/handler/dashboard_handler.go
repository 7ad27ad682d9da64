package handler

import (
	"net/http"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/ds"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetDashboardStats retourne les statistiques du tableau de bord
// @Summary Statistiques du tableau de bord
// @Description Compteurs globaux et répartition des demandes par statut (administrateur uniquement)
// @Tags Tableau de bord
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/dashboard/stats [get]
func (h *APIHandler) GetDashboardStats(c *gin.Context) {
	total, err := h.Repository.CountRequests()
	if err != nil {
		logrus.Error("Error counting requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Erreur lors du calcul des statistiques")
		return
	}

	pending, err := h.Repository.CountRequestsByStatus(ds.StatusPending)
	if err != nil {
		logrus.Error("Error counting pending requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Erreur lors du calcul des statistiques")
		return
	}

	approved, err := h.Repository.CountRequestsByStatus(ds.StatusApproved)
	if err != nil {
		logrus.Error("Error counting approved requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Erreur lors du calcul des statistiques")
		return
	}

	completed, err := h.Repository.CountRequestsByStatus(ds.StatusCompleted)
	if err != nil {
		logrus.Error("Error counting completed requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Erreur lors du calcul des statistiques")
		return
	}

	breakdown, err := h.Repository.CountRequestsGroupedByStatus()
	if err != nil {
		logrus.Error("Error grouping requests by status: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Erreur lors du calcul des statistiques")
		return
	}

	c.JSON(http.StatusOK, dto.DashboardStatsResponse{
		TotalRequests:     total,
		PendingRequests:   pending,
		ApprovedRequests:  approved,
		CompletedRequests: completed,
		StatusBreakdown:   breakdown,
	})
}
