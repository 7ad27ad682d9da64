package handler

import (
	"github.com/MxBrndl/Demandes-ESEB/internal/app/middleware"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes enregistre toutes les routes REST avec leur autorisation
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// Routes REST API
	api := router.Group("/api")

	// ============ Authentification ============
	auth := api.Group("/auth")
	{
		// Endpoints publics
		auth.POST("/register", h.AuthHandler.RegisterUser) // POST inscription
		auth.POST("/login", h.AuthHandler.LoginUser)       // POST authentification JWT

		// Endpoints protégés
		auth.GET("/me", authMiddleware.WithAuthCheck(role.User, role.Admin), h.AuthHandler.GetMe)
		auth.PUT("/profile", authMiddleware.WithAuthCheck(role.User, role.Admin), h.AuthHandler.UpdateProfile)
		auth.POST("/logout", authMiddleware.WithAuthCheck(role.User, role.Admin), h.AuthHandler.LogoutUser)
	}

	// ============ Demandes d'appareils ============
	requests := api.Group("/requests")
	{
		// Pour tous les utilisateurs authentifiés
		requests.POST("", authMiddleware.WithAuthCheck(role.User, role.Admin), h.CreateRequest)             // POST création
		requests.GET("", authMiddleware.WithAuthCheck(role.User, role.Admin), h.GetRequests)                // GET liste (filtrée par rôle)
		requests.GET("/:id", authMiddleware.WithAuthCheck(role.User, role.Admin), h.GetRequest)             // GET une demande
		requests.GET("/:id/pdf", authMiddleware.WithAuthCheck(role.User, role.Admin), h.DownloadRequestPDF) // GET document officiel

		// Administrateurs uniquement
		requests.PUT("/:id", authMiddleware.WithAuthCheck(role.Admin), h.UpdateRequest)    // PUT mise à jour / changement de statut
		requests.DELETE("/:id", authMiddleware.WithAuthCheck(role.Admin), h.DeleteRequest) // DELETE suppression
	}

	// ============ Tableau de bord (administrateurs) ============
	dashboard := api.Group("/dashboard")
	dashboard.Use(authMiddleware.WithAuthCheck(role.Admin))
	{
		dashboard.GET("/stats", h.GetDashboardStats)
	}

	// Endpoint ping pour la supervision
	router.GET("/ping", h.Ping)
}

// Ping vérifie la disponibilité de l'API
// @Summary Vérification de disponibilité
// @Description Retourne une réponse simple pour vérifier que le serveur répond
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
