package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/config"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/ds"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/dto"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/redis"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/repository"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	Repository  *repository.Repository
	RedisClient *redis.Client
	Config      *config.Config
}

func NewAuthHandler(r *repository.Repository, redisClient *redis.Client, config *config.Config) *AuthHandler {
	return &AuthHandler{
		Repository:  r,
		RedisClient: redisClient,
		Config:      config,
	}
}

// generateHashString génère le hash SHA-256 d'une chaîne
func generateHashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// createToken émet un jeton de session signé pour un utilisateur
func (h *AuthHandler) createToken(user *ds.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "demandes-eseb",
		},
		UserID: user.ID,
		Role:   role.FromString(user.Role),
	})

	return token.SignedString([]byte(h.Config.JWT.Secret))
}

func userResponse(user *ds.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Function:  user.Function,
		Address:   user.Address,
		Phone:     user.Phone,
	}
}

// RegisterUser enregistrement d'un nouvel utilisateur
// @Summary Enregistrement d'un utilisateur
// @Description Crée un utilisateur et retourne directement un jeton de session
// @Tags Authentification
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Données d'enregistrement"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	exists, _ := h.Repository.UserExistsByEmail(request.Email)
	if exists {
		h.errorHandler(ctx, http.StatusBadRequest, errors.New("cette adresse email est déjà enregistrée"))
		return
	}

	userRole := request.Role
	if userRole == "" {
		userRole = "user"
	}

	user, err := h.Repository.CreateUser(request.Email, generateHashString(request.Password),
		request.FirstName, request.LastName, userRole)
	if err != nil {
		logrus.Error("Error creating user: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("erreur lors de l'enregistrement"))
		return
	}

	accessToken, err := h.createToken(user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Token: accessToken,
		User:  userResponse(user),
	})
}

// LoginUser authentification d'un utilisateur
// @Summary Connexion
// @Description Vérifie les identifiants et retourne un jeton de session (7 jours)
// @Tags Authentification
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Identifiants"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	user, err := h.Repository.GetUserByEmail(request.Email)
	if err != nil || user.Password != generateHashString(request.Password) {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("email ou mot de passe invalide"))
		return
	}

	accessToken, err := h.createToken(user)
	if err != nil {
		h.errorHandler(ctx, http.StatusInternalServerError, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Token: accessToken,
		User:  userResponse(user),
	})
}

// LogoutUser déconnexion avec révocation du jeton
// @Summary Déconnexion
// @Description Révoque le jeton de session courant (blacklist Redis)
// @Tags Authentification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(ctx *gin.Context) {
	tokenString := ctx.GetHeader("Authorization")
	if tokenString == "" {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("authorization header missing"))
		return
	}

	if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
		tokenString = tokenString[7:]
	}

	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Secret), nil
	})
	if err != nil {
		h.errorHandler(ctx, http.StatusUnauthorized, err)
		return
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("invalid token claims"))
		return
	}

	// Révocation jusqu'à l'expiration naturelle du jeton
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 && h.RedisClient != nil {
		if err := h.RedisClient.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl); err != nil {
			h.errorHandler(ctx, http.StatusInternalServerError, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Status:  "success",
		Message: "Déconnexion réussie",
	})
}

// GetMe profil de l'utilisateur courant
// @Summary Utilisateur courant
// @Description Retourne le profil associé au jeton de session
// @Tags Authentification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) GetMe(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("utilisateur non authentifié"))
		return
	}

	user, err := h.Repository.GetUserByID(userID.(string))
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, errors.New("utilisateur introuvable"))
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

// UpdateProfile mise à jour du profil de l'utilisateur courant
// @Summary Mise à jour du profil
// @Description Modifie les champs de profil (fonction, adresse, téléphone), patch partiel
// @Tags Authentification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Champs à mettre à jour"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		h.errorHandler(ctx, http.StatusUnauthorized, errors.New("utilisateur non authentifié"))
		return
	}

	var request dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorHandler(ctx, http.StatusBadRequest, err)
		return
	}

	id := userID.(string)
	if err := h.Repository.UpdateUserProfile(id, request.Function, request.Address, request.Phone); err != nil {
		logrus.Error("Error updating profile: ", err)
		h.errorHandler(ctx, http.StatusInternalServerError, errors.New("erreur lors de la mise à jour du profil"))
		return
	}

	user, err := h.Repository.GetUserByID(id)
	if err != nil {
		h.errorHandler(ctx, http.StatusNotFound, errors.New("utilisateur introuvable"))
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

// errorHandler centralise la journalisation et la réponse d'erreur
func (h *AuthHandler) errorHandler(ctx *gin.Context, errorStatusCode int, err error) {
	logrus.Error(err.Error())
	ctx.JSON(errorStatusCode, dto.ErrorResponse{
		Status:  "error",
		Message: err.Error(),
	})
}
