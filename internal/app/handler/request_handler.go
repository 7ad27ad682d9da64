package handler

import (
	"fmt"
	"net/http"

	"github.com/MxBrndl/Demandes-ESEB/internal/app/apperr"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/ds"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/dto"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/notify"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/policy"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/role"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/storage"
	"github.com/MxBrndl/Demandes-ESEB/internal/app/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ Cycle de vie des demandes ============

// CreateRequest crée une nouvelle demande d'appareil
// @Summary Création d'une demande
// @Description Crée une demande au statut en_attente et notifie TopDesk (au mieux)
// @Tags Demandes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRequestRequest true "Données de la demande"
// @Success 201 {object} dto.CreateRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/requests [post]
func (h *APIHandler) CreateRequest(c *gin.Context) {
	identity, err := h.getIdentityFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Erreur d'authentification")
		return
	}

	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Données invalides: "+err.Error())
		return
	}

	submitter, err := h.Repository.GetUserByID(identity.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	record := &ds.DeviceRequest{
		UserID:                  identity.UserID,
		Devices:                 ds.StringList(req.Devices),
		ApplicationRequirements: req.ApplicationRequirements,
		Beneficiary: ds.Beneficiary{
			LastName:        req.Beneficiary.LastName,
			FirstName:       req.Beneficiary.FirstName,
			Matricule:       req.Beneficiary.Matricule,
			School:          req.Beneficiary.School,
			Class:           req.Beneficiary.Class,
			NeedCategory:    req.Beneficiary.NeedCategory,
			ReferencePerson: req.Beneficiary.ReferencePerson,
		},
		ReceiptLocation:    req.ReceiptLocation,
		EndOfLoanCondition: req.EndOfLoanCondition,
		Phone:              req.Phone,
		Address:            req.Address,
	}

	created, err := h.Repository.CreateRequest(record)
	if err != nil {
		logrus.Error("Error creating request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Erreur lors de la création de la demande")
		return
	}

	// Notification TopDesk: au mieux, jamais bloquante pour l'appelant
	snapshot := notify.CreatedSnapshot{
		RequestID:               created.ID,
		Devices:                 created.Devices,
		ApplicationRequirements: created.ApplicationRequirements,
		UserEmail:               submitter.Email,
		FirstName:               submitter.FirstName,
		LastName:                submitter.LastName,
	}
	go h.Dispatcher.NotifyCreated(snapshot)

	c.JSON(http.StatusCreated, dto.CreateRequestResponse{
		Message:   "Demande créée avec succès",
		RequestID: created.ID,
	})
}

// GetRequests liste les demandes visibles par l'appelant
// @Summary Liste des demandes
// @Description Un administrateur voit toutes les demandes (avec infos demandeur), un utilisateur les siennes
// @Tags Demandes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RequestListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/requests [get]
func (h *APIHandler) GetRequests(c *gin.Context) {
	identity, err := h.getIdentityFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Erreur d'authentification")
		return
	}

	var records []ds.DeviceRequest
	withUserInfo := false

	if identity.Role == role.Admin {
		records, err = h.Repository.GetAllRequests()
		withUserInfo = true
	} else {
		records, err = h.Repository.GetRequestsByUser(identity.UserID)
	}
	if err != nil {
		logrus.Error("Error getting requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Erreur lors de la récupération des demandes")
		return
	}

	dtoRequests := make([]dto.RequestResponse, len(records))
	for i := range records {
		dtoRequests[i] = requestResponse(&records[i], withUserInfo)
	}

	c.JSON(http.StatusOK, dto.RequestListResponse{
		Requests: dtoRequests,
		Total:    len(dtoRequests),
	})
}

// GetRequest retourne une demande
// @Summary Détail d'une demande
// @Description Accessible à l'administrateur ou au demandeur propriétaire
// @Tags Demandes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la demande"
// @Success 200 {object} dto.RequestResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id} [get]
func (h *APIHandler) GetRequest(c *gin.Context) {
	identity, err := h.getIdentityFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Erreur d'authentification")
		return
	}

	record, err := h.Repository.GetRequestByID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := policy.RequireView(identity, record.UserID); err != nil {
		h.handleError(c, err)
		return
	}

	response := requestResponse(record, false)

	// Jointure en lecture: vue dénormalisée du demandeur
	if submitter, err := h.Repository.GetUserByID(record.UserID); err == nil {
		response.UserInfo = &dto.UserInfo{
			Email:     submitter.Email,
			FirstName: submitter.FirstName,
			LastName:  submitter.LastName,
			Role:      submitter.Role,
		}
	}

	c.JSON(http.StatusOK, response)
}

// UpdateRequest met à jour une demande (administrateur uniquement)
// @Summary Mise à jour d'une demande
// @Description Patch partiel: statut obligatoire, autres champs appliqués seulement s'ils sont présents. Le passage en "prepare" génère le document officiel.
// @Tags Demandes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la demande"
// @Param request body dto.UpdateRequestRequest true "Champs à mettre à jour"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id} [put]
func (h *APIHandler) UpdateRequest(c *gin.Context) {
	identity, err := h.getIdentityFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Erreur d'authentification")
		return
	}

	// Garde en profondeur: la route est déjà réservée aux administrateurs
	if err := policy.RequireAdmin(identity); err != nil {
		h.handleError(c, err)
		return
	}

	var req dto.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Données invalides: "+err.Error())
		return
	}

	record, err := h.Repository.GetRequestByID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Maps effectives après application du patch: une map fournie remplace
	// la map existante, une map absente est laissée telle quelle.
	effectiveSerials := validation.EffectiveMap(record.DeviceSerialNumbers, req.DeviceSerialNumbers)
	effectiveTags := validation.EffectiveMap(record.DeviceAssetTags, req.DeviceAssetTags)

	// Validation avant toute persistance
	if err := validation.ValidateDeviceSubset(record.Devices, effectiveSerials); err != nil {
		h.handleError(c, err)
		return
	}
	if err := validation.ValidateDeviceSubset(record.Devices, effectiveTags); err != nil {
		h.handleError(c, err)
		return
	}
	if err := validation.ValidateAssetTags(effectiveTags); err != nil {
		h.handleError(c, err)
		return
	}
	if err := validation.ValidateApprovalReadiness(record.Devices, effectiveSerials, req.Status); err != nil {
		h.handleError(c, err)
		return
	}

	updates := map[string]interface{}{
		"status": req.Status,
	}
	if req.DeviceSerialNumbers != nil {
		updates["device_serial_numbers"] = ds.StringMap(*req.DeviceSerialNumbers)
	}
	if req.DeviceAssetTags != nil {
		updates["device_asset_tags"] = ds.StringMap(*req.DeviceAssetTags)
	}
	if req.AdminNotes != nil {
		updates["admin_notes"] = *req.AdminNotes
	}
	if req.ReceiptLocation != nil {
		updates["receipt_location"] = *req.ReceiptLocation
	}
	if req.EndOfLoanCondition != nil {
		updates["end_of_loan_condition"] = *req.EndOfLoanCondition
	}

	if err := h.Repository.UpdateRequestFields(record.ID, updates); err != nil {
		h.handleError(c, err)
		return
	}

	// Passage en "prepare": génération synchrone du document officiel.
	// Un échec de rendu ou de stockage est journalisé et ne remet jamais
	// en cause la mise à jour de statut déjà persistée.
	if req.Status == ds.StatusPrepared {
		h.generateOfficialDocument(c, record.ID)
	}

	h.successResponse(c, http.StatusOK, "Demande mise à jour avec succès", nil)
}

// generateOfficialDocument rend le document officiel et archive l'artefact.
// Échec contenu: journalisé, jamais propagé à l'appelant.
func (h *APIHandler) generateOfficialDocument(c *gin.Context, requestID string) {
	record, err := h.Repository.GetRequestByID(requestID)
	if err != nil {
		logrus.Errorf("document generation: reload request %s: %v", requestID, err)
		return
	}

	submitter, err := h.Repository.GetUserByID(record.UserID)
	if err != nil {
		logrus.Errorf("document generation: load submitter for request %s: %v", requestID, err)
		return
	}

	pdfBytes, err := h.Renderer.Render(record, submitter)
	if err != nil {
		logrus.Errorf("document generation for request %s: %v",
			requestID, &apperr.DependencyError{Op: "render document", Err: err})
		return
	}

	if h.MinIOClient == nil {
		logrus.Warnf("document generation: no artifact store configured, request %s not archived", requestID)
		return
	}

	// Clé adressée par contenu: un artefact identique existe déjà => pas
	// de nouvel envoi
	key := storage.DocumentKey(pdfBytes)
	exists, err := h.MinIOClient.DocumentExists(c.Request.Context(), key)
	if err != nil {
		logrus.Warnf("document generation: check artifact for request %s: %v", requestID, err)
	}
	if !exists {
		key, err = h.MinIOClient.StoreDocument(c.Request.Context(), pdfBytes)
		if err != nil {
			logrus.Errorf("document generation for request %s: %v",
				requestID, &apperr.DependencyError{Op: "store artifact", Err: err})
			return
		}
	}

	if err := h.Repository.SetDocumentArtifact(requestID, key); err != nil {
		logrus.Errorf("document generation: record artifact key for request %s: %v", requestID, err)
	}
}

// DeleteRequest supprime une demande (administrateur uniquement)
// @Summary Suppression d'une demande
// @Description Suppression définitive, sans condition de statut
// @Tags Demandes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la demande"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id} [delete]
func (h *APIHandler) DeleteRequest(c *gin.Context) {
	identity, err := h.getIdentityFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Erreur d'authentification")
		return
	}

	if err := policy.RequireAdmin(identity); err != nil {
		h.handleError(c, err)
		return
	}

	record, err := h.Repository.GetRequestByID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.Repository.DeleteRequest(record.ID); err != nil {
		h.handleError(c, err)
		return
	}

	// Nettoyage au mieux de l'artefact archivé
	if record.DocumentKey != "" && h.MinIOClient != nil {
		if err := h.MinIOClient.DeleteDocument(c.Request.Context(), record.DocumentKey); err != nil {
			logrus.Warnf("delete request %s: remove artifact %s: %v", record.ID, record.DocumentKey, err)
		}
	}

	h.successResponse(c, http.StatusOK, "Demande supprimée avec succès", nil)
}

// DownloadRequestPDF télécharge le document officiel d'une demande
// @Summary Téléchargement du document officiel
// @Description Rend le document à partir de l'état courant de la demande
// @Tags Demandes
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID de la demande"
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/requests/{id}/pdf [get]
func (h *APIHandler) DownloadRequestPDF(c *gin.Context) {
	identity, err := h.getIdentityFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Erreur d'authentification")
		return
	}

	record, err := h.Repository.GetRequestByID(c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := policy.RequireView(identity, record.UserID); err != nil {
		h.handleError(c, err)
		return
	}

	filename := fmt.Sprintf("demande_%s.pdf", record.ID)

	// Artefact archivé lors de la préparation: servi tel quel
	if record.DocumentGenerated && record.DocumentKey != "" && h.MinIOClient != nil {
		pdfBytes, err := h.MinIOClient.FetchDocument(c.Request.Context(), record.DocumentKey)
		if err == nil {
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
			c.Data(http.StatusOK, "application/pdf", pdfBytes)
			return
		}
		logrus.Warnf("download request %s: fetch artifact %s: %v, rendering on demand", record.ID, record.DocumentKey, err)
	}

	submitter, err := h.Repository.GetUserByID(record.UserID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	// Pas d'artefact: rendu à la demande depuis l'état courant
	pdfBytes, err := h.Renderer.Render(record, submitter)
	if err != nil {
		logrus.Error("Error rendering document: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Erreur lors de la génération du document")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// requestResponse convertit un enregistrement en DTO
func requestResponse(record *ds.DeviceRequest, withUserInfo bool) dto.RequestResponse {
	response := dto.RequestResponse{
		ID:                      record.ID,
		UserID:                  record.UserID,
		Devices:                 record.Devices,
		ApplicationRequirements: record.ApplicationRequirements,
		Beneficiary: dto.BeneficiaryResponse{
			LastName:        record.Beneficiary.LastName,
			FirstName:       record.Beneficiary.FirstName,
			Matricule:       record.Beneficiary.Matricule,
			School:          record.Beneficiary.School,
			Class:           record.Beneficiary.Class,
			NeedCategory:    record.Beneficiary.NeedCategory,
			ReferencePerson: record.Beneficiary.ReferencePerson,
		},
		ReceiptLocation:     record.ReceiptLocation,
		EndOfLoanCondition:  record.EndOfLoanCondition,
		Phone:               record.Phone,
		Address:             record.Address,
		Status:              record.Status,
		DeviceSerialNumbers: record.DeviceSerialNumbers,
		DeviceAssetTags:     record.DeviceAssetTags,
		AdminNotes:          record.AdminNotes,
		DocumentGenerated:   record.DocumentGenerated,
		DocumentKey:         record.DocumentKey,
		CreatedAt:           record.CreatedAt,
		UpdatedAt:           record.UpdatedAt,
	}

	if withUserInfo && record.Submitter.ID != "" {
		response.UserInfo = &dto.UserInfo{
			Email:     record.Submitter.Email,
			FirstName: record.Submitter.FirstName,
			LastName:  record.Submitter.LastName,
			Role:      record.Submitter.Role,
		}
	}

	return response
}
