package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/groenvak/offerte-service/internal/http/middleware"
	"github.com/groenvak/offerte-service/internal/model"
	"github.com/groenvak/offerte-service/internal/service"
)

func (h *Handler) listProjecten(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var status *model.ProjectStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := parseProjectStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}

	projecten, err := h.projecten.List(c.Request.Context(), principal, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, projecten)
}

type projectRequest struct {
	Naam        string  `json:"naam" binding:"required"`
	KlantNaam   string  `json:"klantNaam"`
	StartDatum  string  `json:"startDatum"`
	EindDatum   string  `json:"eindDatum"`
	BegroteUren float64 `json:"begroteUren"`
}

func (h *Handler) createProject(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := parseOptionalDate(req.StartDatum)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDatum, expected YYYY-MM-DD"})
		return
	}
	eind, err := parseOptionalDate(req.EindDatum)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid eindDatum, expected YYYY-MM-DD"})
		return
	}

	project, err := h.projecten.Create(c.Request.Context(), principal, model.Project{
		Naam:        req.Naam,
		KlantNaam:   req.KlantNaam,
		StartDatum:  start,
		EindDatum:   eind,
		BegroteUren: req.BegroteUren,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) getProject(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	project, err := h.projecten.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) updateProjectStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := parseProjectStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	project, err := h.projecten.UpdateStatus(c.Request.Context(), principal, id, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) listPloegen(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	ploegen, err := h.planning.ListPloegen(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ploegen)
}

type ploegRequest struct {
	Naam   string   `json:"naam" binding:"required"`
	Leden  []string `json:"leden"`
	Actief bool     `json:"actief"`
}

func (h *Handler) createPloeg(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req ploegRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ploeg, err := h.planning.CreatePloeg(c.Request.Context(), principal, model.Ploeg{
		Naam:   req.Naam,
		Leden:  req.Leden,
		Actief: req.Actief,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ploeg)
}

func (h *Handler) updatePloeg(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req ploegRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.planning.UpdatePloeg(c.Request.Context(), principal, model.Ploeg{
		ID:     id,
		Naam:   req.Naam,
		Leden:  req.Leden,
		Actief: req.Actief,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ploeg bijgewerkt"})
}

func (h *Handler) listVoertuigen(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	voertuigen, err := h.planning.ListVoertuigen(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, voertuigen)
}

type voertuigRequest struct {
	Kenteken     string `json:"kenteken" binding:"required"`
	Omschrijving string `json:"omschrijving"`
	Actief       bool   `json:"actief"`
}

func (h *Handler) createVoertuig(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req voertuigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voertuig, err := h.planning.CreateVoertuig(c.Request.Context(), principal, model.Voertuig{
		Kenteken:     req.Kenteken,
		Omschrijving: req.Omschrijving,
		Actief:       req.Actief,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, voertuig)
}

type inzetRequest struct {
	ProjectID  string `json:"projectId" binding:"required"`
	PloegID    string `json:"ploegId" binding:"required"`
	VoertuigID string `json:"voertuigId"`
	Datum      string `json:"datum" binding:"required"`
}

func (h *Handler) createInzet(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req inzetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid projectId"})
		return
	}
	ploegID, err := uuid.Parse(req.PloegID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ploegId"})
		return
	}
	var voertuigID *uuid.UUID
	if req.VoertuigID != "" {
		parsed, err := uuid.Parse(req.VoertuigID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid voertuigId"})
			return
		}
		voertuigID = &parsed
	}
	datum, err := time.Parse("2006-01-02", req.Datum)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid datum, expected YYYY-MM-DD"})
		return
	}

	inzet, err := h.planning.CreateInzet(c.Request.Context(), principal, model.ProjectInzet{
		ProjectID:  projectID,
		PloegID:    ploegID,
		VoertuigID: voertuigID,
		Datum:      datum,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inzet)
}

func (h *Handler) listInzet(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	projectID, err := uuid.Parse(c.Query("projectId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid projectId"})
		return
	}
	from, to, err := parsePeriode(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inzet, err := h.planning.ListInzet(c.Request.Context(), principal, projectID, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, inzet)
}

func parseProjectStatus(raw string) (model.ProjectStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(model.ProjectStatusGepland):
		return model.ProjectStatusGepland, nil
	case string(model.ProjectStatusInUitvoering):
		return model.ProjectStatusInUitvoering, nil
	case string(model.ProjectStatusAfgerond):
		return model.ProjectStatusAfgerond, nil
	default:
		return "", service.ErrInvalidInput
	}
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
