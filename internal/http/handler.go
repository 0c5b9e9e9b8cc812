package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/groenvak/offerte-service/internal/calc"
	"github.com/groenvak/offerte-service/internal/http/middleware"
	"github.com/groenvak/offerte-service/internal/model"
	"github.com/groenvak/offerte-service/internal/service"
)

type Handler struct {
	offertes   *service.OfferteService
	referentie *service.ReferentieService
	projecten  *service.ProjectService
	planning   *service.PlanningService
	uren       *service.UrenService
	log        zerolog.Logger
}

func NewHandler(
	offertes *service.OfferteService,
	referentie *service.ReferentieService,
	projecten *service.ProjectService,
	planning *service.PlanningService,
	uren *service.UrenService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		offertes:   offertes,
		referentie: referentie,
		projecten:  projecten,
		planning:   planning,
		uren:       uren,
		log:        log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/offertes/calculate", h.calculateOfferte)
	protected.POST("/offertes", h.createOfferte)
	protected.GET("/offertes", h.listOffertes)
	protected.GET("/offertes/:id", h.getOfferte)
	protected.PUT("/offertes/:id", h.updateOfferte)
	protected.POST("/offertes/:id/status", h.updateOfferteStatus)
	protected.POST("/offertes/:id/pdf", h.exportOffertePDF)

	protected.GET("/instellingen", h.getInstellingen)
	protected.PUT("/instellingen", h.updateInstellingen)
	protected.GET("/normuren", h.listNormUren)
	protected.POST("/normuren", h.upsertNormUur)
	protected.GET("/correctiefactoren", h.listFactoren)
	protected.POST("/correctiefactoren", h.upsertFactor)
	protected.GET("/producten", h.listProducten)
	protected.POST("/producten", h.createProduct)
	protected.PUT("/producten/:id", h.updateProduct)

	protected.GET("/projecten", h.listProjecten)
	protected.POST("/projecten", h.createProject)
	protected.GET("/projecten/:id", h.getProject)
	protected.POST("/projecten/:id/status", h.updateProjectStatus)

	protected.GET("/ploegen", h.listPloegen)
	protected.POST("/ploegen", h.createPloeg)
	protected.PUT("/ploegen/:id", h.updatePloeg)
	protected.GET("/voertuigen", h.listVoertuigen)
	protected.POST("/voertuigen", h.createVoertuig)
	protected.POST("/inzet", h.createInzet)
	protected.GET("/inzet", h.listInzet)

	protected.POST("/uren", h.registreerUren)
	protected.GET("/uren", h.listUren)
	protected.POST("/uren/export", h.exportUren)
}

type offerteRequest struct {
	KlantNaam       string      `json:"klant_naam"`
	KlantAdres      string      `json:"klant_adres"`
	KlantEmail      string      `json:"klant_email"`
	MargePercentage *float64    `json:"marge_percentage"`
	Invoer          calc.Invoer `json:"invoer"`
}

type calculateRequest struct {
	MargePercentage *float64    `json:"marge_percentage"`
	Invoer          calc.Invoer `json:"invoer"`
}

func (h *Handler) calculateOfferte(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.offertes.Bereken(c.Request.Context(), principal, req.Invoer, req.MargePercentage)
	if err != nil {
		h.handleError(c, err)
		return
	}

	berekeningenTotal.Inc()
	c.JSON(http.StatusOK, result)
}

func (h *Handler) createOfferte(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req offerteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offerte, err := h.offertes.Create(c.Request.Context(), principal, service.OfferteInput{
		KlantNaam:       req.KlantNaam,
		KlantAdres:      req.KlantAdres,
		KlantEmail:      req.KlantEmail,
		Invoer:          req.Invoer,
		MargePercentage: req.MargePercentage,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	berekeningenTotal.Inc()
	c.JSON(http.StatusCreated, offerte)
}

func (h *Handler) listOffertes(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var status *model.OfferteStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := parseOfferteStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &parsed
	}

	offertes, err := h.offertes.List(c.Request.Context(), principal, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, offertes)
}

func (h *Handler) getOfferte(c *gin.Context) {
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

	offerte, err := h.offertes.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, offerte)
}

func (h *Handler) updateOfferte(c *gin.Context) {
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

	var req offerteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offerte, err := h.offertes.Update(c.Request.Context(), principal, id, service.OfferteInput{
		KlantNaam:       req.KlantNaam,
		KlantAdres:      req.KlantAdres,
		KlantEmail:      req.KlantEmail,
		Invoer:          req.Invoer,
		MargePercentage: req.MargePercentage,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	berekeningenTotal.Inc()
	c.JSON(http.StatusOK, offerte)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) updateOfferteStatus(c *gin.Context) {
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

	status, err := parseOfferteStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	offerte, err := h.offertes.UpdateStatus(c.Request.Context(), principal, id, status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, offerte)
}

func (h *Handler) exportOffertePDF(c *gin.Context) {
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

	result, err := h.offertes.GeneratePDF(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	pdfExportsTotal.Inc()
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var missingRate *calc.MissingRateError
	var invalidInput *calc.InvalidInputError

	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput), errors.As(err, &invalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &missingRate):
		// Referentiedata is nog niet compleet; geen serverfout.
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"tabel": missingRate.Tabel,
			"key":   missingRate.Key,
		})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseOfferteStatus(raw string) (model.OfferteStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(model.OfferteStatusConcept):
		return model.OfferteStatusConcept, nil
	case string(model.OfferteStatusVerzonden):
		return model.OfferteStatusVerzonden, nil
	case string(model.OfferteStatusGeaccepteerd):
		return model.OfferteStatusGeaccepteerd, nil
	case string(model.OfferteStatusAfgewezen):
		return model.OfferteStatusAfgewezen, nil
	default:
		return "", service.ErrInvalidInput
	}
}
