package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/groenvak/offerte-service/internal/http/middleware"
	"github.com/groenvak/offerte-service/internal/model"
)

type urenRequest struct {
	ProjectID    string  `json:"projectId" binding:"required"`
	Datum        string  `json:"datum" binding:"required"`
	Uren         float64 `json:"uren"`
	Omschrijving string  `json:"omschrijving"`
	Medewerker   string  `json:"medewerker"`
	UserID       string  `json:"userId"`
}

func (h *Handler) registreerUren(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req urenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid projectId"})
		return
	}
	datum, err := time.Parse("2006-01-02", req.Datum)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid datum, expected YYYY-MM-DD"})
		return
	}

	registratie := model.UrenRegistratie{
		ProjectID:    projectID,
		Datum:        datum,
		Uren:         req.Uren,
		Omschrijving: req.Omschrijving,
		Medewerker:   req.Medewerker,
	}
	if req.UserID != "" {
		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
			return
		}
		registratie.UserID = userID
	}

	created, err := h.uren.Registreer(c.Request.Context(), principal, registratie)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handler) listUren(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var projectID *uuid.UUID
	if raw := c.Query("projectId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid projectId"})
			return
		}
		projectID = &parsed
	}
	from, to, err := parsePeriode(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	registraties, err := h.uren.List(c.Request.Context(), principal, projectID, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, registraties)
}

func (h *Handler) exportUren(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	from, to, err := parsePeriode(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.uren.Export(c.Request.Context(), principal, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}

	urenExportsTotal.Inc()
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

// parsePeriode leest from/to querystrings als YYYY-MM-DD. Beide grenzen
// tellen mee: from == to is een periode van één dag.
func parsePeriode(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid from, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid to, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to must not be before from")
	}
	return from, to, nil
}
