package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/groenvak/offerte-service/internal/http/middleware"
	"github.com/groenvak/offerte-service/internal/model"
)

func (h *Handler) getInstellingen(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	instellingen, err := h.referentie.GetInstellingen(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, instellingen)
}

type instellingenRequest struct {
	Uurtarief                float64 `json:"uurtarief"`
	StandaardMargePercentage float64 `json:"standaardMargePercentage"`
	BtwPercentage            float64 `json:"btwPercentage"`
}

func (h *Handler) updateInstellingen(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req instellingenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.referentie.UpdateInstellingen(c.Request.Context(), principal, model.Instellingen{
		Uurtarief:                req.Uurtarief,
		StandaardMargePercentage: req.StandaardMargePercentage,
		BtwPercentage:            req.BtwPercentage,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "instellingen bijgewerkt"})
}

func (h *Handler) listNormUren(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	normen, err := h.referentie.ListNormUren(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, normen)
}

type normUurRequest struct {
	Scope          string  `json:"scope" binding:"required"`
	TaakKey        string  `json:"taakKey" binding:"required"`
	Omschrijving   string  `json:"omschrijving"`
	Eenheid        string  `json:"eenheid" binding:"required"`
	UrenPerEenheid float64 `json:"urenPerEenheid"`
}

func (h *Handler) upsertNormUur(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req normUurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	norm, err := h.referentie.UpsertNormUur(c.Request.Context(), principal, model.NormUur{
		Scope:          model.Scope(req.Scope),
		TaakKey:        req.TaakKey,
		Omschrijving:   req.Omschrijving,
		Eenheid:        req.Eenheid,
		UrenPerEenheid: req.UrenPerEenheid,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, norm)
}

func (h *Handler) listFactoren(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	factoren, err := h.referentie.ListFactoren(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, factoren)
}

type factorRequest struct {
	Dimensie string  `json:"dimensie" binding:"required"`
	Waarde   string  `json:"waarde" binding:"required"`
	Factor   float64 `json:"factor"`
}

func (h *Handler) upsertFactor(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req factorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	factor, err := h.referentie.UpsertFactor(c.Request.Context(), principal, model.CorrectieFactor{
		Dimensie: model.FactorDimensie(req.Dimensie),
		Waarde:   req.Waarde,
		Factor:   req.Factor,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, factor)
}

func (h *Handler) listProducten(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	alleenActief := c.Query("actief") == "true"
	producten, err := h.referentie.ListProducten(c.Request.Context(), principal, alleenActief)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, producten)
}

type productRequest struct {
	Naam            string  `json:"naam" binding:"required"`
	Eenheid         string  `json:"eenheid" binding:"required"`
	PrijsPerEenheid float64 `json:"prijsPerEenheid"`
	Actief          bool    `json:"actief"`
}

func (h *Handler) createProduct(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.referentie.CreateProduct(c.Request.Context(), principal, model.Product{
		Naam:            req.Naam,
		Eenheid:         req.Eenheid,
		PrijsPerEenheid: req.PrijsPerEenheid,
		Actief:          req.Actief,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) updateProduct(c *gin.Context) {
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

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.referentie.UpdateProduct(c.Request.Context(), principal, model.Product{
		ID:              id,
		Naam:            req.Naam,
		Eenheid:         req.Eenheid,
		PrijsPerEenheid: req.PrijsPerEenheid,
		Actief:          req.Actief,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product bijgewerkt"})
}
