package http

import (
	"net/http"
	"strconv"

	"github.com/diillson/univoto/internal/app/candidacy"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CandidacyHandler struct {
	candidacies *candidacy.Service
	logger      *zap.Logger
}

func NewCandidacyHandler(candidacies *candidacy.Service, logger *zap.Logger) *CandidacyHandler {
	return &CandidacyHandler{candidacies: candidacies, logger: logger}
}

// List aceita ?eleccionid= para filtrar por eleição
func (h *CandidacyHandler) List(c *gin.Context) {
	var electionID uint
	if raw := c.Query("eleccionid"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro 'eleccionid' inválido"})
			return
		}
		electionID = uint(id)
	}

	list, err := h.candidacies.List(c.Request.Context(), electionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CandidacyHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	cand, err := h.candidacies.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

func (h *CandidacyHandler) Create(c *gin.Context) {
	var in candidacy.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}
	cand, err := h.candidacies.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, cand)
}

type proposalRequest struct {
	Proposal string `json:"propuesta"`
}

func (h *CandidacyHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badJSON(c, err)
		return
	}
	cand, err := h.candidacies.UpdateProposal(c.Request.Context(), id, req.Proposal)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

func (h *CandidacyHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.candidacies.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidatura eliminada con éxito"})
}
