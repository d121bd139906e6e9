package http

import (
	"net/http"

	"github.com/diillson/univoto/internal/app/election"
	"github.com/diillson/univoto/internal/infra/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ElectionHandler struct {
	elections *election.Service
	logger    *zap.Logger
}

func NewElectionHandler(elections *election.Service, logger *zap.Logger) *ElectionHandler {
	return &ElectionHandler{elections: elections, logger: logger}
}

// List devolve todas as eleições para a administração e só as ativas para os demais
func (h *ElectionHandler) List(c *gin.Context) {
	list, err := h.elections.List(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ElectionHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	e, err := h.elections.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ElectionHandler) Create(c *gin.Context) {
	var in election.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}
	e, err := h.elections.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *ElectionHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in election.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}
	e, err := h.elections.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ElectionHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.elections.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Elección eliminada con éxito"})
}
