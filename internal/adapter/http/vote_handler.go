package http

import (
	"net/http"

	"github.com/diillson/univoto/internal/app/voting"
	"github.com/diillson/univoto/internal/infra/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VoteHandler struct {
	voting *voting.Service
	logger *zap.Logger
}

func NewVoteHandler(votingService *voting.Service, logger *zap.Logger) *VoteHandler {
	return &VoteHandler{voting: votingService, logger: logger}
}

// Cast registra o voto do usuário da sessão
func (h *VoteHandler) Cast(c *gin.Context) {
	var in voting.CastVoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}

	vote, err := h.voting.CastVote(c.Request.Context(), middleware.CurrentSession(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "¡Voto registrado con éxito!", "voto": vote})
}

// Mine informa se o usuário já votou e, nesse caso, o voto
func (h *VoteHandler) Mine(c *gin.Context) {
	vote, err := h.voting.MyVote(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ya_voto": vote != nil, "voto": vote})
}

// Ballot abre a cédula de uma eleição ativa
func (h *VoteHandler) Ballot(c *gin.Context) {
	id, ok := idParam(c, "eleccionid")
	if !ok {
		return
	}
	ballot, err := h.voting.OpenBallot(c.Request.Context(), middleware.CurrentSession(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ballot)
}

func (h *VoteHandler) List(c *gin.Context) {
	votes, err := h.voting.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, votes)
}

func (h *VoteHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	vote, err := h.voting.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, vote)
}

func (h *VoteHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.voting.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Voto eliminado con éxito"})
}
