package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diillson/univoto/internal/app/auth"
	"github.com/diillson/univoto/internal/app/candidacy"
	"github.com/diillson/univoto/internal/app/profile"
	"github.com/diillson/univoto/internal/app/voting"
	"github.com/diillson/univoto/internal/domain/model"
	"github.com/diillson/univoto/internal/domain/repository"
	apperrors "github.com/diillson/univoto/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// toAPIError traduz erros de domínio para status HTTP
func toAPIError(err error) *apperrors.APIError {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return apperrors.BadRequest(verr.Error(), err).WithDetails(verr)
	}

	switch {
	case errors.Is(err, voting.ErrNoSession), errors.Is(err, profile.ErrNoSession):
		return apperrors.Unauthorized(err.Error(), err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return apperrors.Unauthorized("Usuario o contraseña inválidos", err)

	case errors.Is(err, voting.ErrMissingElection),
		errors.Is(err, voting.ErrMissingCandidacy),
		errors.Is(err, voting.ErrCandidacyNotInElection):
		return apperrors.BadRequest(err.Error(), err)

	case errors.Is(err, voting.ErrAlreadyVoted),
		errors.Is(err, voting.ErrIneligibleElection),
		errors.Is(err, candidacy.ErrDuplicateCandidacy):
		return apperrors.Conflict(err.Error(), err)
	case errors.Is(err, repository.ErrUsernameTaken):
		return apperrors.Conflict("El nombre de usuario ya existe", err)

	case errors.Is(err, repository.ErrUserNotFound):
		return apperrors.NotFound("el usuario", err)
	case errors.Is(err, repository.ErrElectionNotFound):
		return apperrors.NotFound("la elección", err)
	case errors.Is(err, repository.ErrCandidacyNotFound):
		return apperrors.NotFound("la candidatura", err)
	case errors.Is(err, repository.ErrVoteNotFound):
		return apperrors.NotFound("el voto", err)
	case errors.Is(err, repository.ErrProfileNotFound):
		return apperrors.NotFound("el perfil", err)
	case errors.Is(err, repository.ErrProductNotFound):
		return apperrors.NotFound("el producto", err)

	case errors.Is(err, voting.ErrSaveFailed):
		return apperrors.InternalServer(voting.ErrSaveFailed.Error(), err)
	}

	return apperrors.InternalServer("", err)
}

// respondError escreve o corpo {"error": ...}; apenas 5xx são registrados como erro
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	apiErr := toAPIError(err)
	if apiErr.Code >= http.StatusInternalServerError {
		logger.Error("falha ao processar requisição",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.Code, apiErr)
}

func badJSON(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos: " + err.Error()})
}

// idParam lê um id numérico da rota; responde 400 quando inválido
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Parámetro '" + name + "' inválido"})
		return 0, false
	}
	return uint(id), true
}
