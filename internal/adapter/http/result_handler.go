package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/diillson/univoto/internal/app/tally"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResultHandler struct {
	tally  *tally.Service
	logger *zap.Logger
}

func NewResultHandler(tallyService *tally.Service, logger *zap.Logger) *ResultHandler {
	return &ResultHandler{tally: tallyService, logger: logger}
}

func (h *ResultHandler) Results(c *gin.Context) {
	res, err := h.tally.Results(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Export devolve a apuração em planilha xlsx
func (h *ResultHandler) Export(c *gin.Context) {
	data, err := h.tally.Export(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("resultados_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
