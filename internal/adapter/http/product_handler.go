package http

import (
	"net/http"

	"github.com/diillson/univoto/internal/app/product"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	products *product.Service
	logger   *zap.Logger
}

func NewProductHandler(products *product.Service, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

func (h *ProductHandler) List(c *gin.Context) {
	list, err := h.products.List(c.Request.Context(), c.Query("condicion"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in product.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}
	p, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in product.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badJSON(c, err)
		return
	}
	p, err := h.products.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Producto eliminado con éxito"})
}
