package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/omiete01/eCommerce-microservice/internal/service"
)

// ProductHandler handles product HTTP requests.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new ProductHandler instance.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetByID godoc
// @Summary Get a product
// @Description Fetch a single product by id, with creator enrichment
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /product/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not found")
		return
	}

	view, cached, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": view, "cached": cached})
}

// List godoc
// @Summary List products
// @Description Fetch all products, enriched at cache population time
// @Tags products
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	views, cached, err := h.productService.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": views, "cached": cached})
}

// Count godoc
// @Summary Count products for a user
// @Description Count products owned by the given user id
// @Tags products
// @Produce json
// @Param user_id query int true "Owning user ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /products/count [get]
func (h *ProductHandler) Count(c *gin.Context) {
	raw := c.Query("user_id")
	if raw == "" {
		RespondError(c, http.StatusBadRequest, "user_id is required")
		return
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "user_id must be an integer")
		return
	}

	count, cached, err := h.productService.CountByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "cached": cached})
}

// Create godoc
// @Summary Create a product
// @Description Create a product after validating name and price
// @Tags products
// @Accept json
// @Produce json
// @Param request body service.ProductInput true "Product fields"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.productService.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": view})
}

// Update godoc
// @Summary Update a product
// @Description Apply a partial update; absent fields keep their value
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body service.ProductUpdate true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not found")
		return
	}

	var update service.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.productService.Update(c.Request.Context(), id, update)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": view})
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not found")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
