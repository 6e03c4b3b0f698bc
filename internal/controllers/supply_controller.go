package controllers

import (
	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"github.com/franciscosanchezn/gin-relief-api/internal/services"
	"github.com/gin-gonic/gin"
)

// SupplyController handles HTTP requests related to supplies
type SupplyController interface {
	// GetAllSupplies retrieves all supplies
	GetAllSupplies(c *gin.Context)
	// CreateSupply creates a new supply
	CreateSupply(c *gin.Context)
	// GetSupplyByID retrieves a supply by its ID
	GetSupplyByID(c *gin.Context)
	// UpdateSupply overwrites the whitelisted fields of a supply
	UpdateSupply(c *gin.Context)
	// DeleteSupply deletes a supply by its ID
	DeleteSupply(c *gin.Context)
}

type supplyController struct {
	service services.ResourceService
}

// NewSupplyController creates a new instance of SupplyController
func NewSupplyController(service services.ResourceService) SupplyController {
	return &supplyController{service: service}
}

// GetAllSupplies godoc
// @Summary Get all supplies
// @Description Get every supply, unfiltered and unpaginated
// @Tags supplies
// @Produce json
// @Success 201 {object} models.DataResponse{data=[]models.Supply}
// @Failure 500 {object} models.Response
// @Router /api/v1/supplies [get]
func (sc *supplyController) GetAllSupplies(c *gin.Context) {
	supplies, err := sc.service.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to retrieve supplies")
		return
	}
	c.JSON(ResourceStatus, models.DataResponse{
		Success: true,
		Message: "Supplies retrieve successfully!",
		Data:    supplies,
	})
}

// CreateSupply godoc
// @Summary Create a supply
// @Description Store the request body as a new supply
// @Tags supplies
// @Accept json
// @Produce json
// @Param supply body models.Supply true "Supply"
// @Success 201 {object} models.DataResponse{data=models.InsertResult}
// @Failure 400 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /api/v1/supply [post]
func (sc *supplyController) CreateSupply(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	result, err := sc.service.Create(c.Request.Context(), doc)
	if err != nil {
		respondStoreError(c, err, "Failed to create supply")
		return
	}
	c.JSON(ResourceStatus, models.DataResponse{
		Success: true,
		Message: "Supplies created successfully!",
		Data:    result,
	})
}

// GetSupplyByID godoc
// @Summary Get supply by ID
// @Description Get a single supply. A missing supply is a successful response with null data.
// @Tags supplies
// @Produce json
// @Param id path string true "Supply ID (24 hex characters)"
// @Success 201 {object} models.DataResponse{data=models.Supply}
// @Failure 400 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /api/v1/supply/{id} [get]
func (sc *supplyController) GetSupplyByID(c *gin.Context) {
	supply, err := sc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Failed to retrieve supply")
		return
	}

	// a nil document renders as data: null
	c.JSON(ResourceStatus, models.DataResponse{
		Success: true,
		Message: "Supply is retrieve successfully!",
		Data:    supply,
	})
}

// UpdateSupply godoc
// @Summary Update a supply
// @Description Overwrite img, title, category, price and description with the body's values. A whitelisted field missing from the body is set to null. Other fields are ignored.
// @Tags supplies
// @Accept json
// @Produce json
// @Param id path string true "Supply ID (24 hex characters)"
// @Param supply body models.Supply true "Fields to overwrite"
// @Success 201 {object} models.DataResponse{data=models.UpdateResult}
// @Failure 400 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /api/v1/supply/{id} [put]
func (sc *supplyController) UpdateSupply(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	result, err := sc.service.Update(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		respondStoreError(c, err, "Failed to update supply")
		return
	}
	c.JSON(ResourceStatus, models.DataResponse{
		Success: true,
		Message: "Supply is updated successfully!",
		Data:    result,
	})
}

// DeleteSupply godoc
// @Summary Delete a supply
// @Description Delete a supply by its ID
// @Tags supplies
// @Produce json
// @Param id path string true "Supply ID (24 hex characters)"
// @Success 201 {object} models.DataResponse{data=models.DeleteResult}
// @Failure 400 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /api/v1/supply/{id} [delete]
func (sc *supplyController) DeleteSupply(c *gin.Context) {
	result, err := sc.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "Failed to delete supply")
		return
	}
	c.JSON(ResourceStatus, models.DataResponse{
		Success: true,
		Message: "Supply is deleted successfully!",
		Data:    result,
	})
}
