package controllers

import (
	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"github.com/franciscosanchezn/gin-relief-api/internal/services"
	"github.com/gin-gonic/gin"
)

// CollectionMessages are the success messages of one collection
type CollectionMessages struct {
	Listed  string
	Created string
}

// CollectionController lists and creates documents of a schema-flexible collection
type CollectionController struct {
	service  services.ResourceService
	messages CollectionMessages
}

func NewCollectionController(service services.ResourceService, messages CollectionMessages) *CollectionController {
	return &CollectionController{service: service, messages: messages}
}

func NewDonorController(service services.ResourceService) *CollectionController {
	return NewCollectionController(service, CollectionMessages{
		Listed:  "Donor retrieve successfully!",
		Created: "Donor created successfully!",
	})
}

func NewCommunityController(service services.ResourceService) *CollectionController {
	return NewCollectionController(service, CollectionMessages{
		Listed:  "Community post retrieve successfully!",
		Created: "Community post created successfully!",
	})
}

func NewVolunteerController(service services.ResourceService) *CollectionController {
	return NewCollectionController(service, CollectionMessages{
		Listed:  "Volunteer retrieve successfully!",
		Created: "Volunteer post created successfully!",
	})
}

// List godoc
// @Summary List documents
// @Description Return every document of the collection
// @Tags donors,community,volunteers
// @Produce json
// @Success 201 {object} models.DataResponse{data=[]models.Document}
// @Failure 500 {object} models.Response
// @Router /api/v1/donors [get]
// @Router /api/v1/community [get]
// @Router /api/v1/volunteer [get]
func (cc *CollectionController) List(c *gin.Context) {
	docs, err := cc.service.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, err, "Failed to retrieve documents")
		return
	}
	c.JSON(ResourceStatus, models.DataResponse{
		Success: true,
		Message: cc.messages.Listed,
		Data:    docs,
	})
}

// Create godoc
// @Summary Create a document
// @Description Store the request body as sent
// @Tags donors,community,volunteers
// @Accept json
// @Produce json
// @Param document body models.Document true "Any JSON object"
// @Success 201 {object} models.DataResponse{data=models.InsertResult}
// @Failure 400 {object} models.Response
// @Failure 500 {object} models.Response
// @Router /api/v1/donor [post]
// @Router /api/v1/community [post]
// @Router /api/v1/volunteer [post]
func (cc *CollectionController) Create(c *gin.Context) {
	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	result, err := cc.service.Create(c.Request.Context(), doc)
	if err != nil {
		respondStoreError(c, err, "Failed to create document")
		return
	}
	c.JSON(ResourceStatus, models.DataResponse{
		Success: true,
		Message: cc.messages.Created,
		Data:    result,
	})
}
