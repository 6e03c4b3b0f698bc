package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/franciscosanchezn/gin-relief-api/internal/models"
	"github.com/franciscosanchezn/gin-relief-api/internal/store"
	"github.com/gin-gonic/gin"
)

// ResourceStatus is answered by every resource route, reads and deletes included,
// so existing clients keep seeing the status they were built against.
const ResourceStatus = http.StatusCreated

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.NewErrorResponse(code, message))
}

// respondStoreError answers a failed store call: malformed ids are the caller's fault,
// everything else is logged and reported as a server error
func respondStoreError(c *gin.Context, err error, message string) {
	if errors.Is(err, store.ErrInvalidID) {
		respondError(c, http.StatusBadRequest, models.ErrInvalidID, "Invalid id format")
		return
	}
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, models.ErrInternalServer, message)
}

// bindDocument reads the body as a JSON object. An empty body is an empty document.
func bindDocument(c *gin.Context) (models.Document, bool) {
	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, models.ErrInvalidBody, "Request body must be a JSON object")
		return nil, false
	}
	if doc == nil {
		doc = models.Document{}
	}
	return doc, true
}
