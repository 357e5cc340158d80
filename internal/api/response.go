package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homestead/server/internal/workflow"
)

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// respondWorkflowError maps the workflow error taxonomy onto HTTP
// statuses; anything unclassified is a 500 with a generic message.
func (h *Handler) respondWorkflowError(c *gin.Context, err error) {
	switch workflow.KindOf(err) {
	case workflow.KindValidation, workflow.KindInvalidState:
		respondError(c, http.StatusBadRequest, err.Error())
	case workflow.KindNotFound:
		respondError(c, http.StatusNotFound, err.Error())
	case workflow.KindForbidden:
		respondError(c, http.StatusForbidden, err.Error())
	default:
		h.logger.WithError(err).Error("Unexpected workflow error")
		respondError(c, http.StatusInternalServerError, "Server error")
	}
}
