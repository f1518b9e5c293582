package api

import (
	"journal/internal/export"
	"net/http"

	"github.com/gin-gonic/gin"
)

type exportRequest struct {
	Name         string `json:"name"`
	SkipIfExists bool   `json:"skip_if_exists"`
}

// Export 导出快照到配置的存储
func (h *HTTPHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		ServiceUnavailable(c, "export storage not available")
		return
	}

	var req exportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			InvalidPayload(c)
			return
		}
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.exporter.Export(ctx, export.Options{Name: req.Name, SkipIfExists: req.SkipIfExists})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
