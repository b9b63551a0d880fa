package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/smtp-gateway-agent/api/v1"
)

// GetGateway returns the current draft
// (GET /gateway)
func (h *Handler) GetGateway(c *gin.Context) {
	cfg, err := h.gatewaySrv.Snapshot(c.Request.Context())
	if err != nil {
		zap.S().Named("gateway_handler").Errorw("failed to read gateway configuration", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read gateway configuration"})
		return
	}

	c.JSON(http.StatusOK, v1.NewGatewayConfig(cfg))
}

// UpdateGatewayField replaces one field of the draft
// (PUT /gateway/fields/{name})
func (h *Handler) UpdateGatewayField(c *gin.Context, name string) {
	var req v1.UpdateGatewayFieldJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "field name is required"})
		return
	}

	if err := h.gatewaySrv.UpdateField(c.Request.Context(), name, req.Value); err != nil {
		zap.S().Named("gateway_handler").Errorw("failed to update field", "field", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update field"})
		return
	}

	h.GetGateway(c)
}

// SaveGateway writes the draft to the log
// (POST /gateway/save)
func (h *Handler) SaveGateway(c *gin.Context) {
	cfg, err := h.gatewaySrv.Save(c.Request.Context())
	if err != nil {
		zap.S().Named("gateway_handler").Errorw("failed to save gateway configuration", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save gateway configuration"})
		return
	}

	c.JSON(http.StatusOK, v1.SaveResponse{
		Message: "SMTP configuration saved",
		Gateway: v1.NewGatewayConfig(cfg),
	})
}
