package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/smtp-gateway-agent/api/v1"
	srvErrors "github.com/kubev2v/smtp-gateway-agent/pkg/errors"
)

// Login checks the login gate credentials
// (POST /login)
func (h *Handler) Login(c *gin.Context) {
	var req v1.LoginJSONRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.auth.Verify(req.Username, req.Password); err != nil {
		switch err.(type) {
		case *srvErrors.InvalidCredentialsError:
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify credentials"})
		}
		return
	}

	c.JSON(http.StatusOK, v1.LoginResponse{Authenticated: true})
}
