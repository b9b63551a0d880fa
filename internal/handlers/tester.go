package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/smtp-gateway-agent/api/v1"
	srvErrors "github.com/kubev2v/smtp-gateway-agent/pkg/errors"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// GetConnectionTest returns the current run
// (GET /connection-test)
func (h *Handler) GetConnectionTest(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewTestRun(h.testerSrv.Status()))
}

// StartConnectionTest sends the draft to the validation service
// (POST /connection-test)
func (h *Handler) StartConnectionTest(c *gin.Context) {
	run, err := h.testerSrv.Start(c.Request.Context())
	if err != nil {
		switch err.(type) {
		case *srvErrors.TestInProgressError:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			zap.S().Named("tester_handler").Errorw("failed to start connection test", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start connection test"})
		}
		return
	}

	c.JSON(http.StatusAccepted, v1.NewTestRun(run))
}

// ListConnectionTestHistory returns completed runs, newest first
// (GET /connection-test/history)
func (h *Handler) ListConnectionTestHistory(c *gin.Context, params v1.ListConnectionTestHistoryParams) {
	limit, err := historyLimit(params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runs, err := h.testerSrv.History(c.Request.Context(), limit)
	if err != nil {
		zap.S().Named("tester_handler").Errorw("failed to list test runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list test runs"})
		return
	}

	c.JSON(http.StatusOK, v1.NewTestRunList(runs))
}

// ExportConnectionTestHistory returns completed runs as a workbook
// (GET /connection-test/history/export)
func (h *Handler) ExportConnectionTestHistory(c *gin.Context, params v1.ExportConnectionTestHistoryParams) {
	limit, err := historyLimit(params.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := h.testerSrv.ExportHistory(c.Request.Context(), &buf, limit); err != nil {
		zap.S().Named("tester_handler").Errorw("failed to export test runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export test runs"})
		return
	}

	filename := fmt.Sprintf("connection-tests-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetConnectionTestRun returns one completed run
// (GET /connection-test/history/{id})
func (h *Handler) GetConnectionTestRun(c *gin.Context, id openapi_types.UUID) {
	run, err := h.testerSrv.GetRun(c.Request.Context(), id)
	if err != nil {
		switch err.(type) {
		case *srvErrors.ResourceNotFoundError:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			zap.S().Named("tester_handler").Errorw("failed to get test run", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get test run"})
		}
		return
	}

	c.JSON(http.StatusOK, v1.NewTestRun(*run))
}

func historyLimit(limit *int) (uint64, error) {
	if limit == nil {
		return defaultHistoryLimit, nil
	}
	if *limit < 1 || *limit > maxHistoryLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d", maxHistoryLimit)
	}
	return uint64(*limit), nil
}
