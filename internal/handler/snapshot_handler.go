package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workflow-config-api/internal/response"
	"workflow-config-api/internal/service"
)

type SnapshotHandler struct {
	snapshotService service.SnapshotService
}

func NewSnapshotHandler(snapshotService service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// ExportSnapshot uploads a full configuration snapshot to object storage
func (h *SnapshotHandler) ExportSnapshot(c *gin.Context) {
	snapshot, err := h.snapshotService.ExportSnapshot(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, snapshot)
}
