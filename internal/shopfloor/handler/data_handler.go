package handler

import (
	"errors"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/repository"
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/service"
	"github.com/gin-gonic/gin"
)

type DataHandler struct {
	svc     *service.SnapshotService
	dataDir string
}

func NewDataHandler(svc *service.SnapshotService, dataDir string) *DataHandler {
	return &DataHandler{svc: svc, dataDir: dataDir}
}

// Load GET /data
func (h *DataHandler) Load(c *gin.Context) {
	snap, err := h.svc.Load(resolveDir(c, h.dataDir))
	if err != nil {
		if errors.Is(err, repository.ErrMissingSource) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, snap)
}
