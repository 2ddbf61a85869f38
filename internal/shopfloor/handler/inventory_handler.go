package handler

import (
	"errors"

	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/repository"
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/service"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	svc     *service.InventoryService
	dataDir string
}

func NewInventoryHandler(svc *service.InventoryService, dataDir string) *InventoryHandler {
	return &InventoryHandler{svc: svc, dataDir: dataDir}
}

// LoadMain GET /inventory
func (h *InventoryHandler) LoadMain(c *gin.Context) {
	items, err := h.svc.LoadMain(resolveDir(c, h.dataDir))
	if err != nil {
		if errors.Is(err, repository.ErrMissingSource) {
			NotFound(c, err.Error())
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, items)
}

// Export GET /inventory/export
func (h *InventoryHandler) Export(c *gin.Context) {
	items, err := h.svc.LoadMain(resolveDir(c, h.dataDir))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	f, filename, err := h.svc.ExportXLSX(items)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
