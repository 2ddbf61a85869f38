package handler

import (
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/service"
	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	svc     *service.SnapshotService
	dataDir string
}

func NewHistoryHandler(svc *service.SnapshotService, dataDir string) *HistoryHandler {
	return &HistoryHandler{svc: svc, dataDir: dataDir}
}

// List GET /history — 主历史日志，文件缺失返回空列表
func (h *HistoryHandler) List(c *gin.Context) {
	snap, err := h.svc.Load(resolveDir(c, h.dataDir))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, snap.BuildHistory)
}

// ListPanel GET /history/panel — 面板历史日志，同样缺失不报错
func (h *HistoryHandler) ListPanel(c *gin.Context) {
	records, err := h.svc.PanelHistory(resolveDir(c, h.dataDir))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, records)
}
