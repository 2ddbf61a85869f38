package handler

import (
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/service"
	"github.com/gin-gonic/gin"
)

type BuildHandler struct {
	svc     *service.BuildService
	dataDir string
}

func NewBuildHandler(svc *service.BuildService, dataDir string) *BuildHandler {
	return &BuildHandler{svc: svc, dataDir: dataDir}
}

// Record POST /builds
func (h *BuildHandler) Record(c *gin.Context) {
	var req service.RecordBuildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	// 记账后的操作员缺省取登录身份
	if req.Operator == "" {
		if name, ok := c.Get("user_name"); ok {
			req.Operator, _ = name.(string)
		}
	}
	snap, err := h.svc.RecordBuild(resolveDir(c, h.dataDir), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, snap)
}

// Buildability GET /assemblies/:sku/buildability
func (h *BuildHandler) Buildability(c *gin.Context) {
	sku := c.Param("sku")
	respectReservations := c.DefaultQuery("respect_reservations", "true") != "false"
	result, err := h.svc.Buildability(resolveDir(c, h.dataDir), sku, respectReservations)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, result)
}
