package handler

import (
	"github.com/bitfantasy/nimo-shopfloor/internal/shopfloor/service"
	"github.com/gin-gonic/gin"
)

// Handlers 车间HTTP处理器集合
type Handlers struct {
	Data      *DataHandler
	Inventory *InventoryHandler
	Build     *BuildHandler
	History   *HistoryHandler
}

// NewHandlers 创建处理器集合。dataDir 为配置的默认数据目录，
// 请求可用 ?dir= 指向其他目录（桌面端外壳逐目录打开的场景）。
func NewHandlers(svc *service.Services, dataDir string) *Handlers {
	return &Handlers{
		Data:      NewDataHandler(svc.Snapshot, dataDir),
		Inventory: NewInventoryHandler(svc.Inventory, dataDir),
		Build:     NewBuildHandler(svc.Build, dataDir),
		History:   NewHistoryHandler(svc.Snapshot, dataDir),
	}
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{Code: 0, Message: "success", Data: data})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{Code: 0, Message: "success", Data: data})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{Code: code, Message: message})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// resolveDir 请求级数据目录：?dir= 优先，否则用配置默认值
func resolveDir(c *gin.Context, fallback string) string {
	if dir := c.Query("dir"); dir != "" {
		return dir
	}
	return fallback
}
