package handler

import (
	"github.com/devimrittika/Green-Planet/internal/hub"

	"github.com/gin-gonic/gin"
)

type MonitorHandler interface {
	GetHubStats(c *gin.Context)
}

type monitorHandler struct {
	monitor *hub.MonitorService
}

func NewMonitorHandler(monitor *hub.MonitorService) MonitorHandler {
	return &monitorHandler{monitor: monitor}
}

func (h *monitorHandler) GetHubStats(c *gin.Context) {
	RespondSuccess(c, h.monitor.GetStats(), "")
}
