package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/services"
	"github.com/railway_station/pkg/utils"
)

type StatsHandler struct {
	service services.StatsService
}

func NewStatsHandler(service services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// GetStats godoc
// @Summary 系统统计
// @Description 用户总数和车次最多的前 5 个方向
// @Tags Stats
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=models.SystemStats}
// @Router /stats [get]
// @Security BearerAuth
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.service.SystemStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, stats, "")
}

// StatsPage 统计页
func (h *StatsHandler) StatsPage(c *gin.Context) {
	stats, err := h.service.SystemStats(c.Request.Context())
	if err != nil {
		status, message := errorStatus(err)
		c.HTML(status, "error.html", viewData(c, gin.H{"Title": "Error", "Message": message}))
		return
	}
	c.HTML(http.StatusOK, "stats.html", viewData(c, gin.H{"Title": "Statistics", "Stats": stats}))
}
