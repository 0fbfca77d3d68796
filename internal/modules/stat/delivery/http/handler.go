package handler

import (
	"net/http"

	statService "anoa.com/presensisekolah/internal/modules/stat/service"
	"anoa.com/presensisekolah/pkg/response"
	"github.com/gin-gonic/gin"
)

type StatHandler struct {
	statService statService.StatService
}

func NewStatHandler(statService statService.StatService) *StatHandler {
	return &StatHandler{
		statService: statService,
	}
}

func (h *StatHandler) GetDashboard(c *gin.Context) {
	stats, err := h.statService.GetDashboard(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
