package handler

import (
	"net/http"

	"anoa.com/presensisekolah/internal/modules/presensi/dto"
	presensiService "anoa.com/presensisekolah/internal/modules/presensi/service"
	"anoa.com/presensisekolah/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PresensiHandler struct {
	presensiService presensiService.PresensiService
}

func NewPresensiHandler(presensiService presensiService.PresensiService) *PresensiHandler {
	return &PresensiHandler{
		presensiService: presensiService,
	}
}

func (h *PresensiHandler) Scan(c *gin.Context) {
	scannerID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.ScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "QR Code tidak valid"})
		return
	}

	res, err := h.presensiService.Scan(c.Request.Context(), scannerID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Presensi berhasil dicatat",
		"status":  res.Status,
		"waktu":   res.Waktu,
	})
}

func (h *PresensiHandler) GetByUser(c *gin.Context) {
	requesterID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User id tidak valid"})
		return
	}

	records, err := h.presensiService.History(c.Request.Context(), requesterID, response.GetUserRole(c), targetID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}
