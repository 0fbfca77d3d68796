package handler

import (
	"net/http"

	uploadService "anoa.com/presensisekolah/internal/modules/upload/service"
	"anoa.com/presensisekolah/pkg/response"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService uploadService.UploadService
}

func NewUploadHandler(uploadService uploadService.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

func (h *UploadHandler) UploadFoto(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	file, err := c.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "File tidak ditemukan"})
		return
	}

	url, err := h.uploadService.UploadFoto(c.Request.Context(), userID, file)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Upload berhasil",
		"url":     url,
	})
}
