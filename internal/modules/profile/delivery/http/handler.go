package handler

import (
	"io"
	"net/http"

	profileDto "anoa.com/presensisekolah/internal/modules/profile/dto"
	profileService "anoa.com/presensisekolah/internal/modules/profile/service"
	"anoa.com/presensisekolah/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService profileService.ProfileService
}

func NewProfileHandler(profileService profileService.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	profile, err := h.profileService.GetMe(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	// The body is parsed raw: the merge policy needs to tell an absent key
	// apart from an explicit null.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Body tidak dapat dibaca"})
		return
	}

	input, err := profileDto.ParseUpdateProfileInput(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	profile, err := h.profileService.UpdateMe(c.Request.Context(), userID, response.GetUserRole(c), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profil diperbarui",
		"profile": profile,
	})
}
