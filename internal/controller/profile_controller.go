package controller

import (
	"fmt"
	"path/filepath"
	"strings"

	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProfileController struct {
	ProfileService *service.ProfileService
	StorageService *service.StorageService
}

func NewProfileController(profileService *service.ProfileService, storageService *service.StorageService) *ProfileController {
	return &ProfileController{
		ProfileService: profileService,
		StorageService: storageService,
	}
}

// ListProfiles godoc
// @Summary List visible profiles
// @Description Staff see every profile, everyone else sees public profiles plus their own
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 401 {object} util.Response
// @Router /api/profiles [get]
func (c *ProfileController) ListProfiles(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	profiles, total, err := c.ProfileService.ListProfiles(user.UserID, user.IsStaff, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: profiles, Total: total, Page: page, Limit: limit})
}

// GetMyProfile godoc
// @Summary Get the current user's profile
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.ProfileView}
// @Failure 401 {object} util.Response
// @Router /api/profiles/me [get]
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.ProfileService.GetProfileByUser(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// UpdateMyProfile godoc
// @Summary Update the current user's profile
// @Description Partial update; omitted fields keep their value
// @Tags profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProfileUpdate true "Profile fields"
// @Success 200 {object} util.Response{data=service.ProfileView}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/profiles/me [put]
func (c *ProfileController) UpdateMyProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var update service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.ProfileService.UpdateProfile(user.UserID, update)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// UploadAvatar godoc
// @Summary Upload the current user's avatar
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/profiles/me/avatar [post]
func (c *ProfileController) UploadAvatar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		util.BadRequest(ctx, "unsupported image type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("avatars/%d/%s%s", user.UserID, uuid.NewString(), ext)
	contentType := fileHeader.Header.Get("Content-Type")
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.ProfileService.SetAvatar(user.UserID, url); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}

// GetProfile godoc
// @Summary Get a user's profile by user id
// @Tags profiles
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=service.ProfileView}
// @Failure 404 {object} util.Response
// @Router /api/profiles/{id} [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	view, err := c.ProfileService.GetProfileByUser(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	// Private profiles are only visible to their owner and to staff.
	if !view.PublicProfile && view.UserID != user.UserID && !user.IsStaff {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, view)
}
