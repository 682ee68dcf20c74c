package controller

import (
	"learning_path_backend/internal/model"
	"learning_path_backend/internal/service"
	"learning_path_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

// ListSkills godoc
// @Summary List the current user's skills
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.UserSkill}
// @Failure 401 {object} util.Response
// @Router /api/skills [get]
func (c *SkillController) ListSkills(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	skills, err := c.SkillService.ListSkills(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, skills)
}

// swagger:model SkillRequest
type SkillRequest struct {
	SkillName         string  `json:"skill_name" binding:"required,max=100"`
	ProficiencyLevel  string  `json:"proficiency_level" binding:"omitempty,oneof=novice beginner intermediate advanced expert"`
	YearsOfExperience float64 `json:"years_of_experience" binding:"gte=0"`
	Notes             string  `json:"notes"`
}

// CreateSkill godoc
// @Summary Add a skill to the current user
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SkillRequest true "Skill payload"
// @Success 201 {object} util.Response{data=model.UserSkill}
// @Failure 400 {object} util.Response "Duplicate skill name"
// @Router /api/skills [post]
func (c *SkillController) CreateSkill(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill := &model.UserSkill{
		SkillName:         req.SkillName,
		YearsOfExperience: req.YearsOfExperience,
		Notes:             req.Notes,
	}
	if req.ProficiencyLevel != "" {
		skill.ProficiencyLevel = model.ProficiencyLevel(req.ProficiencyLevel)
	}

	if err := c.SkillService.CreateSkill(user.UserID, skill); err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, skill)
}

// UpdateSkill godoc
// @Summary Update one of the current user's skills
// @Tags skills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Skill ID"
// @Param body body service.SkillUpdate true "Skill fields"
// @Success 200 {object} util.Response{data=model.UserSkill}
// @Failure 404 {object} util.Response "Not found, including skills owned by others"
// @Router /api/skills/{id} [put]
func (c *SkillController) UpdateSkill(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	var update service.SkillUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	skill, err := c.SkillService.UpdateSkill(id, user.UserID, update)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, skill)
}

// DeleteSkill godoc
// @Summary Remove one of the current user's skills
// @Tags skills
// @Produce json
// @Security BearerAuth
// @Param id path int true "Skill ID"
// @Success 204 "No Content"
// @Failure 404 {object} util.Response
// @Router /api/skills/{id} [delete]
func (c *SkillController) DeleteSkill(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := paramID(ctx)
	if !ok {
		return
	}

	if err := c.SkillService.DeleteSkill(id, user.UserID); err != nil {
		respondError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
