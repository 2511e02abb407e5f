package controller

import (
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// MeController 当前登录用户自身的资料与概览
type MeController struct {
	MeService *service.MeService
}

func NewMeController(meService *service.MeService) *MeController {
	return &MeController{
		MeService: meService,
	}
}

// swagger:model RenameRequest
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// GetMe godoc
// @Summary 获取当前用户信息
// @Tags 个人中心
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.PublicUser} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/me [get]
func (c *MeController) GetMe(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	user, err := c.MeService.Profile(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, user.Public())
}

// Rename godoc
// @Summary 修改姓名
// @Tags 个人中心
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RenameRequest true "新姓名"
// @Success 200 {object} util.Response{data=model.PublicUser} "成功"
// @Failure 400 {object} util.Response "姓名过短"
// @Router /api/me [patch]
func (c *MeController) Rename(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req RenameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	user, err := c.MeService.Rename(claims.UserID, req.Name)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, user.Public())
}

// ChangePassword godoc
// @Summary 修改密码
// @Tags 个人中心
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ChangePasswordRequest true "当前密码与新密码"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "当前密码错误或新密码过短"
// @Router /api/me/password [patch]
func (c *MeController) ChangePassword(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	if err := c.MeService.ChangePassword(claims.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"updated": true})
}

// UploadAvatar godoc
// @Summary 上传头像
// @Description 仅支持图片，大小不超过 2MB
// @Tags 个人中心
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "头像图片"
// @Success 200 {object} util.Response{data=model.PublicUser} "成功"
// @Failure 400 {object} util.Response "文件不合法"
// @Router /api/me/avatar [post]
func (c *MeController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.HandleError(ctx, util.NewValidationError("file is required", "file"))
		return
	}

	user, err := c.MeService.UploadAvatar(ctx.Request.Context(), claims.UserID, file)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, user.Public())
}

// MyCourses godoc
// @Summary 我的课程
// @Description 教师返回开设的课程，学生返回已选课程
// @Tags 个人中心
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "每页条数(1..200)" default(12)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/me/courses [get]
func (c *MeController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, err := util.ParsePagination(ctx, service.MyCoursesLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	items, total, err := c.MeService.MyCourses(claims, page)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.NewPageResponse(items, total, page))
}

// Summary godoc
// @Summary 个人概览
// @Tags 个人中心
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/me/summary [get]
func (c *MeController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	summary, err := c.MeService.Summary(claims)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
