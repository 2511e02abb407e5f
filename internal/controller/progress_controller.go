package controller

import (
	"net/http"
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{
		ProgressService: progressService,
	}
}

// swagger:model EnrollRequest
type EnrollRequest struct {
	CourseID uint `json:"courseId" binding:"required,min=1"`
}

// swagger:model ProgressPatchRequest
type ProgressPatchRequest struct {
	Status *string  `json:"status"`
	Score  *float64 `json:"score"`
}

// Enroll godoc
// @Summary 选课
// @Description 重复选课返回已有记录(200)，首次选课返回 201
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EnrollRequest true "课程ID"
// @Success 201 {object} util.Response{data=model.Progress} "选课成功"
// @Success 200 {object} util.Response{data=model.Progress} "已选课"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/progress/enroll [post]
func (c *ProgressController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	progress, created, err := c.ProgressService.Enroll(claims.UserID, req.CourseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if created {
		util.Created(ctx, progress)
		return
	}
	ctx.JSON(http.StatusOK, util.Response{
		Code:    "OK",
		Message: "Already enrolled",
		Data:    progress,
	})
}

// GetEnrollment godoc
// @Summary 查询选课进度
// @Tags 学习进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Progress} "成功"
// @Failure 404 {object} util.Response "未选修该课程"
// @Router /api/progress/enrollment/{courseId} [get]
func (c *ProgressController) GetEnrollment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, err := util.ParseIDParam(ctx, "courseId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	progress, err := c.ProgressService.Get(claims.UserID, courseID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// PatchEnrollment godoc
// @Summary 更新学习进度
// @Description 状态只能前进 enrolled -> in_progress -> completed，分数范围 0..100
// @Tags 学习进度
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "课程ID"
// @Param   body body ProgressPatchRequest true "状态或分数"
// @Success 200 {object} util.Response{data=model.Progress} "成功"
// @Failure 400 {object} util.Response "非法状态变更"
// @Failure 404 {object} util.Response "未选修该课程"
// @Router /api/progress/enrollment/{courseId} [patch]
func (c *ProgressController) PatchEnrollment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courseID, err := util.ParseIDParam(ctx, "courseId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req ProgressPatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	progress, err := c.ProgressService.Patch(claims.UserID, courseID, service.ProgressPatch{
		Status: req.Status,
		Score:  req.Score,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// MyEnrolledCourses godoc
// @Summary 我的已选课程
// @Tags 学习进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "每页条数(1..200)" default(50)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/progress/my-courses [get]
func (c *ProgressController) MyEnrolledCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	courses, total, err := c.ProgressService.ListEnrolled(claims.UserID, page)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.NewPageResponse(courses, total, page))
}

// Catalog godoc
// @Summary 课程目录（含选课状态）
// @Tags 学习进度
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "每页条数(1..200)" default(50)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/progress/courses [get]
func (c *ProgressController) Catalog(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	courses, total, err := c.ProgressService.ListCatalog(claims.UserID, page)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.NewPageResponse(courses, total, page))
}
