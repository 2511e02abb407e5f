package controller

import (
	"school_backend/internal/model"
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService   *service.CourseService
	ProgressService *service.ProgressService
	ScoringService  *service.ScoringService
}

func NewCourseController(courseService *service.CourseService, progressService *service.ProgressService, scoringService *service.ScoringService) *CourseController {
	return &CourseController{
		CourseService:   courseService,
		ProgressService: progressService,
		ScoringService:  scoringService,
	}
}

// swagger:model CourseRequest
type CourseRequest struct {
	Title       string `json:"title" binding:"required,notblank"`
	Description string `json:"description" binding:"required,notblank"`
}

// swagger:model CoursePatchRequest
type CoursePatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Answers []model.SubmittedAnswer `json:"answers"`
}

// CreateCourse godoc
// @Summary 创建课程
// @Description 教师创建课程，课程归属当前登录教师
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CourseRequest true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "需要教师角色"
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	course, err := c.CourseService.Create(claims.UserID, req.Title, req.Description)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// courseFilter 解析 mine / teacherId 过滤条件
func courseFilter(ctx *gin.Context) (uint, error) {
	claims := util.GetUserFromContext(ctx)
	if ctx.Query("mine") == "true" {
		if claims.Role != model.Teacher {
			return 0, util.NewForbiddenError("Requires role: Teacher")
		}
		return claims.UserID, nil
	}
	return util.ParseOptionalID(ctx.Query("teacherId"), "teacherId")
}

// ListCourses godoc
// @Summary 课程列表
// @Description 分页列出课程；mine=true 仅返回当前教师的课程
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   mine query bool false "只看我的课程"
// @Param   teacherId query int false "按教师过滤"
// @Param   limit query int false "每页条数(1..200)" default(50)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	teacherID, err := courseFilter(ctx)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	page, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	courses, total, err := c.CourseService.List(teacherID, page)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.NewPageResponse(courses, total, page))
}

// CountCourses godoc
// @Summary 课程总数
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   mine query bool false "只统计我的课程"
// @Param   teacherId query int false "按教师过滤"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/courses/count [get]
func (c *CourseController) CountCourses(ctx *gin.Context) {
	teacherID, err := courseFilter(ctx)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	total, err := c.CourseService.Count(teacherID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"total": total})
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	course, err := c.CourseService.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// ReplaceCourse godoc
// @Summary 更新课程（全部字段）
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body CourseRequest true "课程信息"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "非课程所有者"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [put]
func (c *CourseController) ReplaceCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	course, err := c.CourseService.Replace(claims.UserID, id, req.Title, req.Description)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// PatchCourse godoc
// @Summary 更新课程（部分字段）
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body CoursePatchRequest true "需要修改的字段"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "非课程所有者"
// @Router /api/courses/{id} [patch]
func (c *CourseController) PatchCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req CoursePatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.BindingError(err))
		return
	}

	course, err := c.CourseService.Patch(claims.UserID, id, service.CoursePatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 同时级联删除题目与选课记录
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "非课程所有者"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if err := c.CourseService.Delete(claims.UserID, id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true, "id": id})
}

// ListCourseQuizzes godoc
// @Summary 课程题目列表
// @Description 仅课程的授课教师能看到正确答案
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   limit query int false "每页条数(1..200)" default(50)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/quizzes [get]
func (c *CourseController) ListCourseQuizzes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	page, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	quizzes, total, err := c.CourseService.ListQuizzes(claims, id, page)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.NewPageResponse(quizzes, total, page))
}

// StartCourse godoc
// @Summary 开始学习课程
// @Description enrolled -> in_progress，已在进行中时保持不变
// @Tags 课程
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Progress} "成功"
// @Failure 400 {object} util.Response "非法状态变更"
// @Failure 404 {object} util.Response "未选修该课程"
// @Router /api/courses/{id}/start [post]
func (c *CourseController) StartCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	progress, err := c.ProgressService.Start(claims.UserID, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// SubmitQuizzes godoc
// @Summary 提交课程测验
// @Description 对课程全部题目评分，追加一次提交记录并将状态置为 completed
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body SubmitQuizRequest true "答案列表"
// @Success 200 {object} util.Response{data=service.SubmissionResult} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "无题目或未选课"
// @Failure 409 {object} util.Response "并发提交冲突"
// @Router /api/courses/{id}/quizzes/submit [post]
func (c *CourseController) SubmitQuizzes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.NewValidationError("answers must be a non-empty array of {questionId, answerIndex}", "answers"))
		return
	}

	result, err := c.ScoringService.Submit(claims.UserID, id, req.Answers)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
