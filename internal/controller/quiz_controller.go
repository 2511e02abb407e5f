package controller

import (
	"encoding/json"
	"school_backend/internal/model"
	"school_backend/internal/service"
	"school_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{
		QuizService: quizService,
	}
}

// QuizRequest options 可以是字符串数组、以数字为键的对象或者它们的 JSON 字符串形式
// swagger:model QuizRequest
type QuizRequest struct {
	CourseID      *model.FlexInt  `json:"courseId" swaggertype:"integer"`
	Question      string          `json:"question"`
	Options       json.RawMessage `json:"options" swaggertype:"object"`
	CorrectAnswer *model.FlexInt  `json:"correctAnswer" swaggertype:"integer"`
}

func (r QuizRequest) input() service.QuizInput {
	return service.QuizInput{
		CourseID:      r.CourseID,
		Question:      r.Question,
		Options:       r.Options,
		CorrectAnswer: r.CorrectAnswer,
	}
}

func bindQuizRequest(ctx *gin.Context) (*QuizRequest, bool) {
	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.HandleError(ctx, util.NewValidationError("Invalid quiz payload: "+err.Error(), ""))
		return nil, false
	}
	return &req, true
}

// CreateQuiz godoc
// @Summary 创建题目
// @Description 选项规范化为 {id: {id, value}}，id 从 1 连续编号
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body QuizRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Quiz} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "非课程所有者"
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	req, ok := bindQuizRequest(ctx)
	if !ok {
		return
	}

	quiz, err := c.QuizService.Create(claims.UserID, req.input())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// ListQuizzes godoc
// @Summary 题目列表
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId query int false "按课程过滤"
// @Param   limit query int false "每页条数(1..200)" default(50)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	courseID, err := util.ParseOptionalID(ctx.Query("courseId"), "courseId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	page, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	quizzes, total, err := c.QuizService.List(courseID, page)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.NewPageResponse(quizzes, total, page))
}

// GetQuiz godoc
// @Summary 题目详情
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	quiz, err := c.QuizService.Get(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// ReplaceQuiz godoc
// @Summary 更新题目（全部字段）
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body QuizRequest true "题目信息"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "非课程所有者"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/quizzes/{id} [put]
func (c *QuizController) ReplaceQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	req, ok := bindQuizRequest(ctx)
	if !ok {
		return
	}

	quiz, err := c.QuizService.Update(claims.UserID, id, req.input())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// PatchQuiz godoc
// @Summary 更新题目
// @Description 与 PUT 相同，按创建规则整体重新校验，所有字段必填
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   body body QuizRequest true "题目信息"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/quizzes/{id} [patch]
func (c *QuizController) PatchQuiz(ctx *gin.Context) {
	c.ReplaceQuiz(ctx)
}

// DeleteQuiz godoc
// @Summary 删除题目
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if err := c.QuizService.Delete(claims.UserID, id); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true, "id": id})
}

// RemoveOption godoc
// @Summary 删除单个选项
// @Description 删除后选项重新编号，正确答案随之映射；不能删除正确选项
// @Tags 题目
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "题目ID"
// @Param   optionId path int true "选项ID"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 400 {object} util.Response "选项不足或为正确答案"
// @Failure 404 {object} util.Response "题目或选项不存在"
// @Router /api/quizzes/{id}/options/{optionId} [delete]
func (c *QuizController) RemoveOption(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	optionID, err := strconv.Atoi(ctx.Param("optionId"))
	if err != nil || optionID < 1 {
		util.HandleError(ctx, util.NewValidationError("Invalid optionId", "optionId"))
		return
	}

	quiz, err := c.QuizService.RemoveOption(claims.UserID, id, optionID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}
