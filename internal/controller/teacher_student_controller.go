package controller

import (
	"fmt"
	"net/http"
	"school_backend/internal/service"
	"school_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

// TeacherStudentController 教师查看选修自己课程的学生
type TeacherStudentController struct {
	TeacherStudentService *service.TeacherStudentService
	ExportService         *service.ExportService
}

func NewTeacherStudentController(teacherStudentService *service.TeacherStudentService, exportService *service.ExportService) *TeacherStudentController {
	return &TeacherStudentController{
		TeacherStudentService: teacherStudentService,
		ExportService:         exportService,
	}
}

// ListStudents godoc
// @Summary 我的学生
// @Description 按学生分组，列出其在当前教师名下选修的课程
// @Tags 教师
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "每页条数(1..200)" default(50)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 403 {object} util.Response "需要教师角色"
// @Router /api/teacher/students [get]
func (c *TeacherStudentController) ListStudents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	students, total, err := c.TeacherStudentService.List(claims.UserID, page)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.NewPageResponse(students, total, page))
}

// GetStudent godoc
// @Summary 学生详情
// @Tags 教师
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path int true "学生ID"
// @Success 200 {object} util.Response{data=model.RosterStudent} "成功"
// @Failure 404 {object} util.Response "该学生未选修当前教师的课程"
// @Router /api/teacher/students/{studentId} [get]
func (c *TeacherStudentController) GetStudent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	studentID, err := util.ParseIDParam(ctx, "studentId")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	student, err := c.TeacherStudentService.Detail(claims.UserID, studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, student)
}

// ExportStudents godoc
// @Summary 导出学生名单
// @Description 以 Excel 格式导出全部学生及选课情况
// @Tags 教师
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} file "xlsx 文件"
// @Router /api/teacher/students/export [get]
func (c *TeacherStudentController) ExportStudents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	data, err := c.ExportService.RosterXLSX(claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	filename := fmt.Sprintf("students_%s.xlsx", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, util.MimeXLSX, data)
}
