package controller

import (
	"school_backend/internal/service"
	"school_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户相关的HTTP请求
type UserController struct {
	UserService *service.UserService
}

// NewUserController 创建一个新的用户控制器实例
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		UserService: userService,
	}
}

// GetUsers godoc
// @Summary 获取用户列表
// @Description 获取用户列表，支持分页和角色筛选
// @Tags 用户管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   role query string false "角色筛选" Enums(Teacher, Student)
// @Param   limit query int false "每页条数(1..200)" default(50)
// @Param   offset query int false "偏移量" default(0)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	page, err := util.ParsePagination(ctx, util.DefaultLimit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	users, total, err := c.UserService.GetUsers(ctx.Query("role"), page)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.NewPageResponse(users, total, page))
}

// GetUser godoc
// @Summary 获取用户详情
// @Tags 用户管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.PublicUser} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := util.ParseIDParam(ctx, "id")
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	user, err := c.UserService.GetUserByID(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, user.Public())
}
