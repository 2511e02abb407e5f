// Package docs Swagger 文档模板，修改控制器注解后执行 swag init 重新生成
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/auth/login": {
            "post": {
                "tags": ["认证"],
                "summary": "用户登录",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.LoginRequest"}}],
                "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}, "401": {"description": "账号或密码错误", "schema": {"$ref": "#/definitions/util.Response"}}}
            }
        },
        "/api/auth/signup": {
            "post": {
                "tags": ["认证"],
                "summary": "注册新用户",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.SignupRequest"}}],
                "responses": {"201": {"description": "创建成功", "schema": {"$ref": "#/definitions/util.Response"}}, "409": {"description": "邮箱已被注册", "schema": {"$ref": "#/definitions/util.Response"}}}
            }
        },
        "/api/courses": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["课程"],
                "summary": "课程列表",
                "parameters": [
                    {"type": "boolean", "name": "mine", "in": "query"},
                    {"type": "integer", "name": "teacherId", "in": "query"},
                    {"type": "integer", "default": 50, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["课程"],
                "summary": "创建课程",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.CourseRequest"}}],
                "responses": {"201": {"description": "创建成功", "schema": {"$ref": "#/definitions/util.Response"}}}
            }
        },
        "/api/courses/count": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "tags": ["课程"],
                "summary": "课程总数",
                "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}
            }
        },
        "/api/courses/{id}": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["课程"], "summary": "课程详情", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["课程"], "summary": "更新课程（全部字段）", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.CourseRequest"}}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "patch": {"security": [{"ApiKeyAuth": []}], "tags": ["课程"], "summary": "更新课程（部分字段）", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.CoursePatchRequest"}}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["课程"], "summary": "删除课程", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/courses/{id}/quizzes": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["课程"], "summary": "课程题目列表", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/courses/{id}/quizzes/submit": {
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["课程"], "summary": "提交课程测验", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.SubmitQuizRequest"}}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}, "409": {"description": "并发提交冲突", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/courses/{id}/start": {
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["课程"], "summary": "开始学习课程", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/health": {
            "get": {"tags": ["系统"], "summary": "健康检查", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/me": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["个人中心"], "summary": "获取当前用户信息", "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "patch": {"security": [{"ApiKeyAuth": []}], "tags": ["个人中心"], "summary": "修改姓名", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.RenameRequest"}}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/me/avatar": {
            "post": {"security": [{"ApiKeyAuth": []}], "consumes": ["multipart/form-data"], "tags": ["个人中心"], "summary": "上传头像", "parameters": [{"type": "file", "name": "file", "in": "formData", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/me/courses": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["个人中心"], "summary": "我的课程", "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/me/password": {
            "patch": {"security": [{"ApiKeyAuth": []}], "tags": ["个人中心"], "summary": "修改密码", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.ChangePasswordRequest"}}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/me/summary": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["个人中心"], "summary": "个人概览", "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/progress/courses": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["学习进度"], "summary": "课程目录（含选课状态）", "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/progress/enroll": {
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["学习进度"], "summary": "选课", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.EnrollRequest"}}], "responses": {"200": {"description": "已选课", "schema": {"$ref": "#/definitions/util.Response"}}, "201": {"description": "选课成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/progress/enrollment/{courseId}": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["学习进度"], "summary": "查询选课进度", "parameters": [{"type": "integer", "name": "courseId", "in": "path", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "patch": {"security": [{"ApiKeyAuth": []}], "tags": ["学习进度"], "summary": "更新学习进度", "parameters": [{"type": "integer", "name": "courseId", "in": "path", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.ProgressPatchRequest"}}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/progress/my-courses": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["学习进度"], "summary": "我的已选课程", "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/quizzes": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["题目"], "summary": "题目列表", "parameters": [{"type": "integer", "name": "courseId", "in": "query"}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["题目"], "summary": "创建题目", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.QuizRequest"}}], "responses": {"201": {"description": "创建成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/quizzes/{id}": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["题目"], "summary": "题目详情", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["题目"], "summary": "更新题目（全部字段）", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.QuizRequest"}}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "patch": {"security": [{"ApiKeyAuth": []}], "tags": ["题目"], "summary": "更新题目", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/controller.QuizRequest"}}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}},
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["题目"], "summary": "删除题目", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/quizzes/{id}/options/{optionId}": {
            "delete": {"security": [{"ApiKeyAuth": []}], "tags": ["题目"], "summary": "删除单个选项", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}, {"type": "integer", "name": "optionId", "in": "path", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/teacher/students": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["教师"], "summary": "我的学生", "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/teacher/students/export": {
            "get": {"security": [{"ApiKeyAuth": []}], "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "tags": ["教师"], "summary": "导出学生名单", "responses": {"200": {"description": "xlsx 文件", "schema": {"type": "file"}}}}
        },
        "/api/teacher/students/{studentId}": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["教师"], "summary": "学生详情", "parameters": [{"type": "integer", "name": "studentId", "in": "path", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/users": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["用户管理"], "summary": "获取用户列表", "parameters": [{"enum": ["Teacher", "Student"], "type": "string", "name": "role", "in": "query"}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        },
        "/api/users/{id}": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["用户管理"], "summary": "获取用户详情", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "成功", "schema": {"$ref": "#/definitions/util.Response"}}}}
        }
    },
    "definitions": {
        "controller.ChangePasswordRequest": {"type": "object", "required": ["newPassword"], "properties": {"currentPassword": {"type": "string"}, "newPassword": {"type": "string"}}},
        "controller.CoursePatchRequest": {"type": "object", "properties": {"description": {"type": "string"}, "title": {"type": "string"}}},
        "controller.CourseRequest": {"type": "object", "required": ["description", "title"], "properties": {"description": {"type": "string"}, "title": {"type": "string"}}},
        "controller.EnrollRequest": {"type": "object", "required": ["courseId"], "properties": {"courseId": {"type": "integer", "minimum": 1}}},
        "controller.LoginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "controller.ProgressPatchRequest": {"type": "object", "properties": {"score": {"type": "number"}, "status": {"type": "string"}}},
        "controller.QuizRequest": {"type": "object", "properties": {"correctAnswer": {"type": "integer"}, "courseId": {"type": "integer"}, "options": {"type": "object"}, "question": {"type": "string"}}},
        "controller.RenameRequest": {"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}},
        "controller.SignupRequest": {"type": "object", "required": ["confirmPassword", "email", "name", "password", "role"], "properties": {"confirmPassword": {"type": "string"}, "email": {"type": "string"}, "name": {"type": "string"}, "password": {"type": "string", "minLength": 6}, "role": {"type": "string", "enum": ["Teacher", "Student"]}}},
        "controller.SubmitQuizRequest": {"type": "object", "properties": {"answers": {"type": "array", "items": {"type": "object", "properties": {"answerIndex": {"type": "integer"}, "questionId": {"type": "integer"}}}}}},
        "util.Response": {"type": "object", "properties": {"code": {"type": "string"}, "data": {}, "message": {"type": "string"}, "meta": {}}}
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "School 后端 API",
	Description:      "教师/学生课程、题目、选课进度与测验评分服务。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
