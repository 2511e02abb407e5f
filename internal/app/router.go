package app

import (
	"school_backend/docs"
	"school_backend/internal/config"
	"school_backend/internal/middleware"
	"school_backend/internal/model"
	"school_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerCourseRoutes(authGroup, c)
		a.registerQuizRoutes(authGroup, c)
		a.registerProgressRoutes(authGroup, c)
		a.registerMeRoutes(authGroup, c)

		// 教师相关接口
		a.registerTeacherRoutes(authGroup, c)

		authGroup.GET("/users", c.user.GetUsers)
		authGroup.GET("/users/:id", c.user.GetUser)
	}

	router.NoRoute(middleware.NoRoute())
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/signup", c.auth.Signup)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerCourseRoutes(rg *gin.RouterGroup, c *controllers) {
	teacherOnly := middleware.RoleMiddleware(model.Teacher)
	studentOnly := middleware.RoleMiddleware(model.Student)

	courses := rg.Group("/courses")
	{
		courses.GET("", c.course.ListCourses)
		courses.GET("/count", c.course.CountCourses)
		courses.GET("/:id", c.course.GetCourse)
		courses.GET("/:id/quizzes", c.course.ListCourseQuizzes)

		courses.POST("", teacherOnly, c.course.CreateCourse)
		courses.PUT("/:id", teacherOnly, c.course.ReplaceCourse)
		courses.PATCH("/:id", teacherOnly, c.course.PatchCourse)
		courses.DELETE("/:id", teacherOnly, c.course.DeleteCourse)

		courses.POST("/:id/start", studentOnly, c.course.StartCourse)
		courses.POST("/:id/quizzes/submit", studentOnly, c.course.SubmitQuizzes)
	}
}

func (a *App) registerQuizRoutes(rg *gin.RouterGroup, c *controllers) {
	quizzes := rg.Group("/quizzes")
	quizzes.Use(middleware.RoleMiddleware(model.Teacher))
	{
		quizzes.POST("", c.quiz.CreateQuiz)
		quizzes.GET("", c.quiz.ListQuizzes)
		quizzes.GET("/:id", c.quiz.GetQuiz)
		quizzes.PUT("/:id", c.quiz.ReplaceQuiz)
		quizzes.PATCH("/:id", c.quiz.PatchQuiz)
		quizzes.DELETE("/:id", c.quiz.DeleteQuiz)
		quizzes.DELETE("/:id/options/:optionId", c.quiz.RemoveOption)
	}
}

func (a *App) registerProgressRoutes(rg *gin.RouterGroup, c *controllers) {
	progress := rg.Group("/progress")
	progress.Use(middleware.RoleMiddleware(model.Student))
	{
		progress.POST("/enroll", c.progress.Enroll)
		progress.GET("/enrollment/:courseId", c.progress.GetEnrollment)
		progress.PATCH("/enrollment/:courseId", c.progress.PatchEnrollment)
		progress.GET("/my-courses", c.progress.MyEnrolledCourses)
		progress.GET("/courses", c.progress.Catalog)
	}
}

func (a *App) registerMeRoutes(rg *gin.RouterGroup, c *controllers) {
	me := rg.Group("/me")
	{
		me.GET("", c.me.GetMe)
		me.PATCH("", c.me.Rename)
		me.PATCH("/password", c.me.ChangePassword)
		me.POST("/avatar", c.me.UploadAvatar)
		me.GET("/courses", c.me.MyCourses)
		me.GET("/summary", c.me.Summary)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.GET("/students", c.teacherStudent.ListStudents)
		teacher.GET("/students/export", c.teacherStudent.ExportStudents)
		teacher.GET("/students/:studentId", c.teacherStudent.GetStudent)
	}
}
