// 导入示例数据：用户、课程、题目与选课记录
//
// 数据通过业务服务写入，与接口一致地执行校验和选项规范化。
// 已存在的用户按邮箱复用，已有课程的教师不再重复导入课程。
//
// 用法: go run scripts/seed.go -config configs -file configs/seed.yaml

package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"school_backend/internal/config"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/service"
	"school_backend/internal/util"
	"school_backend/pkg/database"
	"school_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

type seedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type seedQuiz struct {
	Question      string   `yaml:"question"`
	Options       []string `yaml:"options"`
	CorrectAnswer int      `yaml:"correctAnswer"`
}

type seedCourse struct {
	Teacher     string     `yaml:"teacher"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Quizzes     []seedQuiz `yaml:"quizzes"`
}

type seedEnrollment struct {
	Student string `yaml:"student"`
	Course  string `yaml:"course"`
}

type seedFile struct {
	Users       []seedUser       `yaml:"users"`
	Courses     []seedCourse     `yaml:"courses"`
	Enrollments []seedEnrollment `yaml:"enrollments"`
}

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	file := flag.String("file", "configs/seed.yaml", "种子数据文件")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取种子文件: %v", err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("解析种子文件失败: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	defer database.Close(db)

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	courseService := service.NewCourseService(courseRepo, userRepo, quizRepo)
	quizService := service.NewQuizService(quizRepo, courseRepo)
	progressService := service.NewProgressService(progressRepo, courseRepo)

	users := make(map[string]*model.User)
	for _, u := range seed.Users {
		user, err := authService.Signup(service.SignupInput{
			Name:            u.Name,
			Email:           u.Email,
			Password:        u.Password,
			ConfirmPassword: u.Password,
			Role:            model.UserRole(u.Role),
		})
		if appErr, ok := util.AsAppError(err); ok && appErr.Code == util.CodeUnique {
			user, err = userRepo.FindByEmail(u.Email)
		}
		if err != nil {
			log.Fatalf("导入用户 %s 失败: %v", u.Email, err)
		}
		users[user.Email] = user
	}
	log.Printf("用户: %d", len(users))

	skipTeacher := make(map[uint]bool)
	courses := make(map[string]uint)
	quizCount := 0
	for _, c := range seed.Courses {
		teacher, ok := users[c.Teacher]
		if !ok {
			log.Fatalf("课程 %q 的教师 %s 不在用户列表中", c.Title, c.Teacher)
		}
		if _, seen := skipTeacher[teacher.ID]; !seen {
			n, err := courseService.Count(teacher.ID)
			if err != nil {
				log.Fatalf("统计课程失败: %v", err)
			}
			skipTeacher[teacher.ID] = n > 0
		}
		if skipTeacher[teacher.ID] {
			continue
		}

		course, err := courseService.Create(teacher.ID, c.Title, c.Description)
		if err != nil {
			log.Fatalf("导入课程 %q 失败: %v", c.Title, err)
		}
		courses[c.Title] = course.ID

		for _, q := range c.Quizzes {
			options, err := json.Marshal(q.Options)
			if err != nil {
				log.Fatalf("序列化选项失败: %v", err)
			}
			courseID := model.FlexInt(course.ID)
			correct := model.FlexInt(q.CorrectAnswer)
			if _, err := quizService.Create(teacher.ID, service.QuizInput{
				CourseID:      &courseID,
				Question:      q.Question,
				Options:       options,
				CorrectAnswer: &correct,
			}); err != nil {
				log.Fatalf("导入题目 %q 失败: %v", q.Question, err)
			}
			quizCount++
		}
	}
	log.Printf("课程: %d, 题目: %d", len(courses), quizCount)

	enrolled := 0
	for _, e := range seed.Enrollments {
		student, ok := users[e.Student]
		if !ok {
			log.Fatalf("学生 %s 不在用户列表中", e.Student)
		}
		courseID, ok := courses[e.Course]
		if !ok {
			continue
		}
		if _, created, err := progressService.Enroll(student.ID, courseID); err != nil {
			log.Fatalf("选课失败: %v", err)
		} else if created {
			enrolled++
		}
	}
	log.Printf("选课: %d", enrolled)
	log.Println("完成！")
}
