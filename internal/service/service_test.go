package service

import (
	"encoding/json"
	"school_backend/internal/config"
	"school_backend/internal/model"
	"school_backend/internal/repository"
	"school_backend/internal/util"
	"school_backend/pkg/database"
	"testing"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	users    *repository.UserRepository
	auth     *AuthService
	courses  *CourseService
	quizzes  *QuizService
	progress *ProgressService
	scoring  *ScoringService
	roster   *TeacherStudentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.OpenSQLite(":memory:", 0, gormlogger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	reportRepo := repository.NewReportRepository(db)

	return &testEnv{
		db:       db,
		users:    userRepo,
		auth:     NewAuthService(userRepo, cfg),
		courses:  NewCourseService(courseRepo, userRepo, quizRepo),
		quizzes:  NewQuizService(quizRepo, courseRepo),
		progress: NewProgressService(progressRepo, courseRepo),
		scoring:  NewScoringService(db, quizRepo, progressRepo),
		roster:   NewTeacherStudentService(reportRepo, userRepo),
	}
}

func (e *testEnv) signup(t *testing.T, name, email string, role model.UserRole) *model.User {
	t.Helper()
	u, err := e.auth.Signup(SignupInput{Name: name, Email: email, Password: "secret1", ConfirmPassword: "secret1", Role: role})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return u
}

func (e *testEnv) course(t *testing.T, teacherID uint, title string) *model.Course {
	t.Helper()
	c, err := e.courses.Create(teacherID, title, "About "+title)
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	return c
}

func (e *testEnv) quiz(t *testing.T, teacherID, courseID uint, options string, correct int) *model.Quiz {
	t.Helper()
	q, err := e.quizzes.Create(teacherID, quizInput(courseID, "Question?", options, correct))
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return q
}

func quizInput(courseID uint, question, options string, correct int) QuizInput {
	cid := model.FlexInt(courseID)
	ca := model.FlexInt(correct)
	return QuizInput{CourseID: &cid, Question: question, Options: json.RawMessage(options), CorrectAnswer: &ca}
}

func wantCode(t *testing.T, err error, code string) *util.AppError {
	t.Helper()
	appErr, ok := util.AsAppError(err)
	if !ok || appErr.Code != code {
		t.Fatalf("err = %v, want %s", err, code)
	}
	return appErr
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		in    SignupInput
		field string
	}{
		{SignupInput{Name: "A", Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret1", Role: model.Student}, "name"},
		{SignupInput{Name: "Ann", Email: " ", Password: "secret1", ConfirmPassword: "secret1", Role: model.Student}, "email"},
		{SignupInput{Name: "Ann", Email: "a@x.com", Password: "short", ConfirmPassword: "short", Role: model.Student}, "password"},
		{SignupInput{Name: "Ann", Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret2", Role: model.Student}, "confirmPassword"},
		{SignupInput{Name: "Ann", Email: "a@x.com", Password: "secret1", ConfirmPassword: "secret1", Role: "Admin"}, "role"},
	}
	for _, tt := range tests {
		_, err := env.auth.Signup(tt.in)
		appErr := wantCode(t, err, util.CodeValidation)
		if appErr.Meta["field"] != tt.field {
			t.Fatalf("field = %v, want %s", appErr.Meta["field"], tt.field)
		}
	}
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user := env.signup(t, "Ann", "Ann@Example.com", model.Teacher)
	if user.PasswordHash == "secret1" || !CheckPassword(user.PasswordHash, "secret1") {
		t.Fatalf("password must be stored as a bcrypt hash")
	}

	_, err := env.auth.Signup(SignupInput{Name: "Ann2", Email: "ann@example.com", Password: "secret1", ConfirmPassword: "secret1", Role: model.Student})
	wantCode(t, err, util.CodeUnique)

	logged, token, err := env.auth.Login("ANN@example.com", "secret1")
	if err != nil || logged.ID != user.ID || token == "" {
		t.Fatalf("Login = %+v, %q, %v", logged, token, err)
	}
	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil || claims.UserID != user.ID || claims.Role != model.Teacher {
		t.Fatalf("claims = %+v, %v", claims, err)
	}

	_, _, err = env.auth.Login("ann@example.com", "wrong-password")
	wantCode(t, err, util.CodeUnauthorized)
	_, _, err = env.auth.Login("nobody@example.com", "secret1")
	wantCode(t, err, util.CodeUnauthorized)
}

func TestCourseOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice := env.signup(t, "Alice", "alice@example.com", model.Teacher)
	bob := env.signup(t, "Bob", "bob@example.com", model.Teacher)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)

	course := env.course(t, alice.ID, "  Algebra ")
	if course.Title != "Algebra" || course.TeacherName != "Alice" {
		t.Fatalf("course = %+v", course)
	}

	_, err := env.courses.Create(student.ID, "X", "Y")
	wantCode(t, err, util.CodeValidation)
	_, err = env.courses.Create(999, "X", "Y")
	wantCode(t, err, util.CodeValidation)
	_, err = env.courses.Create(alice.ID, " ", "Y")
	wantCode(t, err, util.CodeValidation)

	title := "Geometry"
	_, err = env.courses.Patch(bob.ID, course.ID, CoursePatch{Title: &title})
	wantCode(t, err, util.CodeForbidden)
	err = env.courses.Delete(bob.ID, course.ID)
	wantCode(t, err, util.CodeForbidden)

	patched, err := env.courses.Patch(alice.ID, course.ID, CoursePatch{Title: &title})
	if err != nil || patched.Title != "Geometry" || patched.Description != course.Description {
		t.Fatalf("Patch = %+v, %v", patched, err)
	}

	unchanged, err := env.courses.Patch(alice.ID, course.ID, CoursePatch{})
	if err != nil || unchanged.Title != "Geometry" {
		t.Fatalf("empty patch = %+v, %v", unchanged, err)
	}

	if err := env.courses.Delete(alice.ID, course.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = env.courses.Get(course.ID)
	wantCode(t, err, util.CodeNotFound)
}

func TestQuizCreateCompactsOptions(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	course := env.course(t, teacher.ID, "Physics")

	q := env.quiz(t, teacher.ID, course.ID, `{"2":"B","5":"E","9":"I"}`, 5)
	if q.CorrectAnswer != 2 {
		t.Fatalf("correct = %d, want 2 after compaction", q.CorrectAnswer)
	}
	opts := q.OptionMap()
	if len(opts) != 3 || opts[1].Value != "B" || opts[2].Value != "E" || opts[3].Value != "I" {
		t.Fatalf("options = %+v", opts)
	}

	stored, err := env.quizzes.Get(q.ID)
	if err != nil || stored.CorrectAnswer != 2 || len(stored.OptionMap()) != 3 {
		t.Fatalf("stored = %+v, %v", stored, err)
	}
}

func TestQuizValidation(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	other := env.signup(t, "Omar", "omar@example.com", model.Teacher)
	course := env.course(t, teacher.ID, "Physics")

	tests := []struct {
		name  string
		in    QuizInput
		field string
	}{
		{"missing course", QuizInput{Question: "Q", Options: json.RawMessage(`["A","B"]`)}, "courseId"},
		{"blank question", quizInput(course.ID, "  ", `["A","B"]`, 1), "question"},
		{"one option", quizInput(course.ID, "Q", `["A"]`, 1), "options"},
		{"malformed options", quizInput(course.ID, "Q", `"nope"`, 1), "options"},
		{"empty option value", quizInput(course.ID, "Q", `["A"," "]`, 1), "options"},
		{"correct not an option", quizInput(course.ID, "Q", `["A","B"]`, 3), "correctAnswer"},
		{"unknown course", quizInput(999, "Q", `["A","B"]`, 1), "courseId"},
	}
	for _, tt := range tests {
		_, err := env.quizzes.Create(teacher.ID, tt.in)
		appErr := wantCode(t, err, util.CodeValidation)
		if appErr.Meta["field"] != tt.field {
			t.Fatalf("%s: field = %v, want %s", tt.name, appErr.Meta["field"], tt.field)
		}
	}

	_, err := env.quizzes.Create(other.ID, quizInput(course.ID, "Q", `["A","B"]`, 1))
	wantCode(t, err, util.CodeForbidden)
}

func TestQuizUpdateAndRemoveOption(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	other := env.signup(t, "Omar", "omar@example.com", model.Teacher)
	course := env.course(t, teacher.ID, "Physics")
	q := env.quiz(t, teacher.ID, course.ID, `["A","B","C"]`, 3)

	_, err := env.quizzes.Update(other.ID, q.ID, quizInput(course.ID, "Q", `["A","B"]`, 1))
	wantCode(t, err, util.CodeForbidden)

	updated, err := env.quizzes.Update(teacher.ID, q.ID, quizInput(course.ID, "Updated?", `["A","B","C","D"]`, 4))
	if err != nil || updated.Question != "Updated?" || updated.CorrectAnswer != 4 || len(updated.OptionMap()) != 4 {
		t.Fatalf("Update = %+v, %v", updated, err)
	}

	removed, err := env.quizzes.RemoveOption(teacher.ID, q.ID, 2)
	if err != nil {
		t.Fatalf("RemoveOption: %v", err)
	}
	if removed.CorrectAnswer != 3 || len(removed.OptionMap()) != 3 || removed.OptionMap()[3].Value != "D" {
		t.Fatalf("after remove = %+v correct %d", removed.OptionMap(), removed.CorrectAnswer)
	}

	_, err = env.quizzes.RemoveOption(teacher.ID, q.ID, 3)
	wantCode(t, err, util.CodeValidation)
	_, err = env.quizzes.RemoveOption(teacher.ID, q.ID, 42)
	wantCode(t, err, util.CodeNotFound)

	two := env.quiz(t, teacher.ID, course.ID, `["A","B"]`, 1)
	_, err = env.quizzes.RemoveOption(teacher.ID, two.ID, 2)
	wantCode(t, err, util.CodeValidation)

	if err := env.quizzes.Delete(teacher.ID, two.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = env.quizzes.Get(two.ID)
	wantCode(t, err, util.CodeNotFound)
}

func TestEnrollIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)
	course := env.course(t, teacher.ID, "Physics")

	first, created, err := env.progress.Enroll(student.ID, course.ID)
	if err != nil || !created || first.Status != model.StatusEnrolled {
		t.Fatalf("first Enroll = %+v, %v, %v", first, created, err)
	}
	second, created, err := env.progress.Enroll(student.ID, course.ID)
	if err != nil || created || second.ID != first.ID {
		t.Fatalf("second Enroll = %+v, %v, %v", second, created, err)
	}

	_, _, err = env.progress.Enroll(student.ID, 999)
	wantCode(t, err, util.CodeNotFound)
}

func TestProgressTransitions(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)
	course := env.course(t, teacher.ID, "Physics")

	_, err := env.progress.Start(student.ID, course.ID)
	wantCode(t, err, util.CodeNotFound)

	if _, _, err := env.progress.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	started, err := env.progress.Start(student.ID, course.ID)
	if err != nil || started.Status != model.StatusInProgress {
		t.Fatalf("Start = %+v, %v", started, err)
	}
	again, err := env.progress.Start(student.ID, course.ID)
	if err != nil || again.Status != model.StatusInProgress {
		t.Fatalf("second Start = %+v, %v", again, err)
	}

	back := string(model.StatusEnrolled)
	_, err = env.progress.Patch(student.ID, course.ID, ProgressPatch{Status: &back})
	wantCode(t, err, util.CodeValidation)

	bogus := "archived"
	_, err = env.progress.Patch(student.ID, course.ID, ProgressPatch{Status: &bogus})
	wantCode(t, err, util.CodeValidation)

	tooHigh := 101.0
	_, err = env.progress.Patch(student.ID, course.ID, ProgressPatch{Score: &tooHigh})
	wantCode(t, err, util.CodeValidation)

	done := string(model.StatusCompleted)
	score := 88.5
	patched, err := env.progress.Patch(student.ID, course.ID, ProgressPatch{Status: &done, Score: &score})
	if err != nil || patched.Status != model.StatusCompleted || patched.Score == nil || *patched.Score != 88.5 {
		t.Fatalf("Patch = %+v, %v", patched, err)
	}

	_, err = env.progress.Start(student.ID, course.ID)
	wantCode(t, err, util.CodeValidation)
}

func TestGradeAnswers(t *testing.T) {
	questions := []model.Quiz{{CorrectAnswer: 1}, {CorrectAnswer: 2}}
	questions[0].ID = 10
	questions[1].ID = 11

	tests := []struct {
		name    string
		answers []model.SubmittedAnswer
		want    int
	}{
		{"all correct", []model.SubmittedAnswer{{QuestionID: 10, AnswerIndex: 1}, {QuestionID: 11, AnswerIndex: 2}}, 2},
		{"first answer wins", []model.SubmittedAnswer{{QuestionID: 10, AnswerIndex: 2}, {QuestionID: 10, AnswerIndex: 1}}, 0},
		{"foreign question ignored", []model.SubmittedAnswer{{QuestionID: 99, AnswerIndex: 1}, {QuestionID: 11, AnswerIndex: 2}}, 1},
		{"unanswered counts as wrong", []model.SubmittedAnswer{{QuestionID: 10, AnswerIndex: 1}}, 1},
	}
	for _, tt := range tests {
		if got := GradeAnswers(questions, tt.answers); got != tt.want {
			t.Fatalf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestScorePercent(t *testing.T) {
	tests := []struct{ correct, total, want int }{
		{3, 4, 75},
		{2, 3, 67},
		{1, 3, 33},
		{0, 5, 0},
		{5, 5, 100},
		{1, 0, 0},
	}
	for _, tt := range tests {
		if got := ScorePercent(tt.correct, tt.total); got != tt.want {
			t.Fatalf("ScorePercent(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestSubmitAppendsAttempts(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)
	course := env.course(t, teacher.ID, "Physics")

	var quizzes []*model.Quiz
	for i := 0; i < 4; i++ {
		quizzes = append(quizzes, env.quiz(t, teacher.ID, course.ID, `["A","B","C"]`, 2))
	}

	answers := []model.SubmittedAnswer{
		{QuestionID: quizzes[0].ID, AnswerIndex: 2},
		{QuestionID: quizzes[1].ID, AnswerIndex: 2},
		{QuestionID: quizzes[2].ID, AnswerIndex: 2},
		{QuestionID: quizzes[3].ID, AnswerIndex: 1},
	}

	_, err := env.scoring.Submit(student.ID, course.ID, answers)
	wantCode(t, err, util.CodeNotFound)

	if _, _, err := env.progress.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}

	first, err := env.scoring.Submit(student.ID, course.ID, answers)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if first.Score != 75 || first.Correct != 3 || first.Total != 4 || first.Attempt.Attempt != 1 {
		t.Fatalf("first = %+v", first)
	}
	if first.Progress.Status != model.StatusCompleted || first.Progress.Score == nil || *first.Progress.Score != 75 {
		t.Fatalf("progress = %+v", first.Progress)
	}

	answers[3].AnswerIndex = 2
	second, err := env.scoring.Submit(student.ID, course.ID, answers)
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if second.Score != 100 || second.Attempt.Attempt != 2 {
		t.Fatalf("second = %+v", second)
	}

	attempts := second.Progress.Attempts()
	if len(attempts) != 2 || attempts[0].Score != 75 || attempts[1].Score != 100 {
		t.Fatalf("attempts = %+v", attempts)
	}
	if second.Progress.AttemptCount != 2 {
		t.Fatalf("attemptCount = %d", second.Progress.AttemptCount)
	}

	_, err = env.scoring.Submit(student.ID, course.ID, nil)
	wantCode(t, err, util.CodeValidation)
}

func TestSubmitWithoutQuizzesLeavesProgressUntouched(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)
	course := env.course(t, teacher.ID, "Empty")

	if _, _, err := env.progress.Enroll(student.ID, course.ID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	_, err := env.scoring.Submit(student.ID, course.ID, []model.SubmittedAnswer{{QuestionID: 1, AnswerIndex: 1}})
	wantCode(t, err, util.CodeNotFound)

	p, err := env.progress.Get(student.ID, course.ID)
	if err != nil || p.Status != model.StatusEnrolled || p.AttemptCount != 0 || p.Score != nil {
		t.Fatalf("progress = %+v, %v", p, err)
	}
}

func TestRosterGroupsByStudent(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	other := env.signup(t, "Omar", "omar@example.com", model.Teacher)
	amy := env.signup(t, "Amy", "amy@example.com", model.Student)
	ben := env.signup(t, "Ben", "ben@example.com", model.Student)
	loner := env.signup(t, "Lou", "lou@example.com", model.Student)

	c1 := env.course(t, teacher.ID, "One")
	c2 := env.course(t, teacher.ID, "Two")
	foreign := env.course(t, other.ID, "Foreign")

	for _, pair := range [][2]uint{{amy.ID, c1.ID}, {amy.ID, c2.ID}, {ben.ID, c2.ID}, {loner.ID, foreign.ID}} {
		if _, _, err := env.progress.Enroll(pair[0], pair[1]); err != nil {
			t.Fatalf("Enroll: %v", err)
		}
	}

	items, total, err := env.roster.List(teacher.ID, util.Pagination{Limit: 10})
	if err != nil || total != 2 || len(items) != 2 {
		t.Fatalf("List = %+v, %d, %v", items, total, err)
	}
	if items[0].Name != "Amy" || len(items[0].Courses) != 2 || items[1].Name != "Ben" || len(items[1].Courses) != 1 {
		t.Fatalf("items = %+v", items)
	}

	detail, err := env.roster.Detail(teacher.ID, ben.ID)
	if err != nil || detail.Courses[0].CourseID != c2.ID {
		t.Fatalf("Detail = %+v, %v", detail, err)
	}
	_, err = env.roster.Detail(teacher.ID, loner.ID)
	wantCode(t, err, util.CodeNotFound)
	_, err = env.roster.Detail(teacher.ID, 999)
	wantCode(t, err, util.CodeNotFound)

	all, err := env.roster.All(teacher.ID)
	if err != nil || len(all) != 2 {
		t.Fatalf("All = %+v, %v", all, err)
	}
	empty, err := env.roster.All(loner.ID)
	if err != nil || len(empty) != 0 {
		t.Fatalf("All(no courses) = %+v, %v", empty, err)
	}
}

func TestListQuizzesHidesAnswersFromNonOwners(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signup(t, "Tina", "tina@example.com", model.Teacher)
	other := env.signup(t, "Omar", "omar@example.com", model.Teacher)
	student := env.signup(t, "Sam", "sam@example.com", model.Student)
	course := env.course(t, owner.ID, "Physics")
	env.quiz(t, owner.ID, course.ID, `["A","B"]`, 2)

	page := util.Pagination{Limit: 10}
	items, total, err := env.courses.ListQuizzes(&util.Claims{UserID: owner.ID, Role: model.Teacher}, course.ID, page)
	if err != nil || total != 1 {
		t.Fatalf("owner ListQuizzes total = %d, %v", total, err)
	}
	if full, ok := items.([]model.Quiz); !ok || full[0].CorrectAnswer != 2 {
		t.Fatalf("owner items = %#v", items)
	}

	for _, viewer := range []*model.User{other, student} {
		items, _, err := env.courses.ListQuizzes(&util.Claims{UserID: viewer.ID, Role: viewer.Role}, course.ID, page)
		if err != nil {
			t.Fatalf("%s ListQuizzes: %v", viewer.Name, err)
		}
		if _, ok := items.([]model.StudentQuiz); !ok {
			t.Fatalf("%s items = %#v, want student view", viewer.Name, items)
		}
	}

	_, _, err = env.courses.ListQuizzes(&util.Claims{UserID: owner.ID, Role: model.Teacher}, 999, page)
	wantCode(t, err, util.CodeNotFound)
}
