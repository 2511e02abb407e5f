package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"school_backend/internal/config"
	"school_backend/pkg/database"
	"strconv"
	"testing"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
}

func newTestApp(t *testing.T) *App {
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
	cfg.Server.Mode = "test"
	cfg.Database.Driver = "sqlite"
	cfg.JWT.Secret = "integration-secret"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	return NewWithDB(cfg, db)
}

func do(t *testing.T, a *App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code, env
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decode(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}

func signupAndLogin(t *testing.T, a *App, name, email, role string) string {
	t.Helper()
	status, env := do(t, a, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": name, "email": email, "password": "secret1", "confirmPassword": "secret1", "role": role,
	})
	if status != http.StatusCreated {
		t.Fatalf("signup %s: %d %+v", email, status, env)
	}

	status, env = do(t, a, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": email, "password": "secret1",
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: %d %+v", email, status, env)
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, env.Data, &out)
	return out.Token
}

func TestCourseQuizSubmissionFlow(t *testing.T) {
	a := newTestApp(t)
	teacher := signupAndLogin(t, a, "Tina", "tina@example.com", "Teacher")
	student := signupAndLogin(t, a, "Sam", "sam@example.com", "Student")

	status, env := do(t, a, http.MethodPost, "/api/courses", student, map[string]any{"title": "X", "description": "Y"})
	if status != http.StatusForbidden {
		t.Fatalf("student create course: %d", status)
	}

	status, env = do(t, a, http.MethodPost, "/api/courses", teacher, map[string]any{"title": "Physics", "description": "Motion"})
	if status != http.StatusCreated {
		t.Fatalf("create course: %d %+v", status, env)
	}
	var course struct {
		ID          uint   `json:"id"`
		TeacherName string `json:"teacherName"`
	}
	decode(t, env.Data, &course)
	if course.TeacherName != "Tina" {
		t.Fatalf("course = %+v", course)
	}

	var quizIDs []uint
	for i, correct := range []int{2, 1} {
		status, env = do(t, a, http.MethodPost, "/api/quizzes", teacher, map[string]any{
			"courseId":      course.ID,
			"question":      "Question",
			"options":       []string{"A", "B", "C"},
			"correctAnswer": correct,
		})
		if status != http.StatusCreated {
			t.Fatalf("create quiz %d: %d %+v", i, status, env)
		}
		var q struct {
			ID uint `json:"id"`
		}
		decode(t, env.Data, &q)
		quizIDs = append(quizIDs, q.ID)
	}

	status, env = do(t, a, http.MethodGet, "/api/courses/"+itoa(course.ID)+"/quizzes", student, nil)
	if status != http.StatusOK {
		t.Fatalf("student quiz list: %d", status)
	}
	if bytes.Contains(env.Data, []byte("correctAnswer")) {
		t.Fatalf("student quiz list leaked answers: %s", env.Data)
	}

	status, _ = do(t, a, http.MethodGet, "/api/quizzes", student, nil)
	if status != http.StatusForbidden {
		t.Fatalf("student quizzes: %d, want 403", status)
	}

	status, env = do(t, a, http.MethodPost, "/api/progress/enroll", student, map[string]any{"courseId": course.ID})
	if status != http.StatusCreated {
		t.Fatalf("enroll: %d %+v", status, env)
	}
	status, env = do(t, a, http.MethodPost, "/api/progress/enroll", student, map[string]any{"courseId": course.ID})
	if status != http.StatusOK || env.Message != "Already enrolled" {
		t.Fatalf("second enroll: %d %+v", status, env)
	}

	status, env = do(t, a, http.MethodPost, "/api/courses/"+itoa(course.ID)+"/start", student, nil)
	if status != http.StatusOK {
		t.Fatalf("start: %d %+v", status, env)
	}

	status, env = do(t, a, http.MethodPost, "/api/courses/"+itoa(course.ID)+"/quizzes/submit", student, map[string]any{
		"answers": []map[string]any{
			{"questionId": quizIDs[0], "answerIndex": "2"},
			{"questionId": quizIDs[1], "answerIndex": 3},
		},
	})
	if status != http.StatusOK {
		t.Fatalf("submit: %d %+v", status, env)
	}
	var result struct {
		Score   int `json:"score"`
		Attempt struct {
			Attempt int `json:"attempt"`
		} `json:"attempt"`
		Progress struct {
			Status string `json:"status"`
		} `json:"progress"`
	}
	decode(t, env.Data, &result)
	if result.Score != 50 || result.Attempt.Attempt != 1 || result.Progress.Status != "completed" {
		t.Fatalf("result = %+v", result)
	}

	status, env = do(t, a, http.MethodPost, "/api/courses/"+itoa(course.ID)+"/quizzes/submit", student, map[string]any{"answers": []any{}})
	if status != http.StatusBadRequest || env.Meta["field"] != "answers" {
		t.Fatalf("empty submit: %d %+v", status, env)
	}

	status, env = do(t, a, http.MethodGet, "/api/teacher/students", teacher, nil)
	if status != http.StatusOK {
		t.Fatalf("roster: %d %+v", status, env)
	}
	var roster struct {
		Total int64 `json:"total"`
	}
	decode(t, env.Data, &roster)
	if roster.Total != 1 {
		t.Fatalf("roster total = %d", roster.Total)
	}

	status, env = do(t, a, http.MethodGet, "/api/me/summary", student, nil)
	if status != http.StatusOK {
		t.Fatalf("summary: %d %+v", status, env)
	}
	var summary struct {
		Role          string `json:"role"`
		EnrolledCount int64  `json:"enrolledCount"`
	}
	decode(t, env.Data, &summary)
	if summary.Role != "Student" || summary.EnrolledCount != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	a := newTestApp(t)
	signupAndLogin(t, a, "Ann", "ann@example.com", "Student")

	status, env := do(t, a, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": "Ann", "email": "ANN@example.com", "password": "secret1", "confirmPassword": "secret1", "role": "Student",
	})
	if status != http.StatusConflict || env.Code != "UNIQUE_VIOLATION" {
		t.Fatalf("duplicate signup: %d %+v", status, env)
	}

	status, env = do(t, a, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ann@example.com", "password": "nope123"})
	if status != http.StatusUnauthorized {
		t.Fatalf("bad login: %d %+v", status, env)
	}
}

func TestAuthAndRouting(t *testing.T) {
	a := newTestApp(t)

	status, env := do(t, a, http.MethodGet, "/api/courses", "", nil)
	if status != http.StatusUnauthorized || env.Code != "UNAUTHORIZED" {
		t.Fatalf("missing token: %d %+v", status, env)
	}

	status, _ = do(t, a, http.MethodGet, "/api/courses", "not-a-token", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", status)
	}

	status, env = do(t, a, http.MethodGet, "/api/nowhere", "", nil)
	if status != http.StatusNotFound || env.Code != "NOT_FOUND" {
		t.Fatalf("unknown route: %d %+v", status, env)
	}

	status, env = do(t, a, http.MethodGet, "/api/health", "", nil)
	if status != http.StatusOK {
		t.Fatalf("health: %d %+v", status, env)
	}

	token := signupAndLogin(t, a, "Tina", "tina@example.com", "Teacher")
	status, env = do(t, a, http.MethodGet, "/api/courses/abc", token, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("bad id: %d %+v", status, env)
	}
	status, env = do(t, a, http.MethodGet, "/api/courses/999", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("missing course: %d %+v", status, env)
	}
	status, env = do(t, a, http.MethodGet, "/api/courses?limit=500", token, nil)
	if status != http.StatusBadRequest || env.Meta["field"] != "limit" {
		t.Fatalf("bad limit: %d %+v", status, env)
	}
}

func TestListUsersFiltersAndPages(t *testing.T) {
	a := newTestApp(t)
	token := signupAndLogin(t, a, "Tina", "tina@example.com", "Teacher")
	signupAndLogin(t, a, "Sam", "sam@example.com", "Student")
	signupAndLogin(t, a, "Sue", "sue@example.com", "Student")
	signupAndLogin(t, a, "Sid", "sid@example.com", "Student")

	type page struct {
		Items []struct {
			ID       uint   `json:"id"`
			Name     string `json:"name"`
			Role     string `json:"role"`
			Password string `json:"password"`
		} `json:"items"`
		Total  int64 `json:"total"`
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
	}

	status, env := do(t, a, http.MethodGet, "/api/users?role=Student&limit=2&offset=1", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list users: %d %+v", status, env)
	}
	var students page
	decode(t, env.Data, &students)
	if students.Total != 3 || students.Limit != 2 || students.Offset != 1 || len(students.Items) != 2 {
		t.Fatalf("students = %+v", students)
	}
	if students.Items[0].Name != "Sue" || students.Items[1].Name != "Sid" {
		t.Fatalf("students order = %+v", students.Items)
	}
	for _, u := range students.Items {
		if u.Role != "Student" {
			t.Fatalf("role filter leaked %+v", u)
		}
	}

	status, env = do(t, a, http.MethodGet, "/api/users", token, nil)
	var all page
	decode(t, env.Data, &all)
	if status != http.StatusOK || all.Total != 4 {
		t.Fatalf("all users: %d %+v", status, all)
	}

	status, env = do(t, a, http.MethodGet, "/api/users?role=Admin", token, nil)
	if status != http.StatusBadRequest || env.Meta["field"] != "role" {
		t.Fatalf("bad role: %d %+v", status, env)
	}

	status, env = do(t, a, http.MethodGet, "/api/users/"+itoa(students.Items[0].ID), token, nil)
	if status != http.StatusOK || bytes.Contains(env.Data, []byte("password")) {
		t.Fatalf("get user: %d %s", status, env.Data)
	}
	status, _ = do(t, a, http.MethodGet, "/api/users/999", token, nil)
	if status != http.StatusNotFound {
		t.Fatalf("missing user: %d", status)
	}
}

func TestCourseQuizzesAnswersOnlyForOwner(t *testing.T) {
	a := newTestApp(t)
	owner := signupAndLogin(t, a, "Tina", "tina@example.com", "Teacher")
	other := signupAndLogin(t, a, "Omar", "omar@example.com", "Teacher")

	status, env := do(t, a, http.MethodPost, "/api/courses", owner, map[string]any{"title": "Physics", "description": "Motion"})
	if status != http.StatusCreated {
		t.Fatalf("create course: %d %+v", status, env)
	}
	var course struct {
		ID uint `json:"id"`
	}
	decode(t, env.Data, &course)

	status, env = do(t, a, http.MethodPost, "/api/quizzes", owner, map[string]any{
		"courseId": course.ID, "question": "Q", "options": []string{"A", "B"}, "correctAnswer": 1,
	})
	if status != http.StatusCreated {
		t.Fatalf("create quiz: %d %+v", status, env)
	}

	path := "/api/courses/" + itoa(course.ID) + "/quizzes"
	status, env = do(t, a, http.MethodGet, path, owner, nil)
	if status != http.StatusOK || !bytes.Contains(env.Data, []byte("correctAnswer")) {
		t.Fatalf("owner view: %d %s", status, env.Data)
	}
	status, env = do(t, a, http.MethodGet, path, other, nil)
	if status != http.StatusOK || bytes.Contains(env.Data, []byte("correctAnswer")) {
		t.Fatalf("other teacher view: %d %s", status, env.Data)
	}
}
