package model

// RosterCourse 花名册中某学生在某门课的进度
type RosterCourse struct {
	CourseID uint           `json:"courseId"`
	Title    string         `json:"title"`
	Status   ProgressStatus `json:"status"`
	Score    *float64       `json:"score"`
}

// RosterStudent 按学生聚合的花名册条目
type RosterStudent struct {
	StudentID uint           `json:"studentId"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Courses   []RosterCourse `json:"courses"`
}

// RosterRow 花名册扁平查询行
type RosterRow struct {
	StudentID uint
	CourseID  uint
	Title     string
	Status    ProgressStatus
	Score     *float64
}

type TeacherSummary struct {
	Role        UserRole `json:"role"`
	OwnedCount  int64    `json:"ownedCount"`
	LatestOwned []Course `json:"latestOwned"`
}

type StudentSummary struct {
	Role           UserRole         `json:"role"`
	EnrolledCount  int64            `json:"enrolledCount"`
	LatestEnrolled []EnrolledCourse `json:"latestEnrolled"`
}
