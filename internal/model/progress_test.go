package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateStatusTransition(t *testing.T) {
	tests := []struct {
		prev, next ProgressStatus
		ok         bool
	}{
		{StatusEnrolled, StatusEnrolled, true},
		{StatusEnrolled, StatusInProgress, true},
		{StatusEnrolled, StatusCompleted, true},
		{StatusInProgress, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusCompleted, StatusCompleted, true},
		{StatusInProgress, StatusEnrolled, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusEnrolled, false},
		{StatusEnrolled, "archived", false},
		{"", StatusEnrolled, false},
	}

	for _, tt := range tests {
		err := ValidateStatusTransition(tt.prev, tt.next)
		if tt.ok && err != nil {
			t.Fatalf("%s -> %s: unexpected error %v", tt.prev, tt.next, err)
		}
		if !tt.ok {
			if err == nil {
				t.Fatalf("%s -> %s: expected error", tt.prev, tt.next)
			}
			if !errors.Is(err, ErrIllegalTransition) {
				t.Fatalf("%s -> %s: error %v does not wrap ErrIllegalTransition", tt.prev, tt.next, err)
			}
		}
	}
}

func TestTransitionErrorNamesBothStates(t *testing.T) {
	err := ValidateStatusTransition(StatusCompleted, StatusInProgress)
	if err == nil || err.Error() != "illegal status transition: completed -> in_progress" {
		t.Fatalf("err = %v", err)
	}
}

func TestNewProgressDefaults(t *testing.T) {
	p := NewProgress(3, 7)
	if p.StudentID != 3 || p.CourseID != 7 {
		t.Fatalf("ids = %d/%d", p.StudentID, p.CourseID)
	}
	if p.Status != StatusEnrolled {
		t.Fatalf("status = %s, want enrolled", p.Status)
	}
	if p.Score != nil || p.AttemptCount != 0 {
		t.Fatalf("expected empty score and zero attempts")
	}
	if attempts := p.Attempts(); attempts == nil || len(attempts) != 0 {
		t.Fatalf("attempts = %v, want empty non-nil slice", attempts)
	}
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{`2`, 2, true},
		{`"3"`, 3, true},
		{`" 4 "`, 4, true},
		{`2.0`, 2, true},
		{`-1`, -1, true},
		{`2.5`, 0, false},
		{`"abc"`, 0, false},
		{`true`, 0, false},
		{`1e12`, 0, false},
	}

	for _, tt := range tests {
		var f FlexInt
		err := json.Unmarshal([]byte(tt.in), &f)
		if tt.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tt.in, err)
		}
		if !tt.ok && err == nil {
			t.Fatalf("%s: expected error, got %d", tt.in, f)
		}
		if tt.ok && f.Int() != tt.want {
			t.Fatalf("%s: got %d, want %d", tt.in, f.Int(), tt.want)
		}
	}
}

func TestSubmittedAnswerAcceptsStringIndex(t *testing.T) {
	var answers []SubmittedAnswer
	if err := json.Unmarshal([]byte(`[{"questionId":1,"answerIndex":"2"},{"questionId":2,"answerIndex":3}]`), &answers); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if answers[0].AnswerIndex != 2 || answers[1].AnswerIndex != 3 {
		t.Fatalf("answers = %+v", answers)
	}
}

func TestForStudentHidesCorrectAnswer(t *testing.T) {
	q := Quiz{CourseID: 1, Question: "Q", CorrectAnswer: 2}
	q.ID = 9
	data, err := json.Marshal(q.ForStudent())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := fields["correctAnswer"]; ok {
		t.Fatalf("student view leaked correctAnswer: %s", data)
	}
	if fields["question"] != "Q" {
		t.Fatalf("student view = %s", data)
	}
}
