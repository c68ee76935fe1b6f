package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	ownerID := uuid.New()
	dueDate := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	task, err := NewTask("Write report", "Quarterly numbers", false, dueDate, ownerID)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID != 0 {
		t.Errorf("Expected zero ID before persistence, got %d", task.ID)
	}

	if task.Title != "Write report" {
		t.Errorf("Expected title %q, got %q", "Write report", task.Title)
	}

	if task.OwnerID != ownerID {
		t.Errorf("Expected owner %s, got %s", ownerID, task.OwnerID)
	}

	if !task.DueDate.Equal(dueDate) {
		t.Errorf("Expected due date %v, got %v", dueDate, task.DueDate)
	}

	if task.IsCompleted {
		t.Error("Expected task to not be completed")
	}

	if task.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test invalid title
	_, err = NewTask("", "", false, dueDate, ownerID)
	if err != ErrEmptyTaskTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	_, err = NewTask("ab", "", false, dueDate, ownerID)
	if err != ErrTaskTitleTooShort {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleTooShort, err)
	}

	_, err = NewTask(strings.Repeat("x", TaskTitleMaxLength+1), "", false, dueDate, ownerID)
	if err != ErrTaskTitleTooLong {
		t.Errorf("Expected error %v, got %v", ErrTaskTitleTooLong, err)
	}

	// Test missing owner
	_, err = NewTask("Write report", "", false, dueDate, uuid.Nil)
	if err != ErrEmptyTaskOwner {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskOwner, err)
	}
}

func TestTaskValidate(t *testing.T) {
	validTask := Task{
		ID:      1,
		Title:   "Write report",
		DueDate: time.Now().UTC(),
		OwnerID: uuid.New(),
	}

	if err := validTask.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Title exactly at the bounds is valid
	boundary := validTask
	boundary.Title = strings.Repeat("a", TaskTitleMinLength)
	if err := boundary.Validate(); err != nil {
		t.Errorf("Expected no error for minimum-length title, got %v", err)
	}

	boundary.Title = strings.Repeat("a", TaskTitleMaxLength)
	if err := boundary.Validate(); err != nil {
		t.Errorf("Expected no error for maximum-length title, got %v", err)
	}

	invalidTask := validTask
	invalidTask.Title = ""
	if err := invalidTask.Validate(); err != ErrEmptyTaskTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	invalidTask = validTask
	invalidTask.OwnerID = uuid.Nil
	if err := invalidTask.Validate(); err != ErrEmptyTaskOwner {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskOwner, err)
	}
}
