package services

import (
	"context"
	"errors"
	"time"

	"github.com/Valentin6743/LS/internal/apperr"
	"github.com/Valentin6743/LS/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrTaskCycle is returned when a parent assignment would make a task its
// own ancestor.
var ErrTaskCycle = &apperr.ValidationError{Field: "parent_task_id", Reason: "would create a cycle"}

type TaskFilter struct {
	OwnerID      *uuid.UUID
	ProjectID    *uuid.UUID
	AssigneeID   *uuid.UUID
	ParentTaskID *uuid.UUID
	Status       *models.TaskStatus
	Priority     *models.Priority
	Category     *string
	Due          Range
}

type CreateTaskRequest struct {
	OwnerID        uuid.UUID          `json:"owner_id"`
	ProjectID      *uuid.UUID         `json:"project_id"`
	ParentTaskID   *uuid.UUID         `json:"parent_task_id"`
	Title          string             `json:"title"`
	Description    *string            `json:"description"`
	Status         *models.TaskStatus `json:"status"`
	Priority       *models.Priority   `json:"priority"`
	Category       *string            `json:"category"`
	Repeat         bool               `json:"repeat"`
	DueDate        *time.Time         `json:"due_date"`
	StartDate      *time.Time         `json:"start_date"`
	EstimatedHours *float64           `json:"estimated_hours"`
	AssigneeID     *uuid.UUID         `json:"assignee_id"`
	Tags           []string           `json:"tags"`
}

type UpdateTaskRequest struct {
	ProjectID      *uuid.UUID         `json:"project_id"`
	ParentTaskID   *uuid.UUID         `json:"parent_task_id"`
	Title          *string            `json:"title"`
	Description    *string            `json:"description"`
	Status         *models.TaskStatus `json:"status"`
	Priority       *models.Priority   `json:"priority"`
	Category       *string            `json:"category"`
	Repeat         *bool              `json:"repeat"`
	DueDate        *time.Time         `json:"due_date"`
	StartDate      *time.Time         `json:"start_date"`
	EstimatedHours *float64           `json:"estimated_hours"`
	ActualHours    *float64           `json:"actual_hours"`
	AssigneeID     *uuid.UUID         `json:"assignee_id"`
	Tags           *[]string          `json:"tags"`
}

type TaskService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db, now: time.Now}
}

func (f TaskFilter) scopes() []Scope {
	return []Scope{
		eq("owner_id", f.OwnerID),
		eq("project_id", f.ProjectID),
		eq("assignee_id", f.AssigneeID),
		eq("parent_task_id", f.ParentTaskID),
		eq("status", f.Status),
		eq("priority", f.Priority),
		eq("category", f.Category),
		f.Due.on("due_date"),
	}
}

func (s *TaskService) List(ctx context.Context, f TaskFilter) ([]models.Task, error) {
	return find[models.Task](ctx, s.db, "list tasks", "created_at DESC", f.scopes()...)
}

func (s *TaskService) ByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	return find[models.Task](ctx, s.db, "list project tasks", "due_date ASC", eq("project_id", &projectID))
}

func (s *TaskService) ByAssignee(ctx context.Context, assigneeID uuid.UUID) ([]models.Task, error) {
	return find[models.Task](ctx, s.db, "list assigned tasks", "due_date ASC", eq("assignee_id", &assigneeID))
}

func (s *TaskService) Subtasks(ctx context.Context, parentID uuid.UUID) ([]models.Task, error) {
	return find[models.Task](ctx, s.db, "list subtasks", "created_at DESC", eq("parent_task_id", &parentID))
}

func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return first[models.Task](ctx, s.db, "get task", byID(id))
}

func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := required("title", req.Title); err != nil {
		return nil, err
	}
	if err := requiredID("owner_id", req.OwnerID); err != nil {
		return nil, err
	}
	status := models.TaskTodo
	if req.Status != nil {
		status = *req.Status
	}
	priority := models.PriorityMedium
	if req.Priority != nil {
		priority = *req.Priority
	}
	if err := models.Check("status", status); err != nil {
		return nil, err
	}
	if err := models.Check("priority", priority); err != nil {
		return nil, err
	}

	t := models.Task{
		ID:             uuid.New(),
		OwnerID:        req.OwnerID,
		ProjectID:      req.ProjectID,
		ParentTaskID:   req.ParentTaskID,
		Title:          req.Title,
		Description:    req.Description,
		Priority:       priority,
		Category:       req.Category,
		Repeat:         req.Repeat,
		DueDate:        req.DueDate,
		StartDate:      req.StartDate,
		EstimatedHours: req.EstimatedHours,
		AssigneeID:     req.AssigneeID,
		Tags:           datatypes.JSONSlice[string](dedupe(req.Tags)),
	}
	t.SetCompleted(status == models.TaskCompleted, s.now().UTC())
	t.Status = status

	if t.ParentTaskID != nil {
		if err := s.checkParent(ctx, s.db, t.ID, *t.ParentTaskID); err != nil {
			return nil, err
		}
	}

	if err := create(ctx, s.db, "create task", &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TaskService) Update(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*models.Task, error) {
	if err := models.CheckOptional("status", req.Status); err != nil {
		return nil, err
	}
	if err := models.CheckOptional("priority", req.Priority); err != nil {
		return nil, err
	}
	if req.Title != nil {
		if err := required("title", *req.Title); err != nil {
			return nil, err
		}
	}

	t, err := mustGet[models.Task](ctx, s.db, "update task", "task", id)
	if err != nil {
		return nil, err
	}
	if req.ParentTaskID != nil && (t.ParentTaskID == nil || *t.ParentTaskID != *req.ParentTaskID) {
		if err := s.checkParent(ctx, s.db, t.ID, *req.ParentTaskID); err != nil {
			return nil, err
		}
	}

	setOpt(&t.ProjectID, req.ProjectID)
	setOpt(&t.ParentTaskID, req.ParentTaskID)
	set(&t.Title, req.Title)
	setOpt(&t.Description, req.Description)
	set(&t.Priority, req.Priority)
	setOpt(&t.Category, req.Category)
	set(&t.Repeat, req.Repeat)
	setOpt(&t.DueDate, req.DueDate)
	setOpt(&t.StartDate, req.StartDate)
	setOpt(&t.EstimatedHours, req.EstimatedHours)
	setOpt(&t.ActualHours, req.ActualHours)
	setOpt(&t.AssigneeID, req.AssigneeID)
	if req.Tags != nil {
		t.Tags = dedupe(*req.Tags)
	}
	if req.Status != nil && *req.Status != t.Status {
		t.SetCompleted(*req.Status == models.TaskCompleted, s.now().UTC())
		t.Status = *req.Status
	}

	if err := save(ctx, s.db, "update task", t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete[models.Task](ctx, s.db, "delete task", id)
}

// Toggle flips completion. Completing an incomplete repeating task also
// inserts its next occurrence, which is returned as the second value.
// Un-completing never removes an occurrence spawned earlier.
func (s *TaskService) Toggle(ctx context.Context, id uuid.UUID) (*models.Task, *models.Task, error) {
	var task models.Task
	var next *models.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("task", id)
			}
			return err
		}

		now := s.now().UTC()
		completing := !task.Completed()
		task.SetCompleted(completing, now)
		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		if task.Repeat && completing {
			n := task.NextOccurrence(uuid.New(), now)
			if err := tx.Create(&n).Error; err != nil {
				return err
			}
			next = &n
		}
		return nil
	})
	if err != nil {
		return nil, nil, apperr.Store("toggle task", err)
	}
	return &task, next, nil
}

// checkParent walks up from parentID and fails when it reaches taskID.
func (s *TaskService) checkParent(ctx context.Context, db *gorm.DB, taskID, parentID uuid.UUID) error {
	seen := map[uuid.UUID]bool{taskID: true}
	cur := parentID
	for {
		if seen[cur] {
			return ErrTaskCycle
		}
		seen[cur] = true

		var parent models.Task
		err := db.WithContext(ctx).Select("id", "parent_task_id").Where("id = ?", cur).Take(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return apperr.Store("check task parent", err)
		}
		if parent.ParentTaskID == nil {
			return nil
		}
		cur = *parent.ParentTaskID
	}
}

func dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
