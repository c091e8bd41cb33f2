package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fittrack/fittrack-be/internal/apperr"
	"github.com/fittrack/fittrack-be/internal/models"
	"github.com/fittrack/fittrack-be/internal/validate"
)

// AuthorizeOwner decides whether the caller may mutate a resource
// owned by ownerID. It is a pure function of the two identifiers.
func AuthorizeOwner(ownerID, callerID string) error {
	if ownerID != callerID {
		return apperr.Authorization("not authorized to modify this resource")
	}
	return nil
}

// GoalInput carries the fields needed to create a goal.
type GoalInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
}

// GoalServiceProvider defines the interface for goal services.
type GoalServiceProvider interface {
	CreateGoal(ctx context.Context, userID string, input GoalInput) (models.Goal, error)
	GetGoalsByUserID(ctx context.Context, userID string) ([]models.Goal, error)
	GetGoalByID(ctx context.Context, id string) (*models.Goal, error)
	UpdateGoal(ctx context.Context, id, callerID string, update models.GoalUpdate) (models.Goal, error)
	DeleteGoal(ctx context.Context, id, callerID string) error
}

// GoalService provides business logic for goal management. Mutations
// check that the goal exists before checking that the caller owns it.
type GoalService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewGoalService creates a new GoalService. events may be nil in tests.
func NewGoalService(db *sql.DB, events EventServiceProvider) *GoalService {
	return &GoalService{db: db, events: events}
}

const goalColumns = "id, user_id, title, description, due_date, completed, reminded, created_at, updated_at"

// CreateGoal validates and stores a new goal for the given user.
func (s *GoalService) CreateGoal(ctx context.Context, userID string, input GoalInput) (models.Goal, error) {
	var problems []string
	if !validate.Required(input.Title) {
		problems = append(problems, "title is required")
	}
	if input.DueDate.IsZero() {
		problems = append(problems, "due date is required")
	}
	if len(problems) > 0 {
		return models.Goal{}, apperr.Validation(strings.Join(problems, "; "))
	}

	now := time.Now().UTC()
	goal := models.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		DueDate:     input.DueDate.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO goals(id, user_id, title, description, due_date, completed, reminded, created_at, updated_at) VALUES(?, ?, ?, ?, ?, 0, 0, ?, ?)",
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.DueDate, goal.CreatedAt, goal.UpdatedAt)
	if err != nil {
		return models.Goal{}, apperr.Internal("failed to create goal", err)
	}

	s.recordEvent(ctx, "goal_created", fmt.Sprintf("Goal %q created", goal.Title), userID)
	return goal, nil
}

// GetGoalsByUserID retrieves all goals owned by the given user.
func (s *GoalService) GetGoalsByUserID(ctx context.Context, userID string) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE user_id = ? ORDER BY due_date ASC", userID)
	if err != nil {
		return nil, apperr.Internal("failed to list goals", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, apperr.Internal("failed to list goals", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal("failed to list goals", err)
	}
	return goals, nil
}

// GetGoalByID retrieves a single goal. Absence is a valid result,
// reported as (nil, nil).
func (s *GoalService) GetGoalByID(ctx context.Context, id string) (*models.Goal, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+goalColumns+" FROM goals WHERE id = ?", id)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Internal("failed to look up goal", err)
	}
	return &goal, nil
}

// UpdateGoal applies a partial update to a goal after checking
// existence, then ownership.
func (s *GoalService) UpdateGoal(ctx context.Context, id, callerID string, update models.GoalUpdate) (models.Goal, error) {
	if update.Empty() {
		return models.Goal{}, apperr.Validation("at least one field must be provided for update")
	}
	if update.Title != nil && !validate.Required(*update.Title) {
		return models.Goal{}, apperr.Validation("title must not be empty")
	}

	goal, err := s.GetGoalByID(ctx, id)
	if err != nil {
		return models.Goal{}, err
	}
	if goal == nil {
		return models.Goal{}, apperr.NotFound("goal not found")
	}
	if err := AuthorizeOwner(goal.UserID, callerID); err != nil {
		return models.Goal{}, err
	}

	completing := update.Completed != nil && *update.Completed && !goal.Completed

	if update.Title != nil {
		goal.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		goal.Description = strings.TrimSpace(*update.Description)
	}
	if update.DueDate != nil {
		goal.DueDate = update.DueDate.UTC()
		// A moved deadline warrants a fresh reminder.
		goal.Reminded = false
	}
	if update.Completed != nil {
		goal.Completed = *update.Completed
	}
	goal.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		"UPDATE goals SET title = ?, description = ?, due_date = ?, completed = ?, reminded = ?, updated_at = ? WHERE id = ?",
		goal.Title, goal.Description, goal.DueDate, goal.Completed, goal.Reminded, goal.UpdatedAt, goal.ID)
	if err != nil {
		return models.Goal{}, apperr.Internal("failed to update goal", err)
	}

	if completing {
		s.recordEvent(ctx, "goal_completed", fmt.Sprintf("Goal %q completed", goal.Title), callerID)
	}
	return *goal, nil
}

// DeleteGoal removes a goal after checking existence, then ownership.
func (s *GoalService) DeleteGoal(ctx context.Context, id, callerID string) error {
	goal, err := s.GetGoalByID(ctx, id)
	if err != nil {
		return err
	}
	if goal == nil {
		return apperr.NotFound("goal not found")
	}
	if err := AuthorizeOwner(goal.UserID, callerID); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id); err != nil {
		return apperr.Internal("failed to delete goal", err)
	}

	s.recordEvent(ctx, "goal_deleted", fmt.Sprintf("Goal %q deleted", goal.Title), callerID)
	return nil
}

// GetDueUnremindedGoals retrieves incomplete goals due before the
// deadline that have not had a reminder yet.
func (s *GoalService) GetDueUnremindedGoals(ctx context.Context, deadline time.Time) ([]models.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM goals WHERE completed = 0 AND reminded = 0 AND due_date <= ?", deadline)
	if err != nil {
		return nil, apperr.Internal("failed to list due goals", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, apperr.Internal("failed to list due goals", err)
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// MarkReminded records that a reminder has been sent for the goal.
func (s *GoalService) MarkReminded(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE goals SET reminded = 1 WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (models.Goal, error) {
	var goal models.Goal
	err := row.Scan(&goal.ID, &goal.UserID, &goal.Title, &goal.Description, &goal.DueDate,
		&goal.Completed, &goal.Reminded, &goal.CreatedAt, &goal.UpdatedAt)
	return goal, err
}

func (s *GoalService) recordEvent(ctx context.Context, eventType, message, userID string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(ctx, eventType, "info", message, &userID); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record goal event")
	}
}
