// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/pesawise/backend/internal/application/usecase/goal"
	"github.com/pesawise/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title         string  `json:"title" binding:"required,min=1,max=100"`
	Category      string  `json:"category" binding:"omitempty,max=100"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount" binding:"gte=0"`
	TargetDate    string  `json:"target_date"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Title         *string  `json:"title,omitempty" binding:"omitempty,min=1,max=100"`
	Category      *string  `json:"category,omitempty" binding:"omitempty,max=100"`
	TargetAmount  *float64 `json:"target_amount,omitempty"`
	CurrentAmount *float64 `json:"current_amount,omitempty" binding:"omitempty,gte=0"`
	TargetDate    *string  `json:"target_date,omitempty"`
	Status        *string  `json:"status,omitempty" binding:"omitempty,oneof=active paused completed"`
}

// GoalProgressResponse represents the derived progress of a goal.
type GoalProgressResponse struct {
	Percent        float64 `json:"percent"`
	DisplayRatio   float64 `json:"display_ratio"`
	Completed      bool    `json:"completed"`
	Valid          bool    `json:"valid"`
	Classification string  `json:"classification"`
	Remaining      float64 `json:"remaining"`
	DaysLeft       int     `json:"days_left"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Category      string               `json:"category"`
	TargetAmount  float64              `json:"target_amount"`
	CurrentAmount float64              `json:"current_amount"`
	TargetDate    string               `json:"target_date"`
	Status        string               `json:"status"`
	Progress      GoalProgressResponse `json:"progress"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// ToGoalResponse converts a goal and its progress to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal, p goal.Progress) GoalResponse {
	response := GoalResponse{
		ID:            g.ID.String(),
		Title:         g.Title,
		Category:      g.Category,
		TargetAmount:  toFloat(g.TargetAmount),
		CurrentAmount: toFloat(g.CurrentAmount),
		Status:        string(g.Status),
		Progress: GoalProgressResponse{
			Percent:        p.Percent,
			DisplayRatio:   p.DisplayRatio,
			Completed:      p.Completed,
			Valid:          p.Valid,
			Classification: string(p.Classification),
			Remaining:      toFloat(p.Remaining),
			DaysLeft:       p.DaysLeft,
		},
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}

	if !g.TargetDate.IsZero() {
		response.TargetDate = g.TargetDate.Format(entity.DateLayout)
	}

	return response
}

// ToGoalListResponse converts goals with progress to a GoalListResponse DTO.
func ToGoalListResponse(goals []*goal.GoalWithProgress) GoalListResponse {
	responses := make([]GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = ToGoalResponse(g.Goal, g.Progress)
	}
	return GoalListResponse{Goals: responses}
}
