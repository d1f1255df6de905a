package dto

import (
	"time"

	"github.com/google/uuid"
)

type LeaderboardFilter struct {
	Period string `form:"period,default=all_time" binding:"omitempty,oneof=daily weekly monthly all_time"`
	Type   string `form:"type,default=user" binding:"omitempty,oneof=user team"`
	Limit  int    `form:"limit,default=50" binding:"omitempty,min=1,max=100"`
}

type RefreshRequest struct {
	Period string `json:"period" binding:"required,oneof=daily weekly monthly all_time"`
}

type LeaderboardUser struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	FitnessLevel   string    `json:"fitness_level"`
}

type LeaderboardTeam struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type LeaderboardEntryResponse struct {
	Rank   int              `json:"rank"`
	Points int              `json:"points"`
	Period string           `json:"period"`
	User   *LeaderboardUser `json:"user,omitempty"`
	Team   *LeaderboardTeam `json:"team,omitempty"`
}

// RefreshEvent is published on the Redis channel after a completed refresh and
// relayed to websocket subscribers.
type RefreshEvent struct {
	Period      string    `json:"period"`
	RefreshedAt time.Time `json:"refreshed_at"`
}
