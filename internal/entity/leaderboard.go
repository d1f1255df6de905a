package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all_time"
)

// LeaderboardEntry is a ranked snapshot for either one user or one team within a
// period. Exactly one of UserID / TeamID is set; the check constraint and the
// per-period unique indexes enforce the snapshot invariants at the database.
type LeaderboardEntry struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_leaderboard_user_period;check:chk_leaderboard_entity,(user_id IS NULL) <> (team_id IS NULL)" json:"user_id,omitempty"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	TeamID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_leaderboard_team_period" json:"team_id,omitempty"`
	Team      *Team      `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"team,omitempty"`
	Period    string     `gorm:"size:20;not null;uniqueIndex:idx_leaderboard_user_period;uniqueIndex:idx_leaderboard_team_period" json:"period"`
	Rank      int        `gorm:"not null" json:"rank"`
	Points    int        `gorm:"default:0" json:"points"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *LeaderboardEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func ValidPeriod(period string) bool {
	switch period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAllTime:
		return true
	}
	return false
}
