package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActivityRunning       = "running"
	ActivityCycling       = "cycling"
	ActivitySwimming      = "swimming"
	ActivityWeightlifting = "weightlifting"
	ActivityYoga          = "yoga"
	ActivityWalking       = "walking"
	ActivityOther         = "other"
)

type Activity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index:idx_activities_user_date,priority:1;not null" json:"user_id"`
	User         *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ActivityType string    `gorm:"size:50;not null" json:"activity_type"`
	Duration     int       `gorm:"not null" json:"duration"` // minutes
	Distance     *float64  `json:"distance,omitempty"`       // km
	Calories     int       `gorm:"column:calories_burned;default:0" json:"calories_burned"`
	// PointsEarned is computed once at creation when zero; an explicit non-zero
	// value supplied by the caller is kept and never silently recomputed.
	PointsEarned int       `gorm:"default:0" json:"points_earned"`
	Notes        string    `gorm:"type:text" json:"notes"`
	Date         time.Time `gorm:"index:idx_activities_user_date,priority:2;index:idx_activities_date;not null" json:"date"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
