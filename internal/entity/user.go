package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FitnessBeginner     = "beginner"
	FitnessIntermediate = "intermediate"
	FitnessAdvanced     = "advanced"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username       string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	FirstName      string    `gorm:"size:50" json:"first_name"`
	LastName       string    `gorm:"size:50" json:"last_name"`
	ProfilePicture *string   `gorm:"type:text" json:"profile_picture,omitempty"`
	Bio            string    `gorm:"type:text" json:"bio"`
	FitnessLevel   string    `gorm:"size:20;default:beginner" json:"fitness_level"`
	// TotalPoints is derived: always the sum of points_earned over this user's
	// activities. Refreshed by the activity module, never written directly.
	TotalPoints int       `gorm:"default:0" json:"total_points"`
	IsAdmin     bool      `gorm:"default:false" json:"is_admin"`
	Teams       []*Team   `gorm:"many2many:team_members" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
