package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryStrength    = "strength"
	CategoryCardio      = "cardio"
	CategoryFlexibility = "flexibility"
	CategoryBalance     = "balance"
	CategoryHIIT        = "hiit"
)

// Exercise is one step inside a workout template.
type Exercise struct {
	Name            string `json:"name"`
	Sets            int    `json:"sets,omitempty"`
	Reps            int    `json:"reps,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

type ExerciseList []Exercise

func (l ExerciseList) Value() (driver.Value, error) {
	if l == nil {
		l = ExerciseList{}
	}
	return json.Marshal(l)
}

func (l *ExerciseList) Scan(value any) error {
	if value == nil {
		*l = ExerciseList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into ExerciseList", value)
	}
	return json.Unmarshal(b, l)
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	return json.Unmarshal(b, l)
}

// Workout is a static suggestion template. The engines only ever read it.
type Workout struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string       `gorm:"size:200;not null" json:"name"`
	Description     string       `gorm:"type:text" json:"description"`
	DifficultyLevel string       `gorm:"size:20;not null;index" json:"difficulty_level"`
	Category        string       `gorm:"size:50;not null;index" json:"category"`
	Duration        int          `gorm:"not null" json:"duration"` // estimated minutes
	Exercises       ExerciseList `gorm:"type:jsonb" json:"exercises"`
	EquipmentNeeded StringList   `gorm:"type:jsonb" json:"equipment_needed"`
	TargetMuscles   StringList   `gorm:"type:jsonb" json:"target_muscles"`
	CreatedAt       time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (w *Workout) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
