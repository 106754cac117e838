package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base replaces gorm.Model: rows are keyed by UUID and are hard-deleted.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// DateLayout is the day-granular form used for goal and score dates.
const DateLayout = "2006-01-02"

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Profile{},
		&DailyGoal{},
		&DailyScore{},
		&CodingProblem{},
	}
}
