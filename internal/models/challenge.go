package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Challenge is a user-defined goal with a date range. ReminderTime is opaque
// metadata; nothing in the server schedules against it.
type Challenge struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	StartDate    time.Time          `bson:"start_date" json:"startDate"`
	EndDate      time.Time          `bson:"end_date" json:"endDate"`
	ReminderTime string             `bson:"reminder_time,omitempty" json:"reminderTime,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`

	// ProgressLogs is attached on reads; logs live in their own collection.
	ProgressLogs []ProgressLog `bson:"-" json:"progressLogs"`
}
