package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Weekday is the closed set of weekday names used by the weekly timing
// template. Values match time.Weekday.String().
type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

func (w Weekday) Valid() bool {
	switch w {
	case Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday:
		return true
	}
	return false
}

// WeekdayOf maps a calendar date to its template weekday.
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday().String())
}

// Doctor is the professional profile owned by exactly one doctor user.
type Doctor struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Specialization string         `gorm:"size:100;not null" json:"specialization"`
	Experience     int            `gorm:"not null" json:"experience"`
	Fees           float64        `gorm:"not null" json:"fees"`
	Address        string         `gorm:"size:255" json:"address"`
	Bio            string         `gorm:"type:text" json:"bio"`
	Rating         float64        `gorm:"default:0" json:"rating"`
	ReviewCount    int            `gorm:"default:0" json:"review_count"`
	Timings        []DoctorTiming `gorm:"foreignKey:DoctorID" json:"timings"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}

// DoctorTiming is one row of the weekly template. The unique index on
// (doctor_id, day) keeps the template to at most one window per weekday.
type DoctorTiming struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_doctor_timings_day" json:"-"`
	Day         Weekday   `gorm:"size:10;not null;uniqueIndex:idx_doctor_timings_day" json:"day"`
	StartTime   string    `gorm:"size:5;not null" json:"start_time"`
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
}
