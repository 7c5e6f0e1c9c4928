package dto

import "github.com/carebook/backend/internal/models"

type TimingInput struct {
	Day         models.Weekday `json:"day"`
	StartTime   string         `json:"start_time"`
	EndTime     string         `json:"end_time"`
	IsAvailable bool           `json:"is_available"`
}

type CreateDoctorRequest struct {
	Specialization string        `json:"specialization"`
	Experience     int           `json:"experience"`
	Fees           float64       `json:"fees"`
	Timings        []TimingInput `json:"timings"`
	Address        string        `json:"address"`
	Bio            string        `json:"bio"`
}

// UpdateDoctorRequest carries a partial profile update; nil fields are
// left untouched. Replacing Timings swaps the whole weekly template.
type UpdateDoctorRequest struct {
	Specialization *string        `json:"specialization"`
	Experience     *int           `json:"experience"`
	Fees           *float64       `json:"fees"`
	Timings        *[]TimingInput `json:"timings"`
	Address        *string        `json:"address"`
	Bio            *string        `json:"bio"`
}

// DoctorListQuery mirrors the public list endpoint's query params.
type DoctorListQuery struct {
	Page           int
	Limit          int
	Specialization string
	Search         string
}

type DoctorListResponse struct {
	Success     bool        `json:"success"`
	Count       int         `json:"count"`
	Total       int64       `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"current_page"`
	Data        interface{} `json:"data"`
}
