package models

import "time"

// Influencer represents a referral partner identified by ref_code
type Influencer struct {
	ID        int       `json:"id"`
	RefCode   string    `json:"ref_code"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// InfluencerStats aggregates registrations attributed to one ref_code
type InfluencerStats struct {
	RefCode   string  `json:"ref_code"`
	Initiated int     `json:"initiated"`
	Success   int     `json:"success"`
	Revenue   float64 `json:"revenue"`
}
