package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single place/time entry within a day.
// All fields are optional on input; the save handlers default them
// so persisted documents never carry missing fields.
type Activity struct {
	Place    string `json:"place"`
	Time     string `json:"time"`
	Period   string `json:"period"`
	Activity string `json:"activity"`
}

// Day is an ordered list of activities with a display title.
// Order is the explicit display ordinal; the title stays free text.
type Day struct {
	Order      int        `json:"order"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

// TravelPlan represents a user's travel itinerary document.
// Days is persisted as a JSONB document column; LikedBy is the
// authoritative liker set and Likes is kept in lockstep with it.
type TravelPlan struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"userId" db:"user_id"`
	Title          string    `json:"title" db:"title"`
	Creator        string    `json:"creator" db:"creator"`
	Destination    string    `json:"destination" db:"destination"`
	NumberOfPeople int       `json:"numberOfPeople" db:"number_of_people"`
	IsShared       bool      `json:"isShared" db:"is_shared"`
	Likes          int       `json:"likes" db:"likes"`
	Views          int       `json:"views" db:"views"`
	LikedBy        []string  `json:"likedBy" db:"liked_by"`
	Days           []Day     `json:"days" db:"days"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// HasLiked reports whether the given user id is in the liker set.
func (p *TravelPlan) HasLiked(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
