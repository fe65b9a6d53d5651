package domain

import "time"

type Club struct {
	ID               int32     `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description"`
	University       string    `json:"university"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	Ratio            float64   `json:"ratio"`      // associates / students, 2 decimals
	Popularity       int32     `json:"popularity"` // active member count
	CreatedOn        time.Time `json:"created_on"`
}

// RosterCounts is the split of a club's active members by classification.
type RosterCounts struct {
	Students   int `json:"students"`
	Associates int `json:"associates"`
}

func (c RosterCounts) Total() int {
	return c.Students + c.Associates
}
