package domain

// Gym represents a gym location.
type Gym struct {
	GymID       int64  `json:"gym_id"`
	City        string `json:"city"`
	Street      string `json:"street"`
	Building    string `json:"building"`
	Description string `json:"description"`
}
