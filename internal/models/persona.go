package models

// Persona is a named target-audience profile. ID is assigned by the
// reducer on ADD_PERSONA and never changes afterwards.
type Persona struct {
	ID              string   `json:"id"`
	Name            string   `json:"name" validate:"required"`
	AgeRange        string   `json:"ageRange"`
	PrimaryConcerns []string `json:"primaryConcerns"`
	Keywords        string   `json:"keywords"`
	TherapyGoals    string   `json:"therapyGoals"`
	Location        string   `json:"location"`
}
