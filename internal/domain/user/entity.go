package user

// Profile is the part of a user row the matching pipeline reads.
type Profile struct {
	ID              string
	Skills          []string
	ExperienceYears int
	Qualification   string
	Location        string
}
