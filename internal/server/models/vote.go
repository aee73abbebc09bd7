package models

// Vote is the result of casting a vote: the link voted on and the voter.
// The association itself is a (user, link) pair stored as a set; casting
// twice for the same pair is a no-op.
type Vote struct {
	Link *Link `json:"link"`
	User *User `json:"user"`
}
