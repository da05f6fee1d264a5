package model

// User is an application account. Mdp holds the bcrypt hash once persisted
// and must be cleared before a user leaves the API.
type User struct {
	ID     int64  `json:"id"`
	Nom    string `json:"nom"`
	Email  string `json:"email"`
	Mdp    string `json:"mdp,omitempty"`
	Statut string `json:"statut"`
	Date   *Date  `json:"date"`
}

// Redacted returns a copy without the password.
func (u User) Redacted() User {
	u.Mdp = ""
	return u
}
