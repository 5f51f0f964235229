package model

import "time"

type User struct {
	UserID    string    `bson:"user_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"` // stored lowercase, unique
	Password  string    `bson:"password" json:"-"`  // argon2 hash, never serialized
	Role      Role      `bson:"role" json:"role"`
	TeamLead  string    `bson:"team_lead,omitempty" json:"team_lead,omitempty"` // user_id of this user's team lead
	IsActive  bool      `bson:"is_active" json:"is_active"`
	LastLogin time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Sanitized returns a copy safe to attach to a request context or response
// body: the password hash is scrubbed.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
