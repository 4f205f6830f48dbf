package domain

import "time"

const DobLayout = "2006-01-02"

type ID string

type User struct {
	ID           ID
	Username     string
	PasswordHash string
	Email        string
	Dob          time.Time
	Zipcode      string
	Phone        string
	Avatar       string
	Headline     string
	CreatedAt    time.Time
}

// PublicUser is what leaves the service boundary; it never carries the hash.
type PublicUser struct {
	ID        ID        `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Dob       string    `json:"dob"`
	Zipcode   string    `json:"zipcode"`
	Phone     string    `json:"phone"`
	Avatar    string    `json:"avatar,omitempty"`
	Headline  string    `json:"headline,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Dob:       u.Dob.Format(DobLayout),
		Zipcode:   u.Zipcode,
		Phone:     u.Phone,
		Avatar:    u.Avatar,
		Headline:  u.Headline,
		CreatedAt: u.CreatedAt,
	}
}
