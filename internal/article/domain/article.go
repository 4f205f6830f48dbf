package domain

import "time"

type Comment struct {
	User    string    `json:"user"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

type Article struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
