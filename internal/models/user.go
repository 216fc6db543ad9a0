package models

import "time"

type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinDate time.Time `json:"joinDate"`
}
