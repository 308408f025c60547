package models

import (
	"time"
)

type User struct {
	ID string `db:"id" json:"id"`

	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	FirstName    string `db:"first_name" json:"firstName"`
	LastName     string `db:"last_name" json:"lastName"`
	Age          int    `db:"age" json:"age"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
