// Package models contains the persistent entities shared by the services.
package models

import "time"

// User represents an account in the user service's store. PasswordHash
// holds the bcrypt hash; the plaintext password is never persisted.
type User struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password;size:200;not null"`
	LastLogin    *time.Time `json:"last_login" gorm:"column:last_login"`
}

// TableName returns the database table name for the User model.
func (User) TableName() string {
	return "users"
}
