package models

import "time"

type User struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"unique" json:"email"`
	Password   string    `json:"-"`
	Role       string    `gorm:"default:user" json:"role"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
