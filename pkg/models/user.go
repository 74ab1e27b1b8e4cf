package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleFarmer UserRole = "farmer"
)

type User struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Email             string    `json:"email" gorm:"uniqueIndex"`
	FullName          string    `json:"full_name"`
	PasswordHash      string    `json:"-"`
	Role              UserRole  `json:"role"`
	CreationTimestamp time.Time `json:"creation_timestamp"`
}
