package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         string    `gorm:"default:customer" json:"role"` // admin|customer
	CreatedAt    time.Time `json:"created_at"`

	Devices []Device `gorm:"foreignKey:OwnerID" json:"-"`
}
