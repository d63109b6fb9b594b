package model

import "time"

// Role distinguishes storefront customers from back-office administrators.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// UserStats aggregates purchase activity shown on the profile page.
type UserStats struct {
	Orders      int
	TotalSpent  float64
	BooksBought int
	BooksRented int
}

// User represents a registered storefront account.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Stats        UserStats
	CreatedAt    time.Time
}
