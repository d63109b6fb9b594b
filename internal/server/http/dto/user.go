package dto

import (
	"time"

	"github.com/ebiblio/storefront/internal/domain/model"
)

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        int64         `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      string        `json:"role"`
	Stats     StatsResponse `json:"stats"`
	CreatedAt time.Time     `json:"createdAt"`
}

// StatsResponse mirrors the profile activity counters.
type StatsResponse struct {
	Orders      int     `json:"orders"`
	TotalSpent  float64 `json:"totalSpent"`
	BooksBought int     `json:"booksBought"`
	BooksRented int     `json:"booksRented"`
}

// UpdateProfileRequest carries profile edits.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewUserResponse maps a domain user onto its API view.
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
		Stats: StatsResponse{
			Orders:      u.Stats.Orders,
			TotalSpent:  u.Stats.TotalSpent,
			BooksBought: u.Stats.BooksBought,
			BooksRented: u.Stats.BooksRented,
		},
		CreatedAt: u.CreatedAt,
	}
}
