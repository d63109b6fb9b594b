package dto

// AdminStatsResponse aggregates the back-office dashboard figures.
type AdminStatsResponse struct {
	TotalOrders int     `json:"totalOrders"`
	TotalAmount float64 `json:"totalAmount"`
	OrdersToday int     `json:"ordersToday"`
	AmountToday float64 `json:"amountToday"`
	BooksBought int     `json:"booksBought"`
	BooksRented int     `json:"booksRented"`
	UserCount   int     `json:"userCount"`
	BookCount   int     `json:"bookCount"`
}

// UpdateRoleRequest carries a role change.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// CreateUserRequest opens an account from the back office. The temporary
// password is generated server-side and emailed, never echoed back.
type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
