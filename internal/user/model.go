package user

import "time"

// Roles gate which dashboard a user sees. Registration and login live in the
// external auth service; this backend only reads the shared users table.
const (
	RoleBuyer    = "buyer"
	RoleSeller   = "seller"
	RoleDelivery = "delivery_provider"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
