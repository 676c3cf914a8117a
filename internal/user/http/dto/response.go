package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/gymbuddy/internal/user/domain"
)

// UserResponse is the public representation of an account. The password
// hash is never included.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	ZipCode      string    `json:"zip_code"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListUsersResponse wraps one page of users.
type ListUsersResponse struct {
	Data []UserResponse `json:"data"`
}

// MapUserToResponse converts a domain user to its JSON form.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Phone:        user.Phone,
		AddressLine1: user.AddressLine1,
		AddressLine2: user.AddressLine2,
		City:         user.City,
		State:        user.State,
		ZipCode:      user.ZipCode,
		Country:      user.Country,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// MapUsersToListResponse converts a page of users.
func MapUsersToListResponse(users []*domain.User) ListUsersResponse {
	data := make([]UserResponse, 0, len(users))
	for _, user := range users {
		data = append(data, MapUserToResponse(user))
	}
	return ListUsersResponse{Data: data}
}
