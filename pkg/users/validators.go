package users

// CreateUserPayload is the request body for creating a user.
type CreateUserPayload struct {
	Username string `json:"username" mod:"trim" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	IsStaff  bool   `json:"is_staff"`
}

// UpdateUserPayload is the request body for updating a user. All fields are
// optional; only present fields are applied.
type UpdateUserPayload struct {
	Username *string `json:"username,omitempty" mod:"trim" validate:"omitempty,min=3,max=50"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	IsStaff  *bool   `json:"is_staff,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
