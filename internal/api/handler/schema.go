package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"  validate:"required"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// updateUserRequest carries the only profile fields a caller may change.
// Role and password are not bindable through this path.
type updateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=1"`
	Email     *string `json:"email"      validate:"omitempty,email"`
}

// --- Response types ---

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}
