package handler

// Password policy: 8-30 characters with at least one special character.
type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=30,containsany=!@#$%^&*()_+-="`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=30,containsany=!@#$%^&*()_+-="`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=30,containsany=!@#$%^&*()_+-="`
}

// successResponse is the body for mutations that report nothing but success.
type successResponse struct {
	Success bool `json:"success"`
}
