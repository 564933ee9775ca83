package dto

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Role     string `json:"role"`
	Skills   string `json:"skills" validate:"max=1000"`
	Company  string `json:"company" validate:"max=100"`
	Position string `json:"position" validate:"max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterResponse struct {
	User          UserResponse `json:"user"`
	RoleDefaulted bool         `json:"role_defaulted"`
	TokenResponse
}

type LoginResponse struct {
	User UserResponse `json:"user"`
	TokenResponse
}
