package payload

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleSignInRequest struct {
	IDToken   string `json:"idToken" validate:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
