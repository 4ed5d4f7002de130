package api

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Name string `json:"name" validate:"required"`
}

// LoginResponse is the data of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}
