package api

import "context"

// LoginRequest carries credentials for the token exchange.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest creates an account. AdminCode is optional and validated
// server-side only; a bad code downgrades nothing client-side.
type SignupRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
	AdminCode string `json:"admin_code,omitempty"`
}

// ForgotPasswordRequest asks the backend to issue an OTP to the email.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest consumes an OTP and sets a new password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// ProfileUpdateRequest edits the owner-mutable profile fields.
type ProfileUpdateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) Response {
	return c.post(ctx, "/auth/login", LoginRequest{Email: email, Password: password})
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) Response {
	return c.post(ctx, "/auth/signup", req)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) Response {
	return c.post(ctx, "/auth/forgot-password", ForgotPasswordRequest{Email: email})
}

func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) Response {
	return c.post(ctx, "/auth/reset-password", req)
}

func (c *Client) GetProfile(ctx context.Context) Response {
	return c.get(ctx, "/profile")
}

func (c *Client) UpdateProfile(ctx context.Context, req ProfileUpdateRequest) Response {
	return c.put(ctx, "/profile", req)
}
