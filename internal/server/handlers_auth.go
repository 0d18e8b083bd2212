package server

import (
	"database/sql"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// signup creates an account and issues a token, so the client is logged in
// immediately. An admin code, when configured, upgrades the role; a wrong
// non-empty code is rejected rather than silently downgraded.
func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" {
		respondError(c, 400, "email and name are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		respondError(c, 400, "password must be at least 6 characters")
		return
	}

	role := "standard"
	if req.AdminCode != "" {
		if s.cfg.AdminCode == "" || req.AdminCode != s.cfg.AdminCode {
			respondError(c, 403, "invalid admin code")
			return
		}
		role = "admin"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, 500, "failed to hash password")
		return
	}

	user := User{Email: req.Email, Name: req.Name, Role: role, Phone: nullable(strings.TrimSpace(req.Phone))}
	err = s.db.QueryRow(`
		INSERT INTO users (email, name, phone, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, user.Email, user.Name, user.Phone, user.Role, string(hash)).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondError(c, 409, "an account with this email already exists")
			return
		}
		log.Printf("signup: create user: %v", err)
		respondError(c, 500, "failed to create account")
		return
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		respondError(c, 500, "failed to generate token")
		return
	}
	respondData(c, 201, gin.H{"token": token, "user": user})
}

// login exchanges credentials for a token. Unknown email and bad password
// answer identically.
func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user User
	var hash string
	err := s.db.QueryRow(`
		SELECT id, email, name, phone, role, password_hash, created_at
		FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Email, &user.Name, &user.Phone, &user.Role, &hash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		respondError(c, 401, "invalid email or password")
		return
	}
	if err != nil {
		log.Printf("login: fetch user: %v", err)
		respondError(c, 500, "failed to fetch user")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		respondError(c, 401, "invalid email or password")
		return
	}

	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		respondError(c, 500, "failed to generate token")
		return
	}
	respondData(c, 200, gin.H{"token": token, "user": user})
}

// forgotPassword issues an OTP. The response does not reveal whether the
// email exists; the code is logged in place of a mail integration.
func (s *Server) forgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var exists bool
	if err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		log.Printf("forgot-password: lookup: %v", err)
		respondError(c, 500, "failed to process request")
		return
	}
	if exists {
		code, err := s.otps.Issue(c.Request.Context(), email)
		if err != nil {
			log.Printf("forgot-password: issue OTP: %v", err)
			respondError(c, 500, "failed to issue reset code")
			return
		}
		// Stand-in for the mailer.
		log.Printf("password reset OTP for %s: %s", email, code)
	}
	respondMessage(c, 200, "if the account exists, a reset code has been sent")
}

// resetPassword consumes the OTP and sets the new password. It does not log
// the user in.
func (s *Server) resetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.NewPassword) < minPasswordLength {
		respondError(c, 400, "password must be at least 6 characters")
		return
	}
	if !s.otps.Consume(c.Request.Context(), email, strings.TrimSpace(req.OTP)) {
		respondError(c, 400, "invalid or expired reset code")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, 500, "failed to hash password")
		return
	}
	result, err := s.db.Exec(`UPDATE users SET password_hash = $1 WHERE email = $2`, string(hash), email)
	if err != nil {
		log.Printf("reset-password: update: %v", err)
		respondError(c, 500, "failed to reset password")
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		respondError(c, 400, "invalid or expired reset code")
		return
	}
	respondMessage(c, 200, "password has been reset")
}

// getProfile returns the authenticated user's account.
func (s *Server) getProfile(c *gin.Context) {
	var user User
	err := s.db.QueryRow(`
		SELECT id, email, name, phone, role, created_at
		FROM users WHERE id = $1
	`, currentUserID(c)).Scan(&user.ID, &user.Email, &user.Name, &user.Phone, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		respondError(c, 404, "user not found")
		return
	}
	if err != nil {
		log.Printf("profile: fetch: %v", err)
		respondError(c, 500, "failed to fetch profile")
		return
	}
	respondData(c, 200, user)
}

// updateProfile edits the owner-mutable fields (name, phone).
func (s *Server) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(c, 400, "name is required")
		return
	}

	var user User
	err := s.db.QueryRow(`
		UPDATE users SET name = $1, phone = $2 WHERE id = $3
		RETURNING id, email, name, phone, role, created_at
	`, req.Name, nullable(strings.TrimSpace(req.Phone)), currentUserID(c)).
		Scan(&user.ID, &user.Email, &user.Name, &user.Phone, &user.Role, &user.CreatedAt)
	if err != nil {
		log.Printf("profile: update: %v", err)
		respondError(c, 500, "failed to update profile")
		return
	}
	respondData(c, 200, user)
}
