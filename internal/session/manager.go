// Package session owns the authentication lifecycle: token persistence,
// profile rehydration on startup, login/signup/logout, and the OTP-based
// password reset flow.
package session

import (
	"context"
	"errors"
	"sync"

	"mining-finance-dashboard/internal/api"
	"mining-finance-dashboard/internal/data"
	"mining-finance-dashboard/internal/types"
)

// ErrNotAuthenticated is returned by operations that require a live session.
var ErrNotAuthenticated = errors.New("not logged in")

// State is the session lifecycle position.
type State int

const (
	// Unauthenticated: no token, no user.
	Unauthenticated State = iota
	// Verifying: a persisted token exists and the profile check is in flight.
	Verifying
	// Authenticated: the profile check passed and the user is populated.
	Authenticated
)

func (s State) String() string {
	switch s {
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Manager holds the single session for this process. Last write wins on
// concurrent logins; nothing coordinates them beyond the mutex.
type Manager struct {
	client *api.Client
	store  *TokenStore

	mu    sync.Mutex
	state State
	user  *types.User
}

// NewManager starts in the unauthenticated state. Call Bootstrap to pick up
// a persisted token.
func NewManager(client *api.Client, store *TokenStore) *Manager {
	return &Manager{client: client, store: store}
}

// Bootstrap checks for a persisted token and verifies it against the profile
// endpoint. A rejected or unreachable token is discarded and the session
// settles unauthenticated; this is the only suspend point on startup.
func (m *Manager) Bootstrap(ctx context.Context) error {
	if m.store.Token() == "" {
		m.setState(Unauthenticated, nil)
		return nil
	}

	m.setState(Verifying, nil)
	user, err := data.DecodeUser(m.client.GetProfile(ctx))
	if err != nil {
		if clearErr := m.store.Clear(); clearErr != nil {
			err = errors.Join(err, clearErr)
		}
		m.setState(Unauthenticated, nil)
		return err
	}
	m.setState(Authenticated, &user)
	return nil
}

// Login exchanges credentials for a token, persists it, and populates the
// user. The returned error carries the backend's message so callers can tell
// bad credentials from a dead network.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	token, user, err := data.DecodeLogin(m.client.Login(ctx, email, password))
	if err != nil {
		return err
	}
	return m.establish(token, user)
}

// Signup creates an account and starts a session exactly like Login. The
// admin code, if any, is validated server-side only.
func (m *Manager) Signup(ctx context.Context, email, password, name, phone, adminCode string) error {
	resp := m.client.Signup(ctx, api.SignupRequest{
		Email:     email,
		Name:      name,
		Phone:     phone,
		Password:  password,
		AdminCode: adminCode,
	})
	token, user, err := data.DecodeLogin(resp)
	if err != nil {
		return err
	}
	return m.establish(token, user)
}

// SendPasswordResetOTP asks the backend to mail a one-time code. Session
// state is untouched.
func (m *Manager) SendPasswordResetOTP(ctx context.Context, email string) error {
	return respErr(m.client.ForgotPassword(ctx, email))
}

// VerifyOTPAndResetPassword consumes the OTP and sets the new password. It
// does not log the user in; a separate Login is required afterward.
func (m *Manager) VerifyOTPAndResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return respErr(m.client.ResetPassword(ctx, api.ResetPasswordRequest{
		Email:       email,
		OTP:         otp,
		NewPassword: newPassword,
	}))
}

// UpdateProfile edits the owner-mutable profile fields and refreshes the
// cached user.
func (m *Manager) UpdateProfile(ctx context.Context, name, phone string) (types.User, error) {
	m.mu.Lock()
	authed := m.state == Authenticated
	m.mu.Unlock()
	if !authed {
		return types.User{}, ErrNotAuthenticated
	}
	user, err := data.DecodeUser(m.client.UpdateProfile(ctx, api.ProfileUpdateRequest{
		Name:  name,
		Phone: phone,
	}))
	if err != nil {
		return types.User{}, err
	}
	m.setState(Authenticated, &user)
	return user, nil
}

// Logout clears the in-memory user and discards the persisted token. There
// is no server-side revocation call.
func (m *Manager) Logout() error {
	m.setState(Unauthenticated, nil)
	return m.store.Clear()
}

// State reports the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the authenticated user, if any.
func (m *Manager) CurrentUser() (types.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return types.User{}, false
	}
	return *m.user, true
}

func (m *Manager) establish(token string, user types.User) error {
	if err := m.store.Save(token); err != nil {
		return err
	}
	m.setState(Authenticated, &user)
	return nil
}

func (m *Manager) setState(state State, user *types.User) {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.mu.Unlock()
}

func respErr(resp api.Response) error {
	if resp.Success {
		return nil
	}
	if resp.Error != "" {
		return errors.New(resp.Error)
	}
	return errors.New("request failed")
}
