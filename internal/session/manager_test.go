package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mining-finance-dashboard/internal/api"
)

func tempStore(t *testing.T) *TokenStore {
	t.Helper()
	return NewTokenStore(filepath.Join(t.TempDir(), "token"))
}

func newManager(t *testing.T, handler http.Handler) (*Manager, *TokenStore) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	store := tempStore(t)
	return NewManager(api.NewClient(ts.URL, store), store), store
}

const profileOK = `{"success":true,"data":{"id":9,"email":"owner@mine.cd","name":"Amani","role":"admin"}}`

func TestBootstrapWithoutToken(t *testing.T) {
	called := false
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	require.NoError(t, m.Bootstrap(context.Background()))
	assert.Equal(t, Unauthenticated, m.State())
	assert.False(t, called, "no token means no network call")
}

func TestBootstrapVerifiesPersistedToken(t *testing.T) {
	var gotAuth string
	m, store := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(profileOK))
	}))
	require.NoError(t, store.Save("tok123"))

	require.NoError(t, m.Bootstrap(context.Background()))

	assert.Equal(t, Authenticated, m.State())
	assert.Equal(t, "Bearer tok123", gotAuth)
	user, ok := m.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "owner@mine.cd", user.Email)
}

func TestBootstrapDiscardsRejectedToken(t *testing.T) {
	m, store := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"invalid token"}`))
	}))
	require.NoError(t, store.Save("expired"))

	err := m.Bootstrap(context.Background())

	require.Error(t, err)
	assert.Equal(t, Unauthenticated, m.State())
	assert.Empty(t, store.Token(), "rejected token must be cleared")
	_, ok := m.CurrentUser()
	assert.False(t, ok)
}

func TestLoginPersistsTokenAndAuthenticates(t *testing.T) {
	m, store := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"token":"tok123","user":{"id":9,"email":"owner@mine.cd","name":"Amani","role":"admin"}}}`))
	}))

	require.NoError(t, m.Login(context.Background(), "owner@mine.cd", "secret1"))

	assert.Equal(t, Authenticated, m.State())
	assert.Equal(t, "tok123", store.Token())
	user, ok := m.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "9", user.ID)
}

func TestLoginSurfacesBackendMessage(t *testing.T) {
	m, store := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"invalid email or password"}`))
	}))

	err := m.Login(context.Background(), "owner@mine.cd", "wrong")

	require.EqualError(t, err, "invalid email or password")
	assert.Equal(t, Unauthenticated, m.State())
	assert.Empty(t, store.Token())
}

func TestLoginRejectsEnvelopeWithoutToken(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"user":{"id":9,"email":"owner@mine.cd"}}}`))
	}))

	err := m.Login(context.Background(), "owner@mine.cd", "secret1")

	require.Error(t, err)
	assert.Equal(t, Unauthenticated, m.State())
}

func TestSignupEstablishesSession(t *testing.T) {
	m, store := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/signup", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"token":"fresh","user":{"id":12,"email":"new@mine.cd","name":"Neema"}}}`))
	}))

	require.NoError(t, m.Signup(context.Background(), "new@mine.cd", "secret1", "Neema", "", ""))

	assert.Equal(t, Authenticated, m.State())
	assert.Equal(t, "fresh", store.Token())
}

func TestLogoutClearsStateAndToken(t *testing.T) {
	m, store := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(profileOK))
	}))
	require.NoError(t, store.Save("tok123"))
	require.NoError(t, m.Bootstrap(context.Background()))
	require.Equal(t, Authenticated, m.State())

	require.NoError(t, m.Logout())

	assert.Equal(t, Unauthenticated, m.State())
	assert.Empty(t, store.Token())
	_, ok := m.CurrentUser()
	assert.False(t, ok)
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	}))

	_, err := m.UpdateProfile(context.Background(), "Amani", "+243 555 0101")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestUpdateProfileRefreshesCachedUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/profile", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(profileOK))
		case http.MethodPut:
			w.Write([]byte(`{"success":true,"data":{"id":9,"email":"owner@mine.cd","name":"Amani M.","phone":"+243 555 0101","role":"admin"}}`))
		default:
			http.NotFound(w, r)
		}
	})
	m, store := newManager(t, mux)
	require.NoError(t, store.Save("tok123"))
	require.NoError(t, m.Bootstrap(context.Background()))

	updated, err := m.UpdateProfile(context.Background(), "Amani M.", "+243 555 0101")
	require.NoError(t, err)
	assert.Equal(t, "Amani M.", updated.Name)

	cached, ok := m.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Amani M.", cached.Name)
}

func TestPasswordResetFlowSurfacesErrors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"reset code sent"}`))
	})
	mux.HandleFunc("/auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"invalid or expired reset code"}`))
	})
	m, _ := newManager(t, mux)

	require.NoError(t, m.SendPasswordResetOTP(context.Background(), "owner@mine.cd"))
	err := m.VerifyOTPAndResetPassword(context.Background(), "owner@mine.cd", "000000", "newpass1")
	require.EqualError(t, err, "invalid or expired reset code")
	assert.Equal(t, Unauthenticated, m.State())
}

func TestTokenStoreLifecycle(t *testing.T) {
	store := tempStore(t)

	assert.Empty(t, store.Token())
	require.NoError(t, store.Save("tok123"))
	assert.Equal(t, "tok123", store.Token())
	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
	require.NoError(t, store.Clear(), "clearing an empty store is fine")
}
