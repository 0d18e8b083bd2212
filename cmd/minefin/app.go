package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"mining-finance-dashboard/internal/api"
	"mining-finance-dashboard/internal/data"
	"mining-finance-dashboard/internal/session"
	"mining-finance-dashboard/internal/types"
)

// app bundles the client stack every command needs.
type app struct {
	session *session.Manager
	data    *data.Service
}

func newApp() (*app, error) {
	store, err := session.DefaultTokenStore()
	if err != nil {
		return nil, fmt.Errorf("locate token store: %w", err)
	}
	client := api.NewClient(viper.GetString("server"), store)
	return &app{
		session: session.NewManager(client, store),
		data:    data.NewService(client),
	}, nil
}

// requireAuth rehydrates the session from the persisted token and fails with
// a pointer to `minefin login` when there is none or it was rejected.
func (a *app) requireAuth(ctx context.Context) (types.User, error) {
	if err := a.session.Bootstrap(ctx); err != nil {
		return types.User{}, fmt.Errorf("session expired or invalid (%v); run `minefin login`", err)
	}
	user, ok := a.session.CurrentUser()
	if !ok {
		return types.User{}, fmt.Errorf("not logged in; run `minefin login`")
	}
	return user, nil
}
