package data

import (
	"mining-finance-dashboard/internal/api"
	"mining-finance-dashboard/internal/types"
)

type wireLoginResponse struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

// DecodeUser decodes a profile envelope into a domain user.
func DecodeUser(resp api.Response) (types.User, error) {
	return decodeOne(resp, transformUser)
}

// DecodeLogin decodes a login/signup envelope into the issued token and the
// authenticated user.
func DecodeLogin(resp api.Response) (string, types.User, error) {
	result, err := decodeOne(resp, func(w wireLoginResponse) (wireLoginResponse, error) {
		return w, nil
	})
	if err != nil {
		return "", types.User{}, err
	}
	if result.Token == "" {
		return "", types.User{}, missingField("login response", "token")
	}
	user, err := transformUser(result.User)
	if err != nil {
		return "", types.User{}, err
	}
	return result.Token, user, nil
}
