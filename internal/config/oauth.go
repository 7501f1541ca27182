package config

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func OAuthConfig(g GoogleConfig) *oauth2.Config {
	scopes := []string{"openid", "email", "profile"}
	return &oauth2.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		RedirectURL:  g.RedirectURL,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}
}
