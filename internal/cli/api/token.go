package api

import "AuthKit/internal/cli/repo"

// SaveToken persists env.AccessToken when the response carried one.
// Envelopes without a token leave the stored value untouched.
func SaveToken(store repo.TokenStore, env *Envelope) error {
	if env == nil || env.AccessToken == "" {
		return nil
	}
	return store.Save(env.AccessToken)
}
