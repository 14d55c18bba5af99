package auth

import "errors"

var (
	ErrAuth           = errors.New("auth failed")
	ErrNoAccessToken  = errors.New("no access token")
	ErrProfileMissing = errors.New("no profile id")
)
