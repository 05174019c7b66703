package auth

import (
	jwttoken "authgw/internal/jwt_token"
	"authgw/internal/verifier"
)

// Credentials is the login input pair.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult bundles the issued token with the profile returned by the
// backend. Serialized as-is on the success envelope.
type LoginResult struct {
	Token   jwttoken.Token  `json:"token"`
	Profile verifier.Result `json:"profile"`
}
