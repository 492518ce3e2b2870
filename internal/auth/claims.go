package auth

import (
	"fmt"
	"strconv"
)

// Claim names attached to every session. The set is extensible; existing
// names are stable.
const (
	ClaimLogin  = "login"
	ClaimID     = "id"
	ClaimAvatar = "avatar"
)

// ClaimSet maps claim names to string values.
type ClaimSet map[string]string

// MapClaims projects the GitHub user payload into the session claim set.
// Pure function; unmapped provider fields are ignored.
func MapClaims(user *UserInfo) (ClaimSet, error) {
	if user.Login == "" {
		return nil, fmt.Errorf("%w: login", ErrMissingClaim)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: id", ErrMissingClaim)
	}

	return ClaimSet{
		ClaimLogin:  user.Login,
		ClaimID:     strconv.FormatInt(user.ID, 10),
		ClaimAvatar: user.AvatarURL,
	}, nil
}
