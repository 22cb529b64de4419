package auth

import apperrors "confusion/internal/errors"

// RequireAuthenticated lets any verified identity through.
func RequireAuthenticated(id *Identity) error {
	if id == nil {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

// RequireAdmin lets only identities carrying the admin flag through.
func RequireAdmin(id *Identity) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if !id.Admin {
		return apperrors.ErrNotAdmin
	}
	return nil
}
