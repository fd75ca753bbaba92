package kratos

import (
	"net/http"
	"strings"

	"marketplace-core/app/domain"
)

// transformError maps Kratos API failures onto the domain error taxonomy
// so nothing above the driver sees provider-specific wire types.
func transformError(err error, resp *http.Response, op string) error {
	if err == nil {
		return nil
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}

	msg := strings.ToLower(err.Error())
	switch {
	case status == http.StatusBadRequest && op == "sign_up" && strings.Contains(msg, "exist"):
		return domain.NewIdentityError(domain.ErrCodeEmailInUse, "email already in use", domain.ErrEmailInUse)
	case status == http.StatusBadRequest && op == "sign_up" && (strings.Contains(msg, "password") || strings.Contains(msg, "breach")):
		return domain.NewIdentityError(domain.ErrCodeWeakPassword, "password too weak", domain.ErrWeakPassword)
	case status == http.StatusBadRequest || status == http.StatusUnauthorized:
		if op == "sign_in" || op == "whoami" {
			return domain.NewIdentityError(domain.ErrCodeInvalidCredentials, "invalid credentials", domain.ErrInvalidCredentials)
		}
	case status == http.StatusForbidden:
		return domain.NewIdentityError(domain.ErrCodeAccountDisabled, "account disabled", domain.ErrAccountDisabled)
	}

	return domain.NewIdentityError(domain.ErrCodeProviderUnavailable, "identity provider error", err)
}
