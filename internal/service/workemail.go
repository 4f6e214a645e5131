package service

import (
	"fmt"
	"strings"

	"github.com/msomdec/lamenar/internal/domain"
)

// personalEmailDomains is the single denylist of consumer mail providers.
// Request validation and AuthService.Register both consult it.
var personalEmailDomains = []string{ //nolint: gochecknoglobals
	"gmail.com", "hotmail.com", "yahoo.com", "yahoo.co.uk", "yahoo.co.in",
	"outlook.com", "live.com", "msn.com", "aol.com", "icloud.com",
	"mail.com", "protonmail.com", "zoho.com", "yandex.com", "gmx.com",
}

var personalEmailDomainSet = func() map[string]struct{} { //nolint: gochecknoglobals
	set := make(map[string]struct{}, len(personalEmailDomains))
	for _, d := range personalEmailDomains {
		set[d] = struct{}{}
	}
	return set
}()

// IsPersonalEmailDomain reports whether domain belongs to a consumer mail provider.
func IsPersonalEmailDomain(domain string) bool {
	_, ok := personalEmailDomainSet[strings.ToLower(strings.TrimSpace(domain))]
	return ok
}

// CheckWorkEmail returns the lower-cased email, or an error wrapping
// domain.ErrPersonalEmail when it belongs to a consumer mail provider.
func CheckWorkEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var emailDomain string
	if at := strings.LastIndexByte(email, '@'); at >= 0 {
		emailDomain = email[at+1:]
	}

	if IsPersonalEmailDomain(emailDomain) {
		return "", fmt.Errorf("%w. Please use your work email address. Rejected domains include: %s and others",
			domain.ErrPersonalEmail, strings.Join(personalEmailDomains[:5], ", "))
	}

	return email, nil
}
