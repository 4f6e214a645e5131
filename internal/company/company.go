// Package company infers a company identity from a work email address.
//
// The inference is purely rule based: the email domain becomes the matching
// key, and a display name is derived by stripping the TLD, collapsing
// subdomains and splitting the remaining label into words. Every function in
// this package is pure and safe for concurrent use.
package company

import (
	"errors"
	"strings"
)

// ErrInvalidEmail is returned when an email address has no "@".
var ErrInvalidEmail = errors.New("invalid email address")

// Info is the company attribution derived from an email address.
type Info struct {
	// Domain is the lower-cased part of the email after the last "@".
	Domain string
	// NormalizedKey is the key used to group users of the same company.
	// It currently equals Domain.
	NormalizedKey string
	// DisplayName is the human readable company name, e.g. "Acme Corp".
	DisplayName string
}

// ExtractDomain returns the lower-cased substring after the last "@" in email.
// Surrounding whitespace is ignored. No RFC validation is performed.
func ExtractDomain(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return "", ErrInvalidEmail
	}

	return email[at+1:], nil
}

// NormalizeDomain returns domain in the form used for matching.
func NormalizeDomain(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}

// Resolve derives the company Info for email.
func Resolve(email string) (Info, error) {
	domain, err := ExtractDomain(email)
	if err != nil {
		return Info{}, err
	}

	return Info{
		Domain:        domain,
		NormalizedKey: NormalizeDomain(domain),
		DisplayName:   FormatDisplayName(domain),
	}, nil
}
