package service

import (
	"strings"

	"github.com/qualiextra/accounts-api/internal/core/domain"
)

// tempEmailDomains is the deny-list of known throwaway email providers.
// Static configuration data; extend as new providers show up.
var tempEmailDomains = map[string]struct{}{
	"mailinator.com":        {},
	"temp-mail.org":         {},
	"10minutemail.com":      {},
	"guerrillamail.com":     {},
	"yopmail.com":           {},
	"maildrop.cc":           {},
	"tempmail.ninja":        {},
	"throwaway.email":       {},
	"getnada.com":           {},
	"mailsac.com":           {},
	"sharklasers.com":       {},
	"grr.la":                {},
	"guerrillamailblock.com": {},
	"pokemail.net":          {},
	"spam4.me":              {},
	"binkmail.com":          {},
	"mailnesia.com":         {},
	"trashmail.com":         {},
	"mohmal.com":            {},
	"emailondeck.com":       {},
}

// ValidateEmail rejects addresses whose domain is a known throwaway provider.
// An address without an @ has no domain to match and passes through; shape
// validation is the transport layer's concern.
func ValidateEmail(email string) error {
	if isTemporaryEmail(email) {
		return domain.ErrDisposableEmail
	}
	return nil
}

func isTemporaryEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	_, ok := tempEmailDomains[strings.ToLower(email[at+1:])]
	return ok
}
