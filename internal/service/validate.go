package service

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9]{10,14}$`)
	amkaRe  = regexp.MustCompile(`^\d{11}$`)
)

func validAMKA(amka string) bool {
	return amkaRe.MatchString(amka)
}

func validPhone(phone string) bool {
	return phoneRe.MatchString(phone)
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// requireField appends a message when a required string is blank or exceeds
// the column limit, returning the accumulated list.
func requireField(errs []string, value, name string, maxLen int) []string {
	if strings.TrimSpace(value) == "" {
		return append(errs, name+" is required")
	}
	if maxLen > 0 && len(value) > maxLen {
		return append(errs, name+" is too long")
	}
	return errs
}
