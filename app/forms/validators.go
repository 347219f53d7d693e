package forms

import (
	"net/mail"
	"net/url"
	"strings"
)

func required(v string) bool { return strings.TrimSpace(v) != "" }

func validEmail(v string) bool {
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v
}

func validURL(v string) bool {
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func minLen(v string, n int) bool { return len(v) >= n }
