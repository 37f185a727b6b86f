// Package contact renders a free-form contact string as clickable markup.
package contact

import (
	"html"
	"html/template"
	"regexp"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^1[3-9]\d{9}$`)
	reQQ    = regexp.MustCompile(`^\d{5,11}$`)
)

// Format classifies a contact string (email, mobile number, QQ id or a plain
// messenger handle) and returns the matching link markup. Pure function, no
// state.
func Format(contact string) template.HTML {
	contact = strings.TrimSpace(contact)
	esc := html.EscapeString(contact)

	switch {
	case reEmail.MatchString(contact):
		return template.HTML(`<a href="mailto:` + esc + `" class="contact-link email">` + esc + `</a>`)
	case rePhone.MatchString(contact):
		return template.HTML(`<a href="tel:` + esc + `" class="contact-link phone">` + esc + `</a>`)
	case reQQ.MatchString(contact):
		return template.HTML(`<a href="tencent://message/?uin=` + esc + `&Site=&Menu=yes" class="contact-link qq">QQ: ` + esc + `</a>`)
	default:
		return template.HTML(`<span class="contact-text">` + esc + `</span>`)
	}
}
