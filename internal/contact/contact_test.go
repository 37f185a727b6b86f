package contact_test

import (
	"strings"
	"testing"

	"revive/internal/contact"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"alice@example.com", `href="mailto:alice@example.com"`},
		{"13812345678", `href="tel:13812345678"`},
		{"12345678", "tencent://message/?uin=12345678"},
		{"wechat: alice_w", `class="contact-text"`},
		{"  alice@example.com  ", "mailto:"}, // trimmed before classification
	}
	for _, tc := range cases {
		got := string(contact.Format(tc.in))
		if !strings.Contains(got, tc.want) {
			t.Fatalf("Format(%q) = %q, want it to contain %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatEscapes(t *testing.T) {
	got := string(contact.Format(`<script>alert(1)</script>`))
	if strings.Contains(got, "<script>") {
		t.Fatalf("unescaped markup leaked: %q", got)
	}
}
