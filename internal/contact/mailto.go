package contact

import (
	"net/url"
	"strings"
)

// SubjectPrefix starts the subject line of every fallback draft.
const SubjectPrefix = "Portfolio contact from "

// BuildMailto returns a mailto URI addressed to owner with the subject and
// body pre-filled from f.
func BuildMailto(owner string, f Form) string {
	subject := SubjectPrefix + f.Name
	body := f.Message + "\n\nContact Email: " + f.Email

	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(owner)
	b.WriteString("?subject=")
	b.WriteString(encodeComponent(subject))
	b.WriteString("&body=")
	b.WriteString(encodeComponent(body))
	return b.String()
}

// encodeComponent percent-encodes everything outside the unreserved set.
// Mail clients read '+' literally, so spaces become %20. The sub-delims
// !'()* are escaped too; decoders treat both forms the same.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
