// Package contact implements the portfolio contact form: the field state, the
// submission flow that posts the form to the site's backend, and the mail
// client fallback used when the backend rejects the message or cannot be
// reached.
//
// A submission moves the status to sending, validates that email and message
// are present, and makes exactly one request. A 2xx answer ends in
// StatusSent. Anything else opens a pre-filled mailto draft and ends in
// StatusSentViaMailClient, which still requires the visitor to send the
// draft themselves.
package contact
