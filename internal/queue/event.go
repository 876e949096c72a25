// Package queue defines message payloads exchanged over the message
// broker plus the publisher and consumer for password-reset mail.
package queue

// PasswordResetRequestedEvent is published when a user asks for a
// password-reset email.  It carries everything the mail consumer needs
// to deliver the message without querying the primary database.
type PasswordResetRequestedEvent struct {
	Recipient   string `json:"recipient"`    // destination email address (the username)
	ResetToken  string `json:"reset_token"`  // short-lived signed reset token
	RequestedAt string `json:"requested_at"` // RFC3339 UTC timestamp of the request
}
