// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into outgoing mail.
package queue

// UserRegisteredEvent is published when a new account is created.  It
// carries everything the mail worker needs to deliver the verification
// code without querying the primary database.
type UserRegisteredEvent struct {
    UserID       uint64 `json:"user_id"`
    Name         string `json:"name"`
    Email        string `json:"email"`
    OTPCode      string `json:"otp_code"`
    RegisteredAt string `json:"registered_at"`
}
