package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Accounts are created unverified together with a six-digit OTP
// code; IsVerified flips to true exactly once when the code is confirmed.
// The json tags are omitted here because these structs are primarily used
// by the repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – either "user" or "owner".
//  OTPCode      – six-digit verification code mailed at registration.
//  IsVerified   – whether the email has been confirmed.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    PasswordHash string    // users.password
    Role         string    // users.role
    OTPCode      string    // users.otp_code
    IsVerified   bool      // users.is_verified
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// Roles accepted by the API.  The role is stored as a plain string column
// and checked by the authorization middleware.
const (
    RoleUser  = "user"
    RoleOwner = "owner"
)
