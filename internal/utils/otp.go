package utils

import (
    "crypto/rand"
    "math/big"
    "strconv"
)

// NewOTPCode returns a six-digit verification code drawn uniformly from
// [100000, 999999].  The code is returned as a string because it is
// compared and stored as text, leading zeros never occur in this range.
func NewOTPCode() (string, error) {
    n, err := rand.Int(rand.Reader, big.NewInt(900000))
    if err != nil {
        return "", err
    }
    return strconv.FormatInt(100000+n.Int64(), 10), nil
}
