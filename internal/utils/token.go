package utils // package utils provides helper functions for token creation and hashing

import (
    "crypto/rand" // secure random number generation
    "encoding/hex"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// BearerToken represents a signed HS256 JWT along with its identifier and
// expiry.  Token carries the serialized JWT handed to the client.  JTI is
// the random token id embedded in the claims; logout revokes a session by
// denylisting this id until Exp passes.
type BearerToken struct {
    Token string    // the serialized JWT string
    JTI   string    // unique token id used for revocation
    Exp   time.Time // the UTC expiration time
}

// NewBearerToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the user's role, and a TTL in hours.  The
// JWT includes the claims sub, role, jti, exp and iat.
func NewBearerToken(secret string, userID uint64, role string, ttlHours int) (BearerToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
    jti, err := randomHex(16)
    if err != nil {
        return BearerToken{}, err
    }
    claims := jwt.MapClaims{
        "sub":  userID,
        "role": role,
        "jti":  jti,
        "exp":  exp.Unix(),
        "iat":  time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return BearerToken{}, err
    }
    return BearerToken{Token: signed, JTI: jti, Exp: exp}, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
