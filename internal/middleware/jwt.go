package middleware // middleware provides shared request processing for handlers

import (
    "context"
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// TokenRevocations is the denylist consulted for every authenticated
// request.  auth.RevokedStore satisfies it; tests plug in fakes.
type TokenRevocations interface {
    IsRevoked(ctx context.Context, jti string) bool
}

// JWTAuth returns an Echo middleware that validates a Bearer token and
// injects the token's claims into the request context.  The provided
// secret must match the one used when issuing tokens.  Handlers behind
// this middleware read the caller via c.Get("user_id") and c.Get("role");
// logout additionally reads c.Get("jti") and c.Get("token_exp").  Tokens
// whose jti sits on the revocation denylist are rejected even when their
// signature is still valid.
func JWTAuth(secret string, revoked TokenRevocations) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse with HS256 and our secret; reject other algorithms.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "invalid token"})
            }
            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "invalid claims"})
            }

            jti, _ := claims["jti"].(string)
            if revoked != nil && revoked.IsRevoked(c.Request().Context(), jti) {
                return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "token revoked"})
            }

            // Store the claims handlers need.  Type assertions are left to
            // downstream consumers.
            c.Set("user_id", claims["sub"])
            c.Set("role", claims["role"])
            c.Set("jti", jti)
            c.Set("token_exp", claims["exp"])
            return next(c)
        }
    }
}
