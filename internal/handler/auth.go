package handler

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/sport-venue-booking/internal/config"
    "github.com/iliyamo/sport-venue-booking/internal/model"
    "github.com/iliyamo/sport-venue-booking/internal/queue"
    "github.com/iliyamo/sport-venue-booking/internal/repository"
    "github.com/iliyamo/sport-venue-booking/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.  PublishRegistered
// hands the OTP mail job to the broker; it may be nil in tests and its
// failure never fails the registration itself.
type AuthHandler struct {
    Cfg               config.Config
    Users             UserStore
    Revoked           TokenRevoker
    PublishRegistered func(ctx context.Context, ev queue.UserRegisteredEvent) error
}

func NewAuthHandler(cfg config.Config, users UserStore, revoked TokenRevoker,
    publish func(ctx context.Context, ev queue.UserRegisteredEvent) error) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: users, Revoked: revoked, PublishRegistered: publish}
}

// ----- DTOs -----

type registerReq struct {
    Name     string `json:"name" form:"name"`
    Email    string `json:"email" form:"email"`
    Password string `json:"password" form:"password"`
    Role     string `json:"role" form:"role"`
}
type loginReq struct {
    Email    string `json:"email" form:"email"`
    Password string `json:"password" form:"password"`
}
type otpReq struct {
    Email   string `json:"email" form:"email"`
    OTPCode string `json:"otp_code" form:"otp_code"`
}

type tokenPart struct {
    Type      string    `json:"type"`
    Token     string    `json:"token"`
    ExpiresAt time.Time `json:"expires_at"`
}

// Register creates an unverified user with a fresh OTP code and queues the
// verification mail.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return respondErr(c, http.StatusBadRequest, "invalid request body")
    }
    req.Name = strings.TrimSpace(req.Name)
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    role := strings.ToLower(strings.TrimSpace(req.Role))
    if role == "" {
        role = model.RoleUser
    }

    fieldErrs := map[string]string{}
    if req.Name == "" {
        fieldErrs["name"] = "name must not be empty"
    }
    if req.Email == "" {
        fieldErrs["email"] = "email must not be empty"
    } else if !strings.Contains(req.Email, "@") {
        fieldErrs["email"] = "email must be a valid email address"
    }
    if req.Password == "" {
        fieldErrs["password"] = "password must not be empty"
    } else if len(req.Password) < 6 {
        fieldErrs["password"] = "password must be at least 6 characters"
    }
    if role != model.RoleUser && role != model.RoleOwner {
        fieldErrs["role"] = "role must be either user or owner"
    }
    if len(fieldErrs) > 0 {
        return respondErr(c, http.StatusBadRequest, fieldErrs)
    }

    otpCode, err := utils.NewOTPCode()
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, "could not generate OTP code")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, role, otpCode, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return respondErr(c, http.StatusBadRequest, map[string]string{"email": "email already taken"})
        }
        return respondErr(c, http.StatusInternalServerError, "could not create user")
    }

    // Mail delivery is outside the registration transaction.  A broker
    // outage is logged and the account still lands; the user can be
    // re-mailed out of band.
    if h.PublishRegistered != nil {
        ev := queue.UserRegisteredEvent{
            UserID:       uid,
            Name:         req.Name,
            Email:        req.Email,
            OTPCode:      otpCode,
            RegisteredAt: time.Now().UTC().Format(time.RFC3339),
        }
        if err := h.PublishRegistered(ctx, ev); err != nil {
            log.Printf("register: publish user.registered failed: %v", err)
        }
    }

    return respondOK(c, http.StatusCreated, "please verify with the OTP code sent to your email")
}

// ConfirmOTP compares the submitted code against the stored one and marks
// the account verified on the first match.  A mismatch changes nothing.
func (h *AuthHandler) ConfirmOTP(c echo.Context) error {
    var req otpReq
    if err := c.Bind(&req); err != nil {
        return respondErr(c, http.StatusBadRequest, "invalid request body")
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    req.OTPCode = strings.TrimSpace(req.OTPCode)
    if req.Email == "" || req.OTPCode == "" {
        return respondErr(c, http.StatusBadRequest, "email and otp_code are required")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respondErr(c, http.StatusBadRequest, "user with email "+req.Email+" not found")
        }
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }
    if u.OTPCode != req.OTPCode {
        return respondErr(c, http.StatusBadRequest, "OTP code does not match")
    }
    if err := h.Users.MarkVerified(ctx, u.ID); err != nil {
        return respondErr(c, http.StatusInternalServerError, "could not verify user")
    }
    return respondOK(c, http.StatusOK, "OTP code verified successfully")
}

// Login checks credentials and issues a 24-hour bearer token.  Unknown
// email and wrong password answer with the same message on purpose; only
// an unverified account is told apart.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return respondErr(c, http.StatusBadRequest, "invalid request body")
    }
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    if req.Email == "" || req.Password == "" {
        return respondErr(c, http.StatusBadRequest, "email and password are required")
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return respondErr(c, http.StatusBadRequest, "wrong email or password")
        }
        return respondErr(c, http.StatusInternalServerError, "query failed")
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return respondErr(c, http.StatusBadRequest, "wrong email or password")
    }
    if !u.IsVerified {
        return respondErr(c, http.StatusBadRequest, "email is not verified yet")
    }

    tok, err := utils.NewBearerToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.TokenTTLHours)
    if err != nil {
        return respondErr(c, http.StatusInternalServerError, "could not issue token")
    }
    return c.JSON(http.StatusOK, envelope{
        Status:  "success",
        Message: "login success",
        Token:   tokenPart{Type: "bearer", Token: tok.Token, ExpiresAt: tok.Exp},
    })
}

// Logout revokes the presented bearer token server-side.  The token id and
// expiry were stashed in context by the JWT middleware.
func (h *AuthHandler) Logout(c echo.Context) error {
    jti, _ := c.Get("jti").(string)
    if jti == "" {
        return respondErr(c, http.StatusBadRequest, "logout failed")
    }
    exp := time.Now().UTC()
    if v, ok := c.Get("token_exp").(float64); ok {
        exp = time.Unix(int64(v), 0).UTC()
    }

    ctx, cancel := reqContext(c)
    defer cancel()

    if h.Revoked == nil {
        return respondErr(c, http.StatusBadRequest, "logout failed")
    }
    if err := h.Revoked.Revoke(ctx, jti, exp); err != nil {
        return respondErr(c, http.StatusBadRequest, "logout failed")
    }
    return respondOK(c, http.StatusOK, "logout success")
}
