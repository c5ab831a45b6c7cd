package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sport-venue-booking/internal/model"
	"github.com/iliyamo/sport-venue-booking/internal/repository"
	"github.com/iliyamo/sport-venue-booking/internal/utils"
)

// In-memory stores backing the handler tests.  They mirror the repository
// contracts, including the sentinel errors and the transactional coupling
// of booking creation with the creator's participation row.

type fakeUserStore struct {
	nextID  uint64
	users   map[uint64]model.User
	byEmail map[string]uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]model.User{}, byEmail: map[string]uint64{}}
}

func (s *fakeUserStore) Create(_ context.Context, name, email, password, role, otpCode string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := s.byEmail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	u := model.User{
		ID: s.nextID, Name: name, Email: email, PasswordHash: hash,
		Role: role, OTPCode: otpCode,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return u.ID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return s.users[id], nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (s *fakeUserStore) MarkVerified(_ context.Context, id uint64) error {
	u, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsVerified = true
	s.users[id] = u
	return nil
}

type fakeVenueStore struct {
	nextID uint64
	venues map[uint64]*model.Venue
}

func newFakeVenueStore() *fakeVenueStore {
	return &fakeVenueStore{venues: map[uint64]*model.Venue{}}
}

func (s *fakeVenueStore) Create(_ context.Context, v *model.Venue) error {
	s.nextID++
	v.ID = s.nextID
	v.CreatedAt = time.Now().UTC()
	v.UpdatedAt = v.CreatedAt
	cp := *v
	s.venues[v.ID] = &cp
	return nil
}

func (s *fakeVenueStore) GetByID(_ context.Context, id uint64) (*model.Venue, error) {
	v, ok := s.venues[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *fakeVenueStore) List(_ context.Context) ([]*model.Venue, error) {
	out := make([]*model.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (s *fakeVenueStore) Update(_ context.Context, id uint64, name, phone, address string) error {
	v, ok := s.venues[id]
	if !ok {
		return repository.ErrVenueNotFound
	}
	v.Name, v.Phone, v.Address = name, phone, address
	v.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeVenueStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.venues[id]; !ok {
		return repository.ErrVenueNotFound
	}
	delete(s.venues, id)
	return nil
}

type fakeFieldStore struct {
	nextID uint64
	fields map[uint64]*model.Field
}

func newFakeFieldStore() *fakeFieldStore {
	return &fakeFieldStore{fields: map[uint64]*model.Field{}}
}

func (s *fakeFieldStore) Create(_ context.Context, f *model.Field) error {
	s.nextID++
	f.ID = s.nextID
	f.CreatedAt = time.Now().UTC()
	f.UpdatedAt = f.CreatedAt
	cp := *f
	s.fields[f.ID] = &cp
	return nil
}

func (s *fakeFieldStore) GetByIDAndVenue(_ context.Context, id, venueID uint64) (*model.Field, error) {
	f, ok := s.fields[id]
	if !ok || f.VenueID != venueID {
		return nil, repository.ErrFieldNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *fakeFieldStore) ListByVenue(_ context.Context, venueID uint64) ([]*model.Field, error) {
	out := make([]*model.Field, 0)
	for _, f := range s.fields {
		if f.VenueID == venueID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeFieldStore) Update(_ context.Context, id, venueID uint64, name, fieldType string) error {
	f, ok := s.fields[id]
	if !ok || f.VenueID != venueID {
		return repository.ErrFieldNotFound
	}
	f.Name, f.Type = name, fieldType
	f.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeFieldStore) Delete(_ context.Context, id, venueID uint64) error {
	f, ok := s.fields[id]
	if !ok || f.VenueID != venueID {
		return repository.ErrFieldNotFound
	}
	delete(s.fields, id)
	return nil
}

type participation struct {
	userID    uint64
	bookingID uint64
}

type fakeBookingStore struct {
	nextID   uint64
	bookings map[uint64]*model.Booking
	roster   map[participation]bool
	users    *fakeUserStore
}

func newFakeBookingStore(users *fakeUserStore) *fakeBookingStore {
	return &fakeBookingStore{
		bookings: map[uint64]*model.Booking{},
		roster:   map[participation]bool{},
		users:    users,
	}
}

func (s *fakeBookingStore) Create(_ context.Context, b *model.Booking) error {
	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	s.bookings[b.ID] = &cp
	// Creator participation lands with the booking, like the transaction does.
	s.roster[participation{b.CreatedBy, b.ID}] = true
	return nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) List(_ context.Context) ([]*model.Booking, error) {
	out := make([]*model.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (s *fakeBookingStore) Join(_ context.Context, userID, bookingID uint64) error {
	if _, ok := s.bookings[bookingID]; !ok {
		return repository.ErrBookingNotFound
	}
	s.roster[participation{userID, bookingID}] = true
	return nil
}

func (s *fakeBookingStore) Unjoin(_ context.Context, userID, bookingID uint64) error {
	key := participation{userID, bookingID}
	if !s.roster[key] {
		return repository.ErrNotJoined
	}
	delete(s.roster, key)
	return nil
}

func (s *fakeBookingStore) Participants(_ context.Context, bookingID uint64) ([]model.Participant, error) {
	out := make([]model.Participant, 0)
	for p := range s.roster {
		if p.bookingID != bookingID {
			continue
		}
		u := s.users.users[p.userID]
		out = append(out, model.Participant{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out, nil
}

func (s *fakeBookingStore) SchedulesByUser(_ context.Context, userID uint64) ([]*model.Booking, error) {
	out := make([]*model.Booking, 0)
	for p := range s.roster {
		if p.userID != userID {
			continue
		}
		if b, ok := s.bookings[p.bookingID]; ok {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeRevoker struct {
	revoked map[string]time.Time
	fail    bool
}

func newFakeRevoker() *fakeRevoker { return &fakeRevoker{revoked: map[string]time.Time{}} }

func (r *fakeRevoker) Revoke(_ context.Context, jti string, exp time.Time) error {
	if r.fail {
		return context.DeadlineExceeded
	}
	r.revoked[jti] = exp
	return nil
}

// ---- request plumbing ----

// formRequest builds an Echo context around a form-encoded body, the way
// the API is actually called.
func formRequest(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asCaller injects the context values the JWT middleware would set.
func asCaller(c echo.Context, userID uint64, role string) {
	c.Set("user_id", float64(userID))
	c.Set("role", role)
}

// decodeEnvelope unpacks the uniform response body.
func decodeEnvelope(rec *httptest.ResponseRecorder) map[string]interface{} {
	out := map[string]interface{}{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return out
}
