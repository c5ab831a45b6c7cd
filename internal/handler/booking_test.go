package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sport-venue-booking/internal/model"
)

type bookingFixture struct {
	users    *fakeUserStore
	venues   *fakeVenueStore
	fields   *fakeFieldStore
	bookings *fakeBookingStore
	handler  *BookingHandler
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	users := newFakeUserStore()
	fix := &bookingFixture{
		users:    users,
		venues:   newFakeVenueStore(),
		fields:   newFakeFieldStore(),
		bookings: newFakeBookingStore(users),
	}
	fix.handler = NewBookingHandler(fix.fields, fix.bookings)
	return fix
}

// addUser seeds a verified account directly in the store.
func (f *bookingFixture) addUser(t *testing.T, name, email, role string) uint64 {
	t.Helper()
	id, err := f.users.Create(context.Background(), name, email, "secret1", role, "123456", 4)
	require.NoError(t, err)
	require.NoError(t, f.users.MarkVerified(context.Background(), id))
	return id
}

func (f *bookingFixture) addVenue(t *testing.T, ownerID uint64) uint64 {
	t.Helper()
	v := &model.Venue{Name: "Arena", Phone: "0812", Address: "Main St", OwnerID: ownerID}
	require.NoError(t, f.venues.Create(context.Background(), v))
	return v.ID
}

func (f *bookingFixture) addField(t *testing.T, venueID uint64, fieldType string) uint64 {
	t.Helper()
	fl := &model.Field{Name: "Court 1", Type: fieldType, VenueID: venueID}
	require.NoError(t, f.fields.Create(context.Background(), fl))
	return fl.ID
}

func bookingForm(fieldID string) url.Values {
	return url.Values{
		"play_date_start": {"2024-01-01 10:00:00"},
		"play_date_end":   {"2024-01-01 11:00:00"},
		"fields_id":       {fieldID},
	}
}

func TestBookingStoreCreatorJoinsAutomatically(t *testing.T) {
	e := echo.New()
	fix := newBookingFixture(t)
	owner := fix.addUser(t, "Owner", "owner@example.com", "owner")
	venue := fix.addVenue(t, owner)
	fix.addField(t, venue, "soccer")

	c, rec := formRequest(e, http.MethodPost, "/api/v1/venues/1/bookings", bookingForm("1"))
	asCaller(c, owner, "owner")
	c.SetParamNames("venue_id")
	c.SetParamValues("1")
	require.NoError(t, fix.handler.Store(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	players, err := fix.bookings.Participants(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, owner, players[0].ID)
}

func TestBookingStoreRejectsFieldOutsideVenue(t *testing.T) {
	e := echo.New()
	fix := newBookingFixture(t)
	owner := fix.addUser(t, "Owner", "owner@example.com", "owner")
	fix.addVenue(t, owner)
	venueB := fix.addVenue(t, owner)
	fix.addField(t, venueB, "futsal")

	// The field lives under venue 2 but the path names venue 1.
	c, rec := formRequest(e, http.MethodPost, "/api/v1/venues/1/bookings",
		bookingForm("1"))
	asCaller(c, owner, "owner")
	c.SetParamNames("venue_id")
	c.SetParamValues("1")
	require.NoError(t, fix.handler.Store(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "field does not belong to the venue or does not exist",
		decodeEnvelope(rec)["message"])
	assert.Empty(t, fix.bookings.bookings)
}

func TestBookingStoreValidatesPlayDates(t *testing.T) {
	e := echo.New()
	fix := newBookingFixture(t)
	owner := fix.addUser(t, "Owner", "owner@example.com", "owner")
	venue := fix.addVenue(t, owner)
	fix.addField(t, venue, "soccer")

	form := url.Values{
		"play_date_start": {"01/01/2024 10:00"},
		"play_date_end":   {"2024-01-01 11:00:00"},
		"fields_id":       {"1"},
	}
	c, rec := formRequest(e, http.MethodPost, "/api/v1/venues/1/bookings", form)
	asCaller(c, owner, "owner")
	c.SetParamNames("venue_id")
	c.SetParamValues("1")
	require.NoError(t, fix.handler.Store(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	msg, ok := decodeEnvelope(rec)["message"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, msg, "play_date_start")
}

func TestJoinIsIdempotent(t *testing.T) {
	e := echo.New()
	fix := newBookingFixture(t)
	owner := fix.addUser(t, "Owner", "owner@example.com", "owner")
	player := fix.addUser(t, "Player", "player@example.com", "user")
	venue := fix.addVenue(t, owner)
	fix.addField(t, venue, "basketball")
	b := &model.Booking{
		PlayDateStart: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		PlayDateEnd:   time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
		FieldID:       1, CreatedBy: owner,
	}
	require.NoError(t, fix.bookings.Create(context.Background(), b))

	for i := 0; i < 2; i++ {
		c, rec := formRequest(e, http.MethodPut, "/api/v1/bookings/1/join", nil)
		asCaller(c, player, "user")
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, fix.handler.Join(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	players, err := fix.bookings.Participants(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Len(t, players, 2, "creator plus one joiner, no duplicate rows")
}

func TestJoinUnknownBooking(t *testing.T) {
	e := echo.New()
	fix := newBookingFixture(t)
	player := fix.addUser(t, "Player", "player@example.com", "user")

	c, rec := formRequest(e, http.MethodPut, "/api/v1/bookings/99/join", nil)
	asCaller(c, player, "user")
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, fix.handler.Join(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "data with id 99 not found", decodeEnvelope(rec)["message"])
}

func TestUnjoinWithoutParticipation(t *testing.T) {
	e := echo.New()
	fix := newBookingFixture(t)
	owner := fix.addUser(t, "Owner", "owner@example.com", "owner")
	player := fix.addUser(t, "Player", "player@example.com", "user")
	b := &model.Booking{FieldID: 1, CreatedBy: owner}
	require.NoError(t, fix.bookings.Create(context.Background(), b))

	c, rec := formRequest(e, http.MethodPut, "/api/v1/bookings/1/unjoin", nil)
	asCaller(c, player, "user")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, fix.handler.Unjoin(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "you have not joined this booking", decodeEnvelope(rec)["message"])

	// The creator's row must survive a stranger's unjoin attempt.
	players, err := fix.bookings.Participants(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Len(t, players, 1)
}

func TestShowIncludesRoster(t *testing.T) {
	e := echo.New()
	fix := newBookingFixture(t)
	owner := fix.addUser(t, "Owner", "owner@example.com", "owner")
	b := &model.Booking{FieldID: 1, CreatedBy: owner}
	require.NoError(t, fix.bookings.Create(context.Background(), b))

	c, rec := formRequest(e, http.MethodGet, "/api/v1/bookings/1", nil)
	asCaller(c, owner, "owner")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, fix.handler.Show(c))
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := decodeEnvelope(rec)["data"].(map[string]interface{})
	require.True(t, ok)
	players, ok := data["players"].([]interface{})
	require.True(t, ok)
	require.Len(t, players, 1)
	first := players[0].(map[string]interface{})
	assert.Equal(t, "owner@example.com", first["email"])
}

func TestScheduleLifecycle(t *testing.T) {
	e := echo.New()
	fix := newBookingFixture(t)
	owner := fix.addUser(t, "Owner", "owner@example.com", "owner")
	player := fix.addUser(t, "Player", "player@example.com", "user")
	venue := fix.addVenue(t, owner)
	fix.addField(t, venue, "volleyball")

	c, rec := formRequest(e, http.MethodPost, "/api/v1/venues/1/bookings", bookingForm("1"))
	asCaller(c, owner, "owner")
	c.SetParamNames("venue_id")
	c.SetParamValues("1")
	require.NoError(t, fix.handler.Store(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	schedules := func() []interface{} {
		c, rec := formRequest(e, http.MethodGet, "/api/v1/schedules", nil)
		asCaller(c, player, "user")
		require.NoError(t, fix.handler.Schedules(c))
		require.Equal(t, http.StatusOK, rec.Code)
		out, _ := decodeEnvelope(rec)["data"].([]interface{})
		return out
	}

	assert.Empty(t, schedules())

	c, rec = formRequest(e, http.MethodPut, "/api/v1/bookings/1/join", nil)
	asCaller(c, player, "user")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, fix.handler.Join(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, schedules(), 1)

	c, rec = formRequest(e, http.MethodPut, "/api/v1/bookings/1/unjoin", nil)
	asCaller(c, player, "user")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, fix.handler.Unjoin(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, schedules())
}
