package acceptance

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semanticallynull/smartbike-backend/internal/fleet"
	"github.com/semanticallynull/smartbike-backend/ride"
	"github.com/semanticallynull/smartbike-backend/user"
)

type rentResult struct {
	Success  bool     `json:"success"`
	RideID   string   `json:"rideId"`
	Warnings []string `json:"warnings"`
}

type endResult struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	FinalAmount int64  `json:"finalAmount"`
	Duration    int64  `json:"duration"`
}

type failure struct {
	Code string `json:"code"`
}

func (ts *TestServer) rent(t *testing.T, userID, bikeID, stationID int64) rentResult {
	t.Helper()

	w := ts.POST("/api/rent-bike", map[string]any{
		"userId": userID, "bikeId": bikeID, "stationId": stationID, "duration": 2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res rentResult
	decode(t, w, &res)
	return res
}

func (ts *TestServer) stationCount(t *testing.T, id int64) int {
	t.Helper()

	var n int
	require.NoError(t, ts.DB.Get(&n, `SELECT available_bikes FROM stations WHERE id = $1`, id))
	return n
}

func TestRentAndEndRide(t *testing.T) {
	ts := NewTestServer(t)
	ts.Register(t, 1, "rider@example.com")

	// Bike 5 is seeded available at station 1, which counts 8 bikes.
	rented := ts.rent(t, 1, 5, 1)
	assert.True(t, rented.Success)
	assert.Empty(t, rented.Warnings)
	assert.Equal(t, 7, ts.stationCount(t, 1))

	var available bool
	require.NoError(t, ts.DB.Get(&available, `SELECT available FROM bikes WHERE id = 5`))
	assert.False(t, available)

	ts.Clock.Advance(45 * time.Minute)
	w := ts.POST("/api/end-ride", map[string]any{"rideId": rented.RideID, "stationId": 4})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ended endResult
	decode(t, w, &ended)
	assert.Equal(t, int64(8), ended.FinalAmount)
	assert.Equal(t, int64(45), ended.Duration)
	assert.Equal(t, "Ride completed! Duration: 45 minutes", ended.Message)

	var bike struct {
		Available bool  `db:"available"`
		StationID int64 `db:"station_id"`
	}
	require.NoError(t, ts.DB.Get(&bike, `SELECT available, station_id FROM bikes WHERE id = 5`))
	assert.True(t, bike.Available)
	assert.Equal(t, int64(4), bike.StationID)
	assert.Equal(t, 6, ts.stationCount(t, 4))

	var payments []struct {
		Amount int64     `db:"amount"`
		RideID uuid.UUID `db:"ride_id"`
	}
	require.NoError(t, ts.DB.Select(&payments, `SELECT amount, ride_id FROM payments`))
	require.Len(t, payments, 1)
	assert.Equal(t, int64(8), payments[0].Amount)
	assert.Equal(t, rented.RideID, payments[0].RideID.String())

	u, err := ts.Store.User(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, u.TotalRides)
	assert.InDelta(t, 0.75, u.TotalHours, 1e-9)
	assert.Equal(t, int64(8), u.TotalSpent)

	w = ts.GET("/api/user-stats/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalRides":1,"totalHours":0.75,"totalSpent":8,"activeRides":0}`, w.Body.String())
}

func TestEndRideTwiceBillsOnce(t *testing.T) {
	ts := NewTestServer(t)
	ts.Register(t, 1, "rider@example.com")

	rented := ts.rent(t, 1, 1, 1)
	ts.Clock.Advance(90 * time.Minute)

	w := ts.POST("/api/end-ride", map[string]any{"rideId": rented.RideID, "stationId": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ended endResult
	decode(t, w, &ended)
	assert.Equal(t, int64(15), ended.FinalAmount)

	w = ts.POST("/api/end-ride", map[string]any{"rideId": rented.RideID, "stationId": 2})
	assert.Equal(t, http.StatusConflict, w.Code)
	var f failure
	decode(t, w, &f)
	assert.Equal(t, "RIDE_ALREADY_COMPLETED", f.Code)

	var n int
	require.NoError(t, ts.DB.Get(&n, `SELECT count(*) FROM payments`))
	assert.Equal(t, 1, n)

	u, err := ts.Store.User(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, u.TotalRides)
}

func TestEndUnknownRide(t *testing.T) {
	ts := NewTestServer(t)

	w := ts.POST("/api/end-ride", map[string]any{"rideId": uuid.NewString(), "stationId": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var n int
	require.NoError(t, ts.DB.Get(&n, `SELECT count(*) FROM payments`))
	assert.Zero(t, n)
}

func TestRentUnavailableBike(t *testing.T) {
	ts := NewTestServer(t)
	ts.Register(t, 1, "rider@example.com")

	// Bike 4 is seeded unavailable.
	w := ts.POST("/api/rent-bike", map[string]any{"userId": 1, "bikeId": 4, "stationId": 1, "duration": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var f failure
	decode(t, w, &f)
	assert.Equal(t, "BIKE_UNAVAILABLE", f.Code)

	var n int
	require.NoError(t, ts.DB.Get(&n, `SELECT count(*) FROM rides`))
	assert.Zero(t, n)
	assert.Equal(t, 8, ts.stationCount(t, 1))
}

func TestConcurrentRentOneWinner(t *testing.T) {
	ts := NewTestServer(t)
	for i := int64(1); i <= 8; i++ {
		ts.Register(t, i, "rider"+uuid.NewString()+"@example.com")
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		codes []int
	)
	for i := int64(1); i <= 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := ts.POST("/api/rent-bike", map[string]any{"userId": i, "bikeId": 2, "stationId": 1, "duration": 1})
			mu.Lock()
			codes = append(codes, w.Code)
			mu.Unlock()
		}()
	}
	wg.Wait()

	ok := 0
	for _, code := range codes {
		if code == http.StatusOK {
			ok++
			continue
		}
		assert.Equal(t, http.StatusBadRequest, code)
	}
	assert.Equal(t, 1, ok)

	var n int
	require.NoError(t, ts.DB.Get(&n, `SELECT count(*) FROM rides WHERE bike_id = 2 AND status = 'Ongoing'`))
	assert.Equal(t, 1, n)
}

func TestStationCountersClamp(t *testing.T) {
	ts := NewTestServer(t)
	ts.Register(t, 1, "rider@example.com")

	_, err := ts.DB.Exec(`UPDATE stations SET available_bikes = 0 WHERE id = 1`)
	require.NoError(t, err)
	ts.rent(t, 1, 1, 1)
	assert.Equal(t, 0, ts.stationCount(t, 1))

	_, err = ts.DB.Exec(`UPDATE stations SET available_bikes = -3 WHERE id = 2`)
	require.NoError(t, err)

	w := ts.GET("/api/stations")
	require.Equal(t, http.StatusOK, w.Code)
	var stations []struct {
		ID             int64 `json:"id"`
		AvailableBikes int   `json:"availableBikes"`
	}
	decode(t, w, &stations)
	for _, s := range stations {
		assert.GreaterOrEqual(t, s.AvailableBikes, 0, "station %d", s.ID)
	}
	assert.Equal(t, 0, ts.stationCount(t, 2))
}

func TestOneOngoingRidePerBike(t *testing.T) {
	ts := NewTestServer(t)
	ctx := context.Background()
	rides := ride.NewRepository(ts.DB)

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, rides.Insert(ctx, ride.New(1, 3, 1, 1, now, ride.HourlyRate)))

	err := rides.Insert(ctx, ride.New(2, 3, 1, 1, now, ride.HourlyRate))
	require.Error(t, err)
	bikeID, ok := ride.BikeFromInUseError(err)
	assert.True(t, ok)
	assert.Equal(t, int64(3), bikeID)
}

func TestDuplicateRegistration(t *testing.T) {
	ts := NewTestServer(t)
	ts.Register(t, 1, "rider@example.com")

	w := ts.POST("/register", map[string]any{
		"userId": 2, "name": "Other", "email": "rider@example.com", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var f failure
	decode(t, w, &f)
	assert.Equal(t, "USER_EXISTS", f.Code)

	_, err := ts.Store.User(context.Background(), 2)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestFleetReset(t *testing.T) {
	ts := NewTestServer(t)
	ts.Register(t, 1, "rider@example.com")

	rented := ts.rent(t, 1, 1, 1)
	ts.Clock.Advance(10 * time.Minute)
	w := ts.POST("/api/end-ride", map[string]any{"rideId": rented.RideID, "stationId": 3})
	require.Equal(t, http.StatusOK, w.Code)
	ts.rent(t, 1, 2, 1)

	rep, err := fleet.Reset(context.Background(), ts.DB)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rep.Payments)
	assert.Equal(t, int64(2), rep.Rides)
	assert.Equal(t, int64(64), rep.Bikes)

	var homeless int
	require.NoError(t, ts.DB.Get(&homeless, `SELECT count(*) FROM bikes WHERE NOT available OR station_id IS NULL`))
	assert.Zero(t, homeless)

	var stationID int64
	require.NoError(t, ts.DB.Get(&stationID, `SELECT station_id FROM bikes WHERE id = 1`))
	assert.Equal(t, int64(1), stationID)

	assert.Equal(t, 15, ts.stationCount(t, 1))
	assert.Equal(t, 10, ts.stationCount(t, 4))
}
