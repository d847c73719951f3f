package rental

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/semanticallynull/smartbike-backend/bike"
	"github.com/semanticallynull/smartbike-backend/payment"
	"github.com/semanticallynull/smartbike-backend/ride"
	"github.com/semanticallynull/smartbike-backend/station"
	"github.com/semanticallynull/smartbike-backend/user"
)

// MemoryStore keeps everything in process. Update holds the store lock for the
// whole transaction and works on a copy that replaces the live data on success.
type MemoryStore struct {
	mu   sync.Mutex
	data memoryData
}

type memoryData struct {
	users    map[int64]user.User
	bikes    map[int64]bike.Bike
	stations map[int64]station.Station
	rides    map[uuid.UUID]ride.Ride
	payments map[uuid.UUID]payment.Payment
}

func (d memoryData) clone() memoryData {
	return memoryData{
		users:    maps.Clone(d.users),
		bikes:    maps.Clone(d.bikes),
		stations: maps.Clone(d.stations),
		rides:    maps.Clone(d.rides),
		payments: maps.Clone(d.payments),
	}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: memoryData{
			users:    map[int64]user.User{},
			bikes:    map[int64]bike.Bike{},
			stations: map[int64]station.Station{},
			rides:    map[uuid.UUID]ride.Ride{},
			payments: map[uuid.UUID]payment.Payment{},
		},
	}
}

// Seed replaces the fleet with the given stations and bikes.
func (s *MemoryStore) Seed(stations []station.Station, bikes []bike.Bike) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.stations = make(map[int64]station.Station, len(stations))
	for _, st := range stations {
		s.data.stations[st.ID] = st
	}
	s.data.bikes = make(map[int64]bike.Bike, len(bikes))
	for _, b := range bikes {
		s.data.bikes[b.ID] = b
	}
}

func (s *MemoryStore) Update(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(ctx, &memoryTx{data: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *MemoryStore) Bikes(context.Context) ([]bike.Bike, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bikes := slices.Collect(maps.Values(s.data.bikes))
	slices.SortFunc(bikes, func(a, b bike.Bike) int { return cmp.Compare(a.ID, b.ID) })
	return bikes, nil
}

func (s *MemoryStore) Stations(context.Context) ([]station.Station, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stations := make([]station.Station, 0, len(s.data.stations))
	for id, st := range s.data.stations {
		if st.AvailableBikes < 0 {
			st = st.Clamp()
			s.data.stations[id] = st
		}
		stations = append(stations, st)
	}
	slices.SortFunc(stations, func(a, b station.Station) int { return cmp.Compare(a.ID, b.ID) })
	return stations, nil
}

func (s *MemoryStore) User(_ context.Context, id int64) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.data.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) UserByLogin(_ context.Context, loginID string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.data.users {
		if u.Email == loginID {
			return u, nil
		}
	}
	if id, err := strconv.ParseInt(loginID, 10, 64); err == nil {
		if u, ok := s.data.users[id]; ok {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (s *MemoryStore) CreateUser(_ context.Context, u user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.users[u.ID]; ok {
		return user.ErrAlreadyExists
	}
	for _, existing := range s.data.users {
		if existing.Email == u.Email {
			return user.ErrAlreadyExists
		}
	}
	s.data.users[u.ID] = u
	return nil
}

func (s *MemoryStore) RidesByUser(_ context.Context, userID int64, limit int) ([]ride.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rides := []ride.Ride{}
	for _, r := range s.data.rides {
		if r.UserID == userID {
			rides = append(rides, r)
		}
	}
	slices.SortFunc(rides, func(a, b ride.Ride) int { return b.StartedAt.Compare(a.StartedAt) })
	if limit > 0 && len(rides) > limit {
		rides = rides[:limit]
	}
	return rides, nil
}

func (s *MemoryStore) PaymentsByUser(_ context.Context, userID int64) ([]payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	payments := []payment.Payment{}
	for _, p := range s.data.payments {
		if p.UserID == userID {
			payments = append(payments, p)
		}
	}
	slices.SortFunc(payments, func(a, b payment.Payment) int { return b.PaidAt.Compare(a.PaidAt) })
	return payments, nil
}

func (s *MemoryStore) AdjustStationBikes(_ context.Context, stationID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.data.stations[stationID]
	if !ok {
		return station.ErrNotFound
	}
	st.AvailableBikes += delta
	s.data.stations[stationID] = st.Clamp()
	return nil
}

type memoryTx struct {
	data memoryData
}

func (t *memoryTx) Bike(_ context.Context, id int64) (bike.Bike, error) {
	b, ok := t.data.bikes[id]
	if !ok {
		return bike.Bike{}, bike.ErrNotFound
	}
	return b, nil
}

func (t *memoryTx) MarkBikeRented(_ context.Context, id int64) error {
	b, ok := t.data.bikes[id]
	if !ok || !b.Available {
		return bike.ErrNotAvailable
	}
	b.Available = false
	b.StationID = nil
	t.data.bikes[id] = b
	return nil
}

func (t *memoryTx) ReturnBike(_ context.Context, id, stationID int64) error {
	b, ok := t.data.bikes[id]
	if !ok {
		return bike.ErrNotFound
	}
	b.Available = true
	b.StationID = &stationID
	t.data.bikes[id] = b
	return nil
}

func (t *memoryTx) InsertRide(_ context.Context, r ride.Ride) error {
	for _, existing := range t.data.rides {
		if existing.BikeID == r.BikeID && existing.Ongoing() {
			return bike.ErrNotAvailable
		}
	}
	t.data.rides[r.ID] = r
	return nil
}

func (t *memoryTx) Ride(_ context.Context, id uuid.UUID) (ride.Ride, error) {
	r, ok := t.data.rides[id]
	if !ok {
		return ride.Ride{}, ride.ErrNotFound
	}
	return r, nil
}

func (t *memoryTx) CompleteRide(_ context.Context, r ride.Ride) error {
	existing, ok := t.data.rides[r.ID]
	if !ok {
		return ride.ErrNotFound
	}
	if !existing.Ongoing() {
		return ride.ErrAlreadyCompleted
	}
	t.data.rides[r.ID] = r
	return nil
}

func (t *memoryTx) InsertPayment(_ context.Context, p payment.Payment) error {
	for _, existing := range t.data.payments {
		if existing.RideID == p.RideID {
			return payment.ErrDuplicate
		}
	}
	t.data.payments[p.ID] = p
	return nil
}

func (t *memoryTx) AddUserTotals(_ context.Context, userID int64, hours float64, spent int64) error {
	u, ok := t.data.users[userID]
	if !ok {
		return user.ErrNotFound
	}
	u.TotalRides++
	u.TotalHours += hours
	u.TotalSpent += spent
	t.data.users[userID] = u
	return nil
}
