package station

// Station is a physical pickup and drop-off point holding a pool of bikes.
type Station struct {
	ID      int64
	Name    string
	Address string
	City    string
	// AvailableBikes is a best-effort counter, never negative once read.
	AvailableBikes int `db:"available_bikes"`
	TotalCapacity  int `db:"total_capacity"`
}

// Clamp returns the station with a negative counter raised to zero.
func (s Station) Clamp() Station {
	if s.AvailableBikes < 0 {
		s.AvailableBikes = 0
	}
	return s
}
