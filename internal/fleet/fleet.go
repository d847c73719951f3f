// Package fleet is the reference set of stations and bikes the service is seeded
// with, and the maintenance operations that load and reset it.
package fleet

import (
	"github.com/semanticallynull/smartbike-backend/bike"
	"github.com/semanticallynull/smartbike-backend/station"
)

var stations = []station.Station{
	{ID: 1, Name: "Chennai Central Station", Address: "Park Town, Chennai, Tamil Nadu - 600003", City: "Chennai", TotalCapacity: 15},
	{ID: 2, Name: "Coimbatore RS Puram", Address: "RS Puram, Coimbatore, Tamil Nadu - 641002", City: "Coimbatore", TotalCapacity: 12},
	{ID: 3, Name: "Madurai Meenakshi Station", Address: "Near Meenakshi Temple, Madurai, Tamil Nadu - 625001", City: "Madurai", TotalCapacity: 15},
	{ID: 4, Name: "Kochi Marine Drive", Address: "Marine Drive, Ernakulam, Kochi, Kerala - 682031", City: "Kochi", TotalCapacity: 10},
	{ID: 5, Name: "Thiruvananthapuram Fort", Address: "Fort Area, Thiruvananthapuram, Kerala - 695023", City: "Thiruvananthapuram", TotalCapacity: 12},
}

type entry struct {
	model     string
	typ       bike.Type
	available bool
}

const (
	s = bike.Scooter
	m = bike.Motorcycle
)

// Bikes are numbered in order, station by station.
var bikesByStation = [][]entry{
	1: {
		{"Honda Activa 6G", s, true}, {"TVS Jupiter", s, true}, {"Hero Splendor Plus", m, true},
		{"Bajaj Pulsar 150", m, false}, {"Suzuki Access 125", s, true}, {"Yamaha FZ-S", m, true},
		{"Honda Dio", s, false}, {"Royal Enfield Classic 350", m, true}, {"TVS Apache RTR 160", m, false},
		{"Hero Passion Pro", m, true}, {"Bajaj Avenger 220", m, false}, {"Yamaha Ray ZR", s, true},
		{"Honda Shine", m, false}, {"TVS NTorq 125", s, false}, {"Suzuki Gixxer", m, false},
	},
	2: {
		{"Honda Activa 6G", s, true}, {"Royal Enfield Meteor 350", m, true}, {"Bajaj Pulsar NS200", m, false},
		{"TVS Jupiter", s, true}, {"Hero Splendor Plus", m, false}, {"Yamaha MT-15", m, true},
		{"Suzuki Access 125", s, false}, {"KTM Duke 200", m, true}, {"Honda CB Shine", m, false},
		{"TVS Apache RR 310", m, true}, {"Hero Glamour", m, false}, {"Honda Dio", s, false},
	},
	3: {
		{"Bajaj Pulsar 150", m, true}, {"TVS Jupiter", s, true}, {"Hero Splendor Plus", m, true},
		{"Honda Activa 6G", s, false}, {"Yamaha FZ", m, true}, {"Royal Enfield Bullet 350", m, true},
		{"Suzuki Gixxer SF", m, false}, {"TVS NTorq 125", s, true}, {"Hero Xtreme 160R", m, true},
		{"Bajaj Avenger Street 160", m, false}, {"Honda Grazia", s, true}, {"TVS Apache RTR 200", m, true},
		{"Yamaha Fascino", s, false}, {"Hero HF Deluxe", m, true}, {"Bajaj CT 110", m, false},
	},
	4: {
		{"Honda Activa 6G", s, true}, {"TVS Apache RTR 160", m, true}, {"Hero Splendor Plus", m, false},
		{"Suzuki Access 125", s, true}, {"Yamaha R15 V4", m, false}, {"Bajaj Dominar 400", m, true},
		{"TVS Jupiter", s, false}, {"Royal Enfield Himalayan", m, true}, {"Honda CB Hornet", m, false},
		{"Yamaha FZ25", m, false},
	},
	5: {
		{"Honda Activa 6G", s, true}, {"TVS Jupiter", s, true}, {"Bajaj Pulsar 150", m, false},
		{"Hero Splendor Plus", m, true}, {"Royal Enfield Classic 350", m, true}, {"Suzuki Gixxer", m, false},
		{"Yamaha FZ-S", m, true}, {"TVS NTorq 125", s, false}, {"Honda Dio", s, true},
		{"Bajaj Avenger 220", m, false}, {"Hero Xtreme 160R", m, true}, {"KTM RC 200", m, false},
	},
}

// Bikes returns the seeded fleet with ids starting at 1.
func Bikes() []bike.Bike {
	var out []bike.Bike
	id := int64(1)
	for stationID, entries := range bikesByStation {
		for _, e := range entries {
			sid := int64(stationID)
			out = append(out, bike.Bike{
				ID:        id,
				Model:     e.model,
				Type:      e.typ,
				StationID: &sid,
				Available: e.available,
			})
			id++
		}
	}
	return out
}

// Stations returns the seeded stations, each counting the bikes parked there
// available.
func Stations() []station.Station {
	available := HomeCounts(Bikes())
	out := make([]station.Station, len(stations))
	for i, st := range stations {
		st.AvailableBikes = available[st.ID]
		out[i] = st
	}
	return out
}
