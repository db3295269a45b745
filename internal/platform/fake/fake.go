// Package fake supplies curated demographic value pools (names, addresses,
// contact details) for the synthetic generators. Everything draws from an
// explicit rng.Stream; there is no package-level random state.
package fake

import (
	"fmt"
	"strings"

	"github.com/clindata/clindata/internal/platform/rng"
)

var (
	firstNamesMale = []string{
		"James", "Robert", "John", "Michael", "David", "William", "Richard",
		"Joseph", "Thomas", "Christopher", "Charles", "Daniel", "Matthew",
		"Anthony", "Mark", "Donald", "Steven", "Paul", "Andrew", "Joshua",
		"Kenneth", "Kevin", "Brian", "George", "Timothy", "Ronald", "Edward",
		"Jason", "Jeffrey", "Ryan", "Jacob", "Gary", "Nicholas", "Eric",
		"Jonathan", "Stephen", "Larry", "Justin", "Scott", "Brandon",
		"Benjamin", "Samuel", "Raymond", "Gregory", "Frank", "Alexander",
		"Patrick", "Jack", "Dennis", "Jerry", "Tyler",
	}
	firstNamesFemale = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Barbara", "Elizabeth",
		"Susan", "Jessica", "Sarah", "Karen", "Lisa", "Nancy", "Betty",
		"Margaret", "Sandra", "Ashley", "Dorothy", "Kimberly", "Emily",
		"Donna", "Michelle", "Carol", "Amanda", "Melissa", "Deborah",
		"Stephanie", "Rebecca", "Sharon", "Laura", "Cynthia", "Kathleen",
		"Amy", "Angela", "Shirley", "Anna", "Brenda", "Pamela", "Emma",
		"Nicole", "Helen", "Samantha", "Katherine", "Christine", "Debra",
		"Rachel", "Carolyn", "Janet", "Catherine", "Maria", "Heather",
		"Diane",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
		"Miller", "Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez",
		"Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore",
		"Jackson", "Martin", "Lee", "Perez", "Thompson", "White", "Harris",
		"Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
		"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen",
		"Hill", "Flores", "Green", "Adams", "Nelson", "Baker", "Hall",
		"Rivera", "Campbell", "Mitchell", "Carter", "Roberts", "Gomez",
	}

	streetNames = []string{
		"Main St", "Oak Ave", "Elm St", "Pine Rd", "Maple Dr", "Cedar Ln",
		"Birch Blvd", "Walnut Way", "Cherry Ct", "Spruce Pl", "Willow Rd",
		"Ash St", "Sycamore Ave", "Chestnut St", "Poplar Dr",
	}
	cities = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
		"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
		"Austin", "Jacksonville", "Fort Worth", "Columbus", "Charlotte",
	}
	states = []string{
		"NY", "CA", "IL", "TX", "AZ", "PA", "FL", "OH", "NC", "GA",
		"MI", "NJ", "VA", "WA", "CO",
	}
)

// FirstName returns a given name for the sex code ("M" or "F").
func FirstName(s *rng.Stream, sex string) string {
	if sex == "F" {
		return rng.Pick(s, firstNamesFemale)
	}
	return rng.Pick(s, firstNamesMale)
}

// AnyFirstName returns a given name irrespective of sex.
func AnyFirstName(s *rng.Stream) string {
	if s.Chance(0.5) {
		return rng.Pick(s, firstNamesMale)
	}
	return rng.Pick(s, firstNamesFemale)
}

// LastName returns a family name.
func LastName(s *rng.Stream) string {
	return rng.Pick(s, lastNames)
}

// FullName returns "First Last".
func FullName(s *rng.Stream) string {
	return AnyFirstName(s) + " " + LastName(s)
}

// StreetAddress returns a house number plus street name.
func StreetAddress(s *rng.Stream) string {
	return fmt.Sprintf("%d %s", s.IntBetween(100, 9999), rng.Pick(s, streetNames))
}

// City returns a city name.
func City(s *rng.Stream) string {
	return rng.Pick(s, cities)
}

// State returns a two-letter state code.
func State(s *rng.Stream) string {
	return rng.Pick(s, states)
}

// ZipCode returns a five-digit postal code.
func ZipCode(s *rng.Stream) string {
	return s.Digits(5)
}

// Phone returns a US-formatted phone number.
func Phone(s *rng.Stream) string {
	return fmt.Sprintf("(%03d) %03d-%04d",
		s.IntBetween(200, 999), s.IntBetween(200, 999), s.IntBetween(0, 9999))
}

// Email builds a lowercase address from a name pair.
func Email(s *rng.Stream, first, last string) string {
	return fmt.Sprintf("%s.%s%d@example.com",
		strings.ToLower(first), strings.ToLower(last), s.IntBetween(1, 99))
}
