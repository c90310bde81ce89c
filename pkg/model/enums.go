package model

import "time"

type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// Weekdays is ordered the way time.Weekday numbers them, Sunday first.
var Weekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

func WeekdayOf(t time.Time) Weekday {
	return Weekdays[t.Weekday()]
}

func (d Weekday) Valid() bool {
	for _, w := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

type Role string

const (
	RoleSenior  Role = "Senior"
	RoleJunior  Role = "Junior"
	RoleStudent Role = "Student"
)

type ReservationType string

const (
	TypeExam       ReservationType = "Exam"
	TypeExtraClass ReservationType = "ExtraClass"
	TypeEvent      ReservationType = "Event"
)
