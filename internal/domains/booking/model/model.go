package model

import (
	"oasis/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldCabinID      = "cabin_id"
	FieldUserID       = "user_id"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldNumNights    = "num_nights"
	FieldNumGuests    = "num_guests"
	FieldCabinPrice   = "cabin_price"
	FieldExtrasPrice  = "extras_price"
	FieldTotalPrice   = "total_price"
	FieldObservations = "observations"
	FieldStatus       = "status"
)

const (
	StatusUnconfirmed = "UNCONFIRMED"
	StatusCheckedIn   = "CHECKEDIN"
	StatusCheckedOut  = "CHECKEDOUT"
	StatusCancelled   = "CANCELLED"
)

type Booking struct {
	ID           string    `db:"id"`
	CabinID      string    `db:"cabin_id"`
	UserID       string    `db:"user_id"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	NumNights    int       `db:"num_nights"`
	NumGuests    int       `db:"num_guests"`
	CabinPrice   float64   `db:"cabin_price"`
	ExtrasPrice  float64   `db:"extras_price"`
	TotalPrice   float64   `db:"total_price"`
	Observations string    `db:"observations"`
	Status       string    `db:"status"`
	model.Metadata
}
