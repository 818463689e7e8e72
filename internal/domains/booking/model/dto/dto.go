package dto

import (
	"time"

	"oasis/internal/domains/booking/model"
	"oasis/shared"
	"oasis/shared/constant"
	gDto "oasis/shared/dto"
	gModel "oasis/shared/model"
	"oasis/shared/timezone"

	"github.com/google/uuid"
)

const dateOnlyFormat = "2006-01-02"

// ParseDate accepts RFC3339 timestamps and plain calendar dates.
func ParseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(constant.DateFormat, value); err == nil {
		return parsed, nil
	}

	return time.Parse(dateOnlyFormat, value)
}

type CreateBookingRequest struct {
	CabinID      string `json:"cabin_id"     validate:"required"`
	StartDate    string `json:"start_date"   validate:"required"`
	EndDate      string `json:"end_date"     validate:"required"`
	NumGuests    int    `json:"num_guests"   validate:"required,min=1"`
	Observations string `json:"observations" validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) ToModel(userID, user string, start, end time.Time, numNights int, cabinPrice, extrasPrice float64) model.Booking {
	return model.Booking{
		ID:           uuid.NewString(),
		CabinID:      c.CabinID,
		UserID:       userID,
		StartDate:    start,
		EndDate:      end,
		NumNights:    numNights,
		NumGuests:    c.NumGuests,
		CabinPrice:   cabinPrice,
		ExtrasPrice:  extrasPrice,
		TotalPrice:   cabinPrice + extrasPrice,
		Observations: c.Observations,
		Status:       model.StatusUnconfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingRequest struct {
	StartDate    string   `json:"start_date"   validate:"omitempty"`
	EndDate      string   `json:"end_date"     validate:"omitempty"`
	NumGuests    *int     `json:"num_guests"   validate:"omitempty,min=1"`
	ExtrasPrice  *float64 `json:"extras_price" validate:"omitempty,min=0"`
	Observations *string  `json:"observations" validate:"omitempty,max=1000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=UNCONFIRMED CHECKEDIN CHECKEDOUT CANCELLED"`
}

type BookingResponse struct {
	ID           string  `json:"id"`
	CabinID      string  `json:"cabin_id"`
	UserID       string  `json:"user_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	NumNights    int     `json:"num_nights"`
	NumGuests    int     `json:"num_guests"`
	CabinPrice   float64 `json:"cabin_price"`
	ExtrasPrice  float64 `json:"extras_price"`
	TotalPrice   float64 `json:"total_price"`
	Observations string  `json:"observations"`
	Status       string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CabinID = model.CabinID
	r.UserID = model.UserID
	r.StartDate = timezone.Format(model.StartDate, constant.DateFormat)
	r.EndDate = timezone.Format(model.EndDate, constant.DateFormat)
	r.NumNights = model.NumNights
	r.NumGuests = model.NumGuests
	r.CabinPrice = model.CabinPrice
	r.ExtrasPrice = model.ExtrasPrice
	r.TotalPrice = model.TotalPrice
	r.Observations = model.Observations
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
