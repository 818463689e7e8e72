package dto

import (
	"oasis/internal/domains/payment/model"
	gDto "oasis/shared/dto"
	gModel "oasis/shared/model"
	"oasis/shared/timezone"

	"github.com/google/uuid"
)

type InitiatePaymentRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
	Method    string `json:"method"     validate:"required,oneof=KHALTI COD"`
}

func (i *InitiatePaymentRequest) ToModel(user string, amount float64, status string, pidx *string) model.Payment {
	return model.Payment{
		ID:        uuid.NewString(),
		BookingID: i.BookingID,
		Amount:    amount,
		Method:    i.Method,
		Status:    status,
		Pidx:      pidx,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type PaymentResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	Pidx      string  `json:"pidx,omitempty"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Amount = model.Amount
	r.Method = model.Method
	r.Status = model.Status

	if model.Pidx != nil {
		r.Pidx = *model.Pidx
	}

	r.Metadata.FromModel(model.Metadata)
}

type InitiatePaymentResponse struct {
	Payment    PaymentResponse `json:"payment"`
	PaymentURL string          `json:"payment_url,omitempty"`
}

type VerifyPaymentResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"booking_id"`
}

// PaymentCompletedEvent is published after a settlement finishes.
type PaymentCompletedEvent struct {
	PaymentID string  `json:"payment_id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	At        string  `json:"at"`
}
