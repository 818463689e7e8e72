package model

import "oasis/shared/model"

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldAmount    = "amount"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldPidx      = "pidx"
)

const (
	MethodKhalti = "KHALTI"
	MethodCOD    = "COD"

	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
)

type Payment struct {
	ID        string  `db:"id"`
	BookingID string  `db:"booking_id"`
	Amount    float64 `db:"amount"`
	Method    string  `db:"method"`
	Status    string  `db:"status"`
	Pidx      *string `db:"pidx"`
	model.Metadata
}
