package model

import "oasis/shared/model"

const (
	TableName  = "cabins"
	EntityName = "cabin"

	FieldID           = "id"
	FieldName         = "name"
	FieldMaxCapacity  = "max_capacity"
	FieldRegularPrice = "regular_price"
	FieldDiscount     = "discount"
	FieldDescription  = "description"
	FieldImage        = "image"
)

type Cabin struct {
	ID           string  `db:"id"`
	Name         string  `db:"name"`
	MaxCapacity  int     `db:"max_capacity"`
	RegularPrice float64 `db:"regular_price"`
	Discount     float64 `db:"discount"`
	Description  string  `db:"description"`
	Image        string  `db:"image"`
	model.Metadata
}
