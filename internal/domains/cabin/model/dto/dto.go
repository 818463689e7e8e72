package dto

import (
	"mime/multipart"

	"oasis/internal/domains/cabin/model"
	"oasis/shared"
	gDto "oasis/shared/dto"
	gModel "oasis/shared/model"
	"oasis/shared/timezone"

	"github.com/google/uuid"
)

type CreateCabinRequest struct {
	Name         string                `json:"name"          validate:"required,max=100"`
	MaxCapacity  int                   `json:"max_capacity"  validate:"required,min=1"`
	RegularPrice float64               `json:"regular_price" validate:"required,gt=0"`
	Discount     float64               `json:"discount"      validate:"omitempty,min=0"`
	Description  string                `json:"description"   validate:"omitempty"`
	Image        *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
}

func (c *CreateCabinRequest) ToModel(user string, imageURL string) model.Cabin {
	return model.Cabin{
		ID:           uuid.NewString(),
		Name:         c.Name,
		MaxCapacity:  c.MaxCapacity,
		RegularPrice: c.RegularPrice,
		Discount:     c.Discount,
		Description:  c.Description,
		Image:        imageURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCabinRequest struct {
	Name         string                `db:"name"          json:"name"          validate:"omitempty,max=100"`
	MaxCapacity  *int                  `db:"max_capacity"  json:"max_capacity"  validate:"omitempty,min=1"`
	RegularPrice *float64              `db:"regular_price" json:"regular_price" validate:"omitempty,gt=0"`
	Discount     *float64              `db:"discount"      json:"discount"      validate:"omitempty,min=0"`
	Description  string                `db:"description"   json:"description"   validate:"omitempty"`
	Image        *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile    multipart.File        `json:"-"`
}

type CabinResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	MaxCapacity  int     `json:"max_capacity"`
	RegularPrice float64 `json:"regular_price"`
	Discount     float64 `json:"discount"`
	Description  string  `json:"description"`
	Image        string  `json:"image"`
	gDto.Metadata
}

func (r *CabinResponse) FromModel(model model.Cabin) {
	r.ID = model.ID
	r.Name = model.Name
	r.MaxCapacity = model.MaxCapacity
	r.RegularPrice = model.RegularPrice
	r.Discount = model.Discount
	r.Description = model.Description
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetCabinsResponse struct {
	Cabins    []CabinResponse `json:"cabins"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetCabinsResponse) FromModels(models []model.Cabin, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Cabins = make([]CabinResponse, len(models))
	for i, mod := range models {
		r.Cabins[i].FromModel(mod)
	}
}
