package cabin

import (
	"net/http"
	"oasis/infras/otel"
	"oasis/internal/domains/cabin/model"
	"oasis/internal/domains/cabin/model/dto"
	"oasis/internal/domains/cabin/service"
	"oasis/shared"
	"oasis/shared/constant"
	gDto "oasis/shared/dto"
	"oasis/shared/validator"
	"oasis/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Cabin
	otel    otel.Otel
}

func New(service service.Cabin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cabins", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCabin)
		routerGroup.Get("/", handler.GetCabins)
		routerGroup.Get("/{id}", handler.GetCabinByID)
		routerGroup.Patch("/{id}", handler.UpdateCabin)
		routerGroup.Delete("/{id}", handler.DeleteCabin)
	})
}

// CreateCabin handles the creation of a new cabin.
// @Summary Create a new cabin
// @Description Create a new cabin with the provided details.
// @Tags Cabin
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Cabin name"
// @Param max_capacity formData integer true "Maximum number of guests"
// @Param regular_price formData number true "Regular price per night"
// @Param discount formData number false "Discount per night"
// @Param description formData string false "Cabin description"
// @Param image formData file false "Cabin image"
// @Success 201 {object} response.Message "Cabin created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cabins [post]
// @Security BearerAuth
func (handler *Handler) CreateCabin(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCabin")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.CreateCabinRequest{
		Name:        request.FormValue("name"),
		Description: request.FormValue("description"),
	}

	if capStr := request.FormValue("max_capacity"); capStr != "" {
		if c, err := shared.ConvertStringToInt(capStr); err == nil {
			req.MaxCapacity = c
		}
	}

	if priceStr := request.FormValue("regular_price"); priceStr != "" {
		if p, err := shared.ConvertStringToFloat(priceStr); err == nil {
			req.RegularPrice = p
		}
	}

	if discountStr := request.FormValue("discount"); discountStr != "" {
		if d, err := shared.ConvertStringToFloat(discountStr); err == nil {
			req.Discount = d
		}
	}

	file, fileHeader, err := request.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create cabin")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cabin created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Cabin created successfully")
}

// GetCabins retrieves all cabins based on query parameters.
// @Summary Get all cabins
// @Description Retrieve all cabins with optional filtering and pagination.
// @Tags Cabin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param min_price query number false "Filter by minimum regular price"
// @Param max_price query number false "Filter by maximum regular price"
// @Param capacity query integer false "Filter by minimum capacity"
// @Success 200 {object} response.Data[dto.CabinResponse] "List of cabins"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cabins [get]
func (handler *Handler) GetCabins(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCabins")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	name := r.URL.Query().Get(model.FieldName)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    name,
				Table:    model.TableName,
			},
		},
	}

	if minPriceStr := r.URL.Query().Get("min_price"); minPriceStr != "" {
		if minPrice, err := shared.ConvertStringToFloat(minPriceStr); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  "min_price",
				Field:    model.FieldRegularPrice,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    minPrice,
				Table:    model.TableName,
			})
		}
	}

	if maxPriceStr := r.URL.Query().Get("max_price"); maxPriceStr != "" {
		if maxPrice, err := shared.ConvertStringToFloat(maxPriceStr); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				ArgName:  "max_price",
				Field:    model.FieldRegularPrice,
				Operator: gDto.FilterOperatorLessEq,
				Value:    maxPrice,
				Table:    model.TableName,
			})
		}
	}

	if capacityStr := r.URL.Query().Get("capacity"); capacityStr != "" {
		if capacity, err := shared.ConvertStringToInt(capacityStr); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    model.FieldMaxCapacity,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    capacity,
				Table:    model.TableName,
			})
		}
	}

	cabins, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cabins")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cabins retrieved successfully")

	response.WithJSON(w, http.StatusOK, cabins)
}

// GetCabinByID retrieves a cabin by its ID.
// @Summary Get a cabin by ID
// @Description Retrieve a cabin by its unique identifier.
// @Tags Cabin
// @Accept json
// @Produce json
// @Param id path string true "Cabin ID"
// @Success 200 {object} response.Data[dto.CabinResponse] "Cabin details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cabins/{id} [get]
func (handler *Handler) GetCabinByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCabinByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	cabin, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cabin by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cabin retrieved successfully")

	response.WithJSON(w, http.StatusOK, cabin)
}

// UpdateCabin updates an existing cabin by its ID.
// @Summary Update a cabin by ID
// @Description Update the details of an existing cabin.
// @Tags Cabin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Cabin ID"
// @Param name formData string false "Cabin name"
// @Param max_capacity formData integer false "Maximum number of guests"
// @Param regular_price formData number false "Regular price per night"
// @Param discount formData number false "Discount per night"
// @Param description formData string false "Cabin description"
// @Param image formData file false "Cabin image"
// @Success 200 {object} response.Message "Cabin updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cabins/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCabin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCabin")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(w, err)

		return
	}

	req := dto.UpdateCabinRequest{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}

	if capStr := r.FormValue("max_capacity"); capStr != "" {
		if c, err := shared.ConvertStringToInt(capStr); err == nil {
			req.MaxCapacity = &c
		}
	}

	if priceStr := r.FormValue("regular_price"); priceStr != "" {
		if p, err := shared.ConvertStringToFloat(priceStr); err == nil {
			req.RegularPrice = &p
		}
	}

	if discountStr := r.FormValue("discount"); discountStr != "" {
		if d, err := shared.ConvertStringToFloat(discountStr); err == nil {
			req.Discount = &d
		}
	}

	file, fileHeader, err := r.FormFile("image")
	if err == nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update cabin")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cabin updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Cabin updated successfully")
}

// DeleteCabin deletes a cabin by its ID.
// @Summary Delete a cabin by ID
// @Description Delete a cabin using its unique identifier.
// @Tags Cabin
// @Accept json
// @Produce json
// @Param id path string true "Cabin ID"
// @Success 200 {object} response.Message "Cabin deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cabins/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCabin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCabin")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete cabin")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cabin deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Cabin deleted successfully")
}
