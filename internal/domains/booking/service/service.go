package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"oasis/config"
	"oasis/infras/otel"
	"oasis/internal/domains/booking/model"
	"oasis/internal/domains/booking/model/dto"
	"oasis/internal/domains/booking/repository"
	cabinModel "oasis/internal/domains/cabin/model"
	cabinRepo "oasis/internal/domains/cabin/repository"
	"oasis/shared"
	"oasis/shared/cache"
	"oasis/shared/constant"
	gDto "oasis/shared/dto"
	"oasis/shared/failure"
	"oasis/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetOwn(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	cabinRepo cabinRepo.Cabin
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Booking, cabinRepo cabinRepo.Cabin, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		cabinRepo: cabinRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// CountNights returns the number of nights between two dates, rounding
// partial nights up.
func CountNights(start, end time.Time) int {
	return int(math.Ceil(end.Sub(start).Hours() / 24))
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cabin, err := s.cabinRepo.Get(ctx, shared.FilterByID(req.CabinID, cabinModel.FieldID, cabinModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get cabin")

		return res, fmt.Errorf("failed to get cabin: %w", err)
	}

	if cabin.ID == constant.Empty {
		return res, failure.NotFound("cabin not found") // nolint:wrapcheck
	}

	if req.NumGuests > cabin.MaxCapacity {
		return res, failure.BadRequestFromString(fmt.Sprintf("maximum capacity is %d", cabin.MaxCapacity)) // nolint:wrapcheck
	}

	start, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid start date: %v", err)) // nolint:wrapcheck
	}

	end, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid end date: %v", err)) // nolint:wrapcheck
	}

	numNights := CountNights(start, end)
	if numNights <= 0 {
		return res, failure.BadRequestFromString("end date must be after start date") // nolint:wrapcheck
	}

	cabinPrice := float64(numNights) * (cabin.RegularPrice - cabin.Discount)
	extrasPrice := 0.0

	booking := req.ToModel(user, user, start, end, numNights, cabinPrice, extrasPrice)

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetOwn(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetOwn")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("missing authenticated user") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(nil)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// Update merges the provided fields over the stored booking and recomputes
// the night count and prices from the booking's cabin. Guest capacity is
// only enforced at creation time.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateBookingRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		log.Error().Msg("booking not found")

		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	cabin, err := s.cabinRepo.Get(ctx, shared.FilterByID(booking.CabinID, cabinModel.FieldID, cabinModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get cabin")

		return res, fmt.Errorf("failed to get cabin: %w", err)
	}

	start := booking.StartDate
	if req.StartDate != constant.Empty {
		if start, err = dto.ParseDate(req.StartDate); err != nil {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid start date: %v", err)) // nolint:wrapcheck
		}
	}

	end := booking.EndDate
	if req.EndDate != constant.Empty {
		if end, err = dto.ParseDate(req.EndDate); err != nil {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid end date: %v", err)) // nolint:wrapcheck
		}
	}

	numNights := CountNights(start, end)
	if numNights <= 0 {
		return res, failure.BadRequestFromString("end date must be after start date") // nolint:wrapcheck
	}

	numGuests := booking.NumGuests
	if req.NumGuests != nil {
		numGuests = *req.NumGuests
	}

	extrasPrice := booking.ExtrasPrice
	if req.ExtrasPrice != nil {
		extrasPrice = *req.ExtrasPrice
	}

	observations := booking.Observations
	if req.Observations != nil {
		observations = *req.Observations
	}

	cabinPrice := float64(numNights) * (cabin.RegularPrice - cabin.Discount)
	modifiedAt := timezone.Now()

	updatedFields := map[string]any{
		model.FieldStartDate:     start,
		model.FieldEndDate:       end,
		model.FieldNumNights:     numNights,
		model.FieldNumGuests:     numGuests,
		model.FieldCabinPrice:    cabinPrice,
		model.FieldExtrasPrice:   extrasPrice,
		model.FieldTotalPrice:    cabinPrice + extrasPrice,
		model.FieldObservations:  observations,
		constant.FieldModifiedAt: modifiedAt,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	booking.StartDate = start
	booking.EndDate = end
	booking.NumNights = numNights
	booking.NumGuests = numGuests
	booking.CabinPrice = cabinPrice
	booking.ExtrasPrice = extrasPrice
	booking.TotalPrice = cabinPrice + extrasPrice
	booking.Observations = observations
	booking.ModifiedAt = modifiedAt
	booking.ModifiedBy = user

	res.FromModel(booking)

	s.invalidateBookingCaches(ctx, id)

	return res, nil
}

// UpdateStatus overwrites the booking status without checking the current
// one. This is an administrative operation.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		log.Error().Msg("booking not found")

		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
