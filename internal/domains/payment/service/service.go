package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"oasis/config"
	"oasis/infras/kafka"
	"oasis/infras/khalti"
	"oasis/infras/otel"
	"oasis/infras/postgres"
	bookingModel "oasis/internal/domains/booking/model"
	bookingRepo "oasis/internal/domains/booking/repository"
	"oasis/internal/domains/payment/model"
	"oasis/internal/domains/payment/model/dto"
	"oasis/internal/domains/payment/repository"
	"oasis/shared"
	"oasis/shared/cache"
	"oasis/shared/constant"
	gDto "oasis/shared/dto"
	"oasis/shared/failure"
	"oasis/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	purchaseOrderNamePrefix = "Booking_"
)

type Payment interface {
	Initiate(ctx context.Context, req dto.InitiatePaymentRequest) (dto.InitiatePaymentResponse, error)
	Verify(ctx context.Context, pidx string) (dto.VerifyPaymentResponse, error)
}

type serviceImpl struct {
	repo        repository.Payment
	bookingRepo bookingRepo.Booking
	db          *postgres.Connection
	gateway     khalti.Khalti
	events      kafka.Client
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Payment,
	bookingRepo bookingRepo.Booking,
	db *postgres.Connection,
	gateway khalti.Khalti,
	events kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		db:          db,
		gateway:     gateway,
		events:      events,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Initiate starts settlement for an unconfirmed booking owned by the caller.
// Gateway payments stay PENDING until verified; cash payments settle the
// booking in a single transaction.
func (s *serviceImpl) Initiate(ctx context.Context, req dto.InitiatePaymentRequest) (res dto.InitiatePaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Initiate")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.bookingRepo.Get(ctx, ownedBookingFilter(req.BookingID, userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusUnconfirmed {
		return res, failure.BadRequestFromString("booking already confirmed or cancelled") // nolint:wrapcheck
	}

	pending, err := s.pendingPayment(ctx, booking.ID)
	if err != nil {
		return res, err
	}

	if pending.ID != constant.Empty {
		log.Info().Str("bookingID", booking.ID).Str("paymentID", pending.ID).Msg("returning existing pending payment")
		res.Payment.FromModel(pending)

		return res, nil
	}

	switch req.Method {
	case model.MethodKhalti:
		return s.initiateKhalti(ctx, req, booking, userID)
	case model.MethodCOD:
		return s.initiateCash(ctx, req, booking, userID)
	default:
		return res, failure.BadRequestFromString("unsupported payment method") // nolint:wrapcheck
	}
}

func (s *serviceImpl) initiateKhalti(ctx context.Context, req dto.InitiatePaymentRequest, booking bookingModel.Booking, userID string) (res dto.InitiatePaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".initiateKhalti")
	defer scope.End()
	defer scope.TraceIfError(err)

	// The gateway call happens before any local write so a gateway failure
	// leaves no state behind.
	initiation, err := s.gateway.Initiate(ctx, khalti.InitiateRequest{
		ReturnURL:         s.cfg.App.FrontendURL + s.cfg.External.Khalti.ReturnPath,
		WebsiteURL:        s.cfg.App.FrontendURL,
		Amount:            int64(math.Round(booking.TotalPrice * 100)),
		PurchaseOrderID:   booking.ID,
		PurchaseOrderName: purchaseOrderNamePrefix + booking.ID,
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to initiate gateway payment")

		return res, failure.UpstreamError(err.Error()) // nolint:wrapcheck
	}

	if initiation.Pidx == constant.Empty || initiation.PaymentURL == constant.Empty {
		return res, failure.UpstreamError("gateway returned an incomplete initiation response") // nolint:wrapcheck
	}

	payment := req.ToModel(userID, booking.TotalPrice, model.StatusPending, &initiation.Pidx)

	if err = s.repo.Insert(ctx, payment); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			// Another request won the race for this booking's pending slot.
			pending, pendingErr := s.pendingPayment(ctx, booking.ID)
			if pendingErr == nil && pending.ID != constant.Empty {
				res.Payment.FromModel(pending)

				return res, nil
			}
		}

		log.Error().Err(err).Msg("failed to create payment")

		return res, fmt.Errorf("failed to create payment: %w", err)
	}

	res.Payment.FromModel(payment)
	res.PaymentURL = initiation.PaymentURL

	return res, nil
}

func (s *serviceImpl) initiateCash(ctx context.Context, req dto.InitiatePaymentRequest, booking bookingModel.Booking, userID string) (res dto.InitiatePaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".initiateCash")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment := req.ToModel(userID, booking.TotalPrice, model.StatusCompleted, nil)

	if err = s.settle(ctx, payment, booking.ID, userID, true); err != nil {
		return res, err
	}

	s.afterSettlement(ctx, payment)

	res.Payment.FromModel(payment)

	return res, nil
}

// Verify reconciles a gateway payment with its local record. The gateway is
// consulted first; nothing is mutated unless it reports a settled state.
func (s *serviceImpl) Verify(ctx context.Context, pidx string) (res dto.VerifyPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	if pidx == constant.Empty {
		return res, failure.BadRequestFromString("pidx is required") // nolint:wrapcheck
	}

	lookup, err := s.gateway.Lookup(ctx, pidx)
	if err != nil {
		log.Error().Err(err).Str("pidx", pidx).Msg("failed to look up gateway payment")

		return res, failure.UpstreamError(err.Error()) // nolint:wrapcheck
	}

	payment, err := s.repo.Get(ctx, pidxFilter(pidx))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.BookingID = payment.BookingID

	status := strings.ToLower(lookup.Status)
	if status != "completed" && status != "success" {
		res.Success = false
		res.Message = fmt.Sprintf("payment not completed, gateway reports %q", lookup.Status)

		return res, nil
	}

	if payment.Status != model.StatusCompleted {
		userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

		if err = s.settle(ctx, payment, payment.BookingID, userID, false); err != nil {
			return res, err
		}

		payment.Status = model.StatusCompleted
		s.afterSettlement(ctx, payment)
	}

	res.Success = true
	res.Message = "payment verified successfully"

	return res, nil
}

// settle flips the payment and its booking to their settled states in one
// transaction. For cash payments the payment row is inserted already
// COMPLETED; for gateway payments the existing PENDING row is updated.
func (s *serviceImpl) settle(ctx context.Context, payment model.Payment, bookingID, userID string, insertPayment bool) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".settle")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin settlement transaction")

		return fmt.Errorf("failed to begin settlement transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				log.Error().Err(rollbackErr).Msg("failed to roll back settlement transaction")
			}
		}
	}()

	if insertPayment {
		if err = s.repo.InsertTx(ctx, tx, payment); err != nil {
			log.Error().Err(err).Msg("failed to insert payment")

			return fmt.Errorf("failed to insert payment: %w", err)
		}
	} else {
		paymentFields := map[string]any{
			model.FieldStatus:        model.StatusCompleted,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: userID,
		}

		if err = s.repo.UpdateTx(ctx, tx, paymentFields, shared.FilterByID(payment.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update payment")

			return fmt.Errorf("failed to update payment: %w", err)
		}
	}

	bookingFields := map[string]any{
		bookingModel.FieldStatus: bookingModel.StatusCheckedOut,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: userID,
	}

	if err = s.bookingRepo.UpdateTx(ctx, tx, bookingFields, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit settlement transaction")

		return fmt.Errorf("failed to commit settlement transaction: %w", err)
	}

	return nil
}

// afterSettlement publishes the completion event and drops stale booking
// caches. Both are best effort.
func (s *serviceImpl) afterSettlement(ctx context.Context, payment model.Payment) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.PaymentCompletedEvent{
			PaymentID: payment.ID,
			BookingID: payment.BookingID,
			Amount:    payment.Amount,
			Method:    payment.Method,
			At:        timezone.Format(timezone.Now(), constant.DateFormat),
		}

		if err := s.events.SendMessages(c, s.cfg.Kafka.Topics.PaymentCompleted, kafka.Message{Key: payment.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("paymentID", payment.ID).Msg("failed to publish payment completed event")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, payment.BookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func (s *serviceImpl) pendingPayment(ctx context.Context, bookingID string) (model.Payment, error) {
	pending, err := s.repo.Get(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusPending,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check for pending payment")

		return pending, fmt.Errorf("failed to check for pending payment: %w", err)
	}

	return pending, nil
}

func ownedBookingFilter(bookingID, userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    bookingModel.TableName,
			},
		},
	}
}

func pidxFilter(pidx string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPidx,
				Operator: gDto.FilterOperatorEq,
				Value:    pidx,
				Table:    model.TableName,
			},
		},
	}
}
