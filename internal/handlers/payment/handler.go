package payment

import (
	"net/http"
	"oasis/infras/otel"
	"oasis/internal/domains/payment/model/dto"
	"oasis/internal/domains/payment/service"
	"oasis/shared/constant"
	"oasis/shared/validator"
	"oasis/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/initiate", handler.InitiatePayment)
		routerGroup.Get("/verify", handler.VerifyPayment)
	})
}

// InitiatePayment starts a payment for a booking.
// @Summary Initiate a payment
// @Description Initiate a payment for an unconfirmed booking, either through the Khalti gateway or as cash on delivery.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.InitiatePaymentRequest true "Initiate Payment Request"
// @Success 200 {object} dto.InitiatePaymentResponse "Payment initiated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/initiate [post]
// @Security BearerAuth
func (handler *Handler) InitiatePayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InitiatePayment")
	defer scope.End()

	req := dto.InitiatePaymentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Initiate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to initiate payment")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment initiated successfully by user " + user)

	response.WithJSON(writer, http.StatusOK, res)
}

// VerifyPayment verifies a gateway payment by its pidx.
// @Summary Verify a payment
// @Description Verify the status of a gateway payment and settle the booking when the gateway reports completion.
// @Tags Payment
// @Accept json
// @Produce json
// @Param pidx query string true "Gateway payment identifier"
// @Success 200 {object} dto.VerifyPaymentResponse "Verification result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/verify [get]
// @Security BearerAuth
func (handler *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".VerifyPayment")
	defer scope.End()

	pidx := r.URL.Query().Get("pidx")

	res, err := handler.service.Verify(ctx, pidx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment verification completed")

	response.WithJSON(w, http.StatusOK, res)
}
