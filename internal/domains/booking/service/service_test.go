package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"oasis/config"
	"oasis/infras/otel/mocks"
	bookingMocks "oasis/internal/domains/booking/mocks"
	"oasis/internal/domains/booking/model"
	"oasis/internal/domains/booking/model/dto"
	"oasis/internal/domains/booking/service"
	cabinMocks "oasis/internal/domains/cabin/mocks"
	cabinModel "oasis/internal/domains/cabin/model"
	cacheMocks "oasis/shared/cache/mocks"
	"oasis/shared/constant"
	gDto "oasis/shared/dto"
	"oasis/shared/failure"
	gModel "oasis/shared/model"
	"oasis/shared/timezone"
)

func TestCountNights(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{name: "three full nights", start: "2024-01-01", end: "2024-01-04", want: 3},
		{name: "single night", start: "2024-01-01", end: "2024-01-02", want: 1},
		{name: "partial night rounds up", start: "2024-01-01T12:00:00Z", end: "2024-01-02T18:00:00Z", want: 2},
		{name: "same day", start: "2024-01-01", end: "2024-01-01", want: 0},
		{name: "end before start", start: "2024-01-04", end: "2024-01-01", want: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := dto.ParseDate(tt.start)
			assert.NoError(t, err)

			end, err := dto.ParseDate(tt.end)
			assert.NoError(t, err)

			assert.Equal(t, tt.want, service.CountNights(start, end))
		})
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCabinRepo := cabinMocks.NewMockCabin(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCabinRepo, cfg, mockCache, mockOtel)

	cabin := cabinModel.Cabin{
		ID:           "cabin-id",
		Name:         "Forest Cabin",
		MaxCapacity:  4,
		RegularPrice: 100,
		Discount:     20,
	}

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name       string
		req        dto.CreateBookingRequest
		setupMock  func()
		wantErr    bool
		wantErrMsg string
		wantRes    func(res dto.BookingResponse)
	}{
		{
			name: "successful creation computes nights and prices",
			req: dto.CreateBookingRequest{
				CabinID:   "cabin-id",
				StartDate: "2024-01-01",
				EndDate:   "2024-01-04",
				NumGuests: 2,
			},
			setupMock: func() {
				mockCabinRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cabin, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, 3, booking.NumNights)
						assert.Equal(t, 240.0, booking.CabinPrice)
						assert.Equal(t, 0.0, booking.ExtrasPrice)
						assert.Equal(t, 240.0, booking.TotalPrice)
						assert.Equal(t, model.StatusUnconfirmed, booking.Status)

						return nil
					})
			},
			wantErr: false,
			wantRes: func(res dto.BookingResponse) {
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, "cabin-id", res.CabinID)
				assert.Equal(t, 3, res.NumNights)
				assert.Equal(t, 240.0, res.TotalPrice)
				assert.Equal(t, model.StatusUnconfirmed, res.Status)
			},
		},
		{
			name: "cabin not found",
			req: dto.CreateBookingRequest{
				CabinID:   "missing-cabin",
				StartDate: "2024-01-01",
				EndDate:   "2024-01-04",
				NumGuests: 2,
			},
			setupMock: func() {
				mockCabinRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cabinModel.Cabin{}, nil)
			},
			wantErr:    true,
			wantErrMsg: "cabin not found",
		},
		{
			name: "guests over capacity",
			req: dto.CreateBookingRequest{
				CabinID:   "cabin-id",
				StartDate: "2024-01-01",
				EndDate:   "2024-01-04",
				NumGuests: 5,
			},
			setupMock: func() {
				mockCabinRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cabin, nil)
			},
			wantErr:    true,
			wantErrMsg: "maximum capacity is 4",
		},
		{
			name: "end date not after start date",
			req: dto.CreateBookingRequest{
				CabinID:   "cabin-id",
				StartDate: "2024-01-04",
				EndDate:   "2024-01-04",
				NumGuests: 2,
			},
			setupMock: func() {
				mockCabinRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cabin, nil)
			},
			wantErr:    true,
			wantErrMsg: "end date must be after start date",
		},
		{
			name: "invalid start date",
			req: dto.CreateBookingRequest{
				CabinID:   "cabin-id",
				StartDate: "not-a-date",
				EndDate:   "2024-01-04",
				NumGuests: 2,
			},
			setupMock: func() {
				mockCabinRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cabin, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			req: dto.CreateBookingRequest{
				CabinID:   "cabin-id",
				StartDate: "2024-01-01",
				EndDate:   "2024-01-04",
				NumGuests: 2,
			},
			setupMock: func() {
				mockCabinRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cabin, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantErrMsg != "" {
					assert.Contains(t, err.Error(), tt.wantErrMsg)
				}
			} else {
				assert.NoError(t, err)
			}

			if tt.wantRes != nil {
				tt.wantRes(res)
			}
		})
	}
}

func TestBookingService_GetOwn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCabinRepo := cabinMocks.NewMockCabin(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCabinRepo, cfg, mockCache, mockOtel)

	t.Run("missing authenticated user", func(t *testing.T) {
		_, err := svc.GetOwn(context.Background(), gDto.QueryParams{})

		assert.Error(t, err)
		assert.Equal(t, 401, failure.GetCode(err))
	})

	t.Run("scopes listing to the caller", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assert.Len(t, filter.Filters, 1)

				return 1, nil
			})

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{{ID: "booking-id", UserID: "test-user-id"}}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
		res, err := svc.GetOwn(ctx, gDto.QueryParams{Limit: 10, Page: 1})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Bookings, 1)
	})
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCabinRepo := cabinMocks.NewMockCabin(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCabinRepo, cfg, mockCache, mockOtel)

	booking := model.Booking{
		ID:        "booking-id",
		CabinID:   "cabin-id",
		UserID:    "test-user-id",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		NumNights: 3,
		Status:    model.StatusUnconfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "test-user-id",
			ModifiedBy: "test-user-id",
		},
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "booking-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			id:   "booking-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "booking-id",
		},
		{
			name: "booking not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			id:   "booking-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)

				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, result.ID)
				}
			}
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCabinRepo := cabinMocks.NewMockCabin(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCabinRepo, cfg, mockCache, mockOtel)

	cabin := cabinModel.Cabin{
		ID:           "cabin-id",
		MaxCapacity:  4,
		RegularPrice: 100,
		Discount:     20,
	}

	booking := model.Booking{
		ID:         "booking-id",
		CabinID:    "cabin-id",
		UserID:     "test-user-id",
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		NumNights:  3,
		NumGuests:  2,
		CabinPrice: 240,
		TotalPrice: 240,
		Status:     model.StatusUnconfirmed,
	}

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	extras := 50.0

	tests := []struct {
		name      string
		req       dto.UpdateBookingRequest
		id        string
		setupMock func()
		wantErr   bool
		wantRes   func(res dto.BookingResponse)
	}{
		{
			name: "extending the stay recomputes prices",
			req: dto.UpdateBookingRequest{
				EndDate:     "2024-01-06",
				ExtrasPrice: &extras,
			},
			id: "booking-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockCabinRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cabin, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 5, fields[model.FieldNumNights])
						assert.Equal(t, 400.0, fields[model.FieldCabinPrice])
						assert.Equal(t, 450.0, fields[model.FieldTotalPrice])

						return nil
					})
			},
			wantErr: false,
			wantRes: func(res dto.BookingResponse) {
				assert.Equal(t, "booking-id", res.ID)
				assert.Equal(t, 5, res.NumNights)
				assert.Equal(t, 400.0, res.CabinPrice)
				assert.Equal(t, 50.0, res.ExtrasPrice)
				assert.Equal(t, 450.0, res.TotalPrice)
			},
		},
		{
			name:    "empty update request",
			req:     dto.UpdateBookingRequest{},
			id:      "booking-id",
			wantErr: true,
		},
		{
			name: "booking not found",
			req: dto.UpdateBookingRequest{
				EndDate: "2024-01-06",
			},
			id: "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "shrinking the stay to zero nights",
			req: dto.UpdateBookingRequest{
				EndDate: "2024-01-01",
			},
			id: "booking-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				mockCabinRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cabin, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Update(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.wantRes != nil {
				tt.wantRes(res)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCabinRepo := cabinMocks.NewMockCabin(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCabinRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		req       dto.UpdateBookingStatusRequest
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful status overwrite",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCheckedIn},
			id:   "booking-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.StatusCheckedIn, fields[model.FieldStatus])

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCancelled},
			id:   "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.UpdateStatus(ctx, tt.req, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockCabinRepo := cabinMocks.NewMockCabin(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockCabinRepo, cfg, mockCache, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			id:   "booking-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "booking not found",
			id:   "nonexistent-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
