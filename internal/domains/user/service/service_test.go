package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"oasis/config"
	"oasis/infras/otel/mocks"
	userMocks "oasis/internal/domains/user/mocks"
	"oasis/internal/domains/user/model"
	"oasis/internal/domains/user/model/dto"
	"oasis/internal/domains/user/service"
	cacheMocks "oasis/shared/cache/mocks"
	"oasis/shared/constant"
	"oasis/shared/failure"
	"oasis/shared/password"
)

func newUserService(ctrl *gomock.Controller) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestUserService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newUserService(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name       string
		req        dto.CreateUserRequest
		setupMock  func()
		wantErr    bool
		wantErrMsg string
	}{
		{
			name: "successful creation defaults to the USER role",
			req: dto.CreateUserRequest{
				Email:    "new@example.com",
				Password: "password123",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, constant.RoleUser, user.Role)
						assert.True(t, user.Active)
						assert.NoError(t, password.Verify("password123", user.Password))

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "explicit admin role is preserved",
			req: dto.CreateUserRequest{
				Email:    "admin@example.com",
				Password: "password123",
				Role:     constant.RoleAdmin,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user model.User) error {
						assert.Equal(t, constant.RoleAdmin, user.Role)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			req: dto.CreateUserRequest{
				Email:    "taken@example.com",
				Password: "password123",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:    true,
			wantErrMsg: "email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantErrMsg != "" {
					assert.Contains(t, err.Error(), tt.wantErrMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newUserService(ctrl)

	t.Run("cache miss falls back to the database", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: "user-id", Email: "test@example.com", Role: constant.RoleUser, Active: true}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "user-id")

		assert.NoError(t, err)
		assert.Equal(t, "user-id", res.ID)
	})

	t.Run("user not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), "nonexistent-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newUserService(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	role := constant.RoleAdmin
	inactive := false

	t.Run("deactivating a user", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, &inactive, fields[model.FieldActive])

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
		err := svc.Update(ctx, dto.UpdateUserRequest{Active: &inactive}, "user-id")

		assert.NoError(t, err)
	})

	t.Run("promoting a user", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, &role, fields[model.FieldRole])

				return nil
			})

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-admin-id")
		err := svc.Update(ctx, dto.UpdateUserRequest{Role: &role}, "user-id")

		assert.NoError(t, err)
	})

	t.Run("empty update request", func(t *testing.T) {
		err := svc.Update(context.Background(), dto.UpdateUserRequest{}, "user-id")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Update(context.Background(), dto.UpdateUserRequest{Role: &role}, "nonexistent-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestUserService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockCache := newUserService(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	t.Run("successful deletion", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), "user-id"))
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(context.Background(), "nonexistent-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
