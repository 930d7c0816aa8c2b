package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/viorex/viorex-exchange/internal/config"
	"github.com/viorex/viorex-exchange/internal/logger"
	"github.com/viorex/viorex-exchange/internal/models"
	"github.com/viorex/viorex-exchange/internal/storage"
	"github.com/viorex/viorex-exchange/internal/storage/mocks"

	"go.uber.org/mock/gomock"
)

func TestNewIdentityService(t *testing.T) {
	t.Run("Identity_CreatesService", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		mockStorage := mocks.NewMockAccountStorage(ctrl)

		config := config.DefaultConfig()
		identity := NewIdentity(config, mockStorage)
		baseService, ok := identity.(*Identity)
		if !ok {
			t.Fatalf("Expected *Identity, got: '%T'", identity)
		}
		if baseService == nil || baseService.JWTAuth == nil {
			t.Errorf("Expected Identity to be initialized with JWTAuth")
		}
		if baseService.Storage != mockStorage {
			t.Errorf("Expected Identity to be initialized with provided storage")
		}
	})
}

func TestRegisterUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockAccountStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	testCases := []struct {
		Name          string
		SetupMocks    func()
		ExpectedError error
		Request       models.RegisterRequest
	}{
		{
			Name: "Register User: Success #1",
			SetupMocks: func() {
				mockStorage.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			ExpectedError: nil,
			Request:       models.RegisterRequest{Email: "user@example.com", Password: "secret1", Confirm: "secret1"},
		},
		{
			Name:          "Register User: ErrInvalidEmail #2",
			SetupMocks:    func() {},
			ExpectedError: ErrInvalidEmail,
			Request:       models.RegisterRequest{Email: "not-an-email", Password: "secret1", Confirm: "secret1"},
		},
		{
			Name:          "Register User: ErrPasswordTooShort #3",
			SetupMocks:    func() {},
			ExpectedError: ErrPasswordTooShort,
			Request:       models.RegisterRequest{Email: "user@example.com", Password: "12345", Confirm: "12345"},
		},
		{
			Name:          "Register User: ErrPasswordMismatch #4",
			SetupMocks:    func() {},
			ExpectedError: ErrPasswordMismatch,
			Request:       models.RegisterRequest{Email: "user@example.com", Password: "secret1", Confirm: "secret2"},
		},
		{
			Name: "Register User: Storage error #5",
			SetupMocks: func() {
				mockStorage.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("failed to save account"))
			},
			ExpectedError: errors.New("failed to save account"),
			Request:       models.RegisterRequest{Email: "user@example.com", Password: "secret1", Confirm: "secret1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tc.SetupMocks()

			identity := NewIdentity(config, mockStorage)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			_, err := identity.Register(ctx, tc.Request)

			if err != nil && tc.ExpectedError == nil {
				t.Errorf("Expected no error, got: '%v'", err)
			} else if err == nil && tc.ExpectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && err.Error() != tc.ExpectedError.Error() {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}
		})
	}
}

func TestRegisterUser_DemoSeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockAccountStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	var saved *models.UserData
	mockStorage.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *models.UserData) error {
			saved = user
			return nil
		})

	identity := NewIdentity(config, mockStorage)
	user, err := identity.Register(context.Background(), models.RegisterRequest{
		Email:        "user@example.com",
		Password:     "secret1",
		Confirm:      "secret1",
		ReferralCode: "FRIEND42",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if saved == nil || saved != user {
		t.Fatalf("Expected registered record to be saved to the slot")
	}

	if !user.Balance.Equal(models.DemoBalance) {
		t.Errorf("Expected demo balance %s, got: %s", models.DemoBalance, user.Balance)
	}
	if user.ReferralCode != "FRIEND42" {
		t.Errorf("Expected referral code to be recorded, got: %q", user.ReferralCode)
	}
	diff := cmp.Diff(models.DemoAssets, user.Assets)
	if len(diff) != 0 {
		t.Errorf("seed assets mismatch:\n %s", diff)
	}
}

func TestLoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockAccountStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	existing := func() *models.UserData {
		return &models.UserData{
			Email:     "user@example.com",
			Balance:   models.DemoBalance,
			Joined:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			LastLogin: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Assets:    models.DemoAssets,
		}
	}

	testCases := []struct {
		Name            string
		SetupMocks      func()
		Request         models.LoginRequest
		ExpectedError   error
		ExpectedCreated bool
	}{
		{
			Name: "Login: existing email succeeds #1",
			SetupMocks: func() {
				mockStorage.EXPECT().Load(gomock.Any()).Return(existing(), nil)
				mockStorage.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			Request:         models.LoginRequest{Email: "user@example.com", Password: "whatever"},
			ExpectedError:   nil,
			ExpectedCreated: false,
		},
		{
			Name: "Login: unknown email creates demo account #2",
			SetupMocks: func() {
				mockStorage.EXPECT().Load(gomock.Any()).Return(existing(), nil)
				mockStorage.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			Request:         models.LoginRequest{Email: "other@example.com", Password: "whatever"},
			ExpectedError:   nil,
			ExpectedCreated: true,
		},
		{
			Name: "Login: empty slot creates demo account #3",
			SetupMocks: func() {
				mockStorage.EXPECT().Load(gomock.Any()).Return(nil, storage.ErrUserNotFound)
				mockStorage.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			Request:         models.LoginRequest{Email: "user@example.com", Password: "whatever"},
			ExpectedError:   nil,
			ExpectedCreated: true,
		},
		{
			Name:          "Login: ErrInvalidEmail #4",
			SetupMocks:    func() {},
			Request:       models.LoginRequest{Email: "not-an-email", Password: "whatever"},
			ExpectedError: ErrInvalidEmail,
		},
		{
			Name:          "Login: ErrPasswordRequired #5",
			SetupMocks:    func() {},
			Request:       models.LoginRequest{Email: "user@example.com", Password: ""},
			ExpectedError: ErrPasswordRequired,
		},
		{
			Name: "Login: storage error #6",
			SetupMocks: func() {
				mockStorage.EXPECT().Load(gomock.Any()).Return(nil, errors.New("failed to read account slot"))
			},
			Request:       models.LoginRequest{Email: "user@example.com", Password: "whatever"},
			ExpectedError: errors.New("failed to read account slot"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tc.SetupMocks()

			identity := NewIdentity(config, mockStorage)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			_, created, err := identity.Login(ctx, tc.Request)

			if err != nil && tc.ExpectedError == nil {
				t.Errorf("Expected no error, got: '%v'", err)
			} else if err == nil && tc.ExpectedError != nil {
				t.Errorf("Expected error, got none")
			} else if err != nil && err.Error() != tc.ExpectedError.Error() {
				t.Errorf("Expected error: '%v', got: '%v'", tc.ExpectedError, err)
			}
			if err == nil && created != tc.ExpectedCreated {
				t.Errorf("Expected created=%v, got: %v", tc.ExpectedCreated, created)
			}
		})
	}
}

func TestLoginUser_UpdatesLastLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockAccountStorage(ctrl)

	config := config.DefaultConfig()
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		logger.Panic(err)
	}

	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loginTime := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mockStorage.EXPECT().Load(gomock.Any()).Return(&models.UserData{
		Email:     "user@example.com",
		Balance:   models.DemoBalance,
		Joined:    joined,
		LastLogin: joined,
		Assets:    models.DemoAssets,
	}, nil)

	var saved *models.UserData
	mockStorage.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, user *models.UserData) error {
			saved = user
			return nil
		})

	identity := NewIdentity(config, mockStorage).(*Identity)
	identity.Now = func() time.Time { return loginTime }

	user, created, err := identity.Login(context.Background(), models.LoginRequest{
		Email:    "user@example.com",
		Password: "anything at all",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if created {
		t.Errorf("Expected login to reuse existing record")
	}
	if !user.LastLogin.Equal(loginTime) {
		t.Errorf("Expected last login %v, got: %v", loginTime, user.LastLogin)
	}
	if saved == nil || !saved.Joined.Equal(joined) {
		t.Errorf("Expected joined timestamp to be preserved")
	}
}

func TestGenerateJWT(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockStorage := mocks.NewMockAccountStorage(ctrl)

	config := config.DefaultConfig()
	identity := NewIdentity(config, mockStorage)

	token, err := identity.GenerateJWT("user@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got: '%v'", err)
	}
	if len(token) == 0 {
		t.Fatalf("Expected non-empty token")
	}

	decoded, err := identity.GetTokenAuth().Decode(token)
	if err != nil {
		t.Fatalf("Expected token to decode, got: '%v'", err)
	}
	email, ok := decoded.Get("email")
	if !ok || email != "user@example.com" {
		t.Errorf("Expected email claim 'user@example.com', got: '%v'", email)
	}
}
