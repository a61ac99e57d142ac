package service

import (
	"context"
	"errors"
	"testing"

	"github.com/koungkub/fcm-push-notification/internal/client"
	mockclient "github.com/koungkub/fcm-push-notification/internal/client/mock"
	"github.com/koungkub/fcm-push-notification/internal/repository"
	mockrepository "github.com/koungkub/fcm-push-notification/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type mocks struct {
	cache      *mockrepository.MockCacheProvider
	persistent *mockrepository.MockPersistentProvider
	sender     *mockclient.MockNotificationSender
}

func newTestService(t *testing.T) (*NotificationService, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		cache:      mockrepository.NewMockCacheProvider(ctrl),
		persistent: mockrepository.NewMockPersistentProvider(ctrl),
		sender:     mockclient.NewMockNotificationSender(ctrl),
	}

	return NewNotificationService(NotificationServiceParams{
		CacheProvider:      m.cache,
		PersistentProvider: m.persistent,
		Sender:             m.sender,
	}), m
}

var errCacheMiss = errors.New("cache miss")

func TestNewNotificationService(t *testing.T) {
	t.Run("creates service with all dependencies", func(t *testing.T) {
		service, m := newTestService(t)

		assert.NotNil(t, service)
		assert.Equal(t, m.cache, service.cacheProvider)
		assert.Equal(t, m.persistent, service.persistentProvider)
		assert.Equal(t, m.sender, service.sender)
	})
}

func TestNotificationService_NotifyRecipient(t *testing.T) {
	msg := Message{
		Title: "Order shipped",
		Body:  "Your order is on its way",
		Data:  map[string]any{"order_id": "42"},
	}
	devices := []repository.DeviceToken{
		{RecipientID: "user-1", Token: "tok1"},
		{RecipientID: "user-1", Token: "tok2"},
	}
	delivery := client.DeliveryData{SuccessCount: 2}

	tests := []struct {
		name          string
		setupMocks    func(m mocks)
		expectedData  client.DeliveryData
		expectedOK    bool
		expectedError error
	}{
		{
			name: "successful send with cache hit",
			setupMocks: func(m mocks) {
				m.cache.EXPECT().Get("user-1").Return(devices, nil)
				m.sender.EXPECT().SendNotification(gomock.Any(), msg.Title, msg.Body, []string{"tok1", "tok2"}, msg.Data).
					Return(delivery, true, nil)
			},
			expectedData: delivery,
			expectedOK:   true,
		},
		{
			name: "successful send with cache miss",
			setupMocks: func(m mocks) {
				m.cache.EXPECT().Get("user-1").Return(nil, errCacheMiss)
				m.persistent.EXPECT().FindByRecipient(gomock.Any(), "user-1").Return(devices, nil)
				m.cache.EXPECT().Set("user-1", devices).Return(nil)
				m.sender.EXPECT().SendNotification(gomock.Any(), msg.Title, msg.Body, []string{"tok1", "tok2"}, msg.Data).
					Return(delivery, true, nil)
			},
			expectedData: delivery,
			expectedOK:   true,
		},
		{
			name: "not delivered is passed through",
			setupMocks: func(m mocks) {
				m.cache.EXPECT().Get("user-1").Return(devices, nil)
				m.sender.EXPECT().SendNotification(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(client.DeliveryData{}, false, nil)
			},
			expectedOK: false,
		},
		{
			name: "recipient without devices",
			setupMocks: func(m mocks) {
				m.cache.EXPECT().Get("user-1").Return(nil, errCacheMiss)
				m.persistent.EXPECT().FindByRecipient(gomock.Any(), "user-1").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrNoDeviceTokens,
		},
		{
			name: "database error",
			setupMocks: func(m mocks) {
				m.cache.EXPECT().Get("user-1").Return(nil, errCacheMiss)
				m.persistent.EXPECT().FindByRecipient(gomock.Any(), "user-1").Return(nil, assert.AnError)
			},
			expectedError: assert.AnError,
		},
		{
			name: "transport error",
			setupMocks: func(m mocks) {
				m.cache.EXPECT().Get("user-1").Return(devices, nil)
				m.sender.EXPECT().SendNotification(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(client.DeliveryData{}, false, &client.TransportError{Op: "post", Cause: assert.AnError})
			},
			expectedError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t)
			tt.setupMocks(m)

			data, ok, err := service.NotifyRecipient(context.Background(), "user-1", msg)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedData, data)
		})
	}
}

func TestNotificationService_NotifyRecipients(t *testing.T) {
	msg := Message{Title: "Sale", Body: "Everything is half off"}

	t.Run("merges and de-duplicates tokens in recipient order", func(t *testing.T) {
		service, m := newTestService(t)

		m.cache.EXPECT().Get("user-1").Return([]repository.DeviceToken{{Token: "tok1"}, {Token: "shared"}}, nil)
		m.cache.EXPECT().Get("user-2").Return(nil, errCacheMiss)
		m.persistent.EXPECT().FindByRecipient(gomock.Any(), "user-2").
			Return([]repository.DeviceToken{{Token: "shared"}, {Token: "tok3"}}, nil)
		m.cache.EXPECT().Set("user-2", gomock.Any()).Return(nil)
		m.sender.EXPECT().SendNotification(gomock.Any(), "Sale", "Everything is half off", []string{"tok1", "shared", "tok3"}, gomock.Nil()).
			Return(client.DeliveryData{SuccessCount: 3}, true, nil)

		data, ok, err := service.NotifyRecipients(context.Background(), []string{"user-1", "user-2"}, msg)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 3, data.SuccessCount)
	})

	t.Run("skips recipients without devices", func(t *testing.T) {
		service, m := newTestService(t)

		m.cache.EXPECT().Get("user-1").Return([]repository.DeviceToken{{Token: "tok1"}}, nil)
		m.cache.EXPECT().Get("ghost").Return(nil, errCacheMiss)
		m.persistent.EXPECT().FindByRecipient(gomock.Any(), "ghost").Return(nil, gorm.ErrRecordNotFound)
		m.sender.EXPECT().SendNotification(gomock.Any(), gomock.Any(), gomock.Any(), []string{"tok1"}, gomock.Any()).
			Return(client.DeliveryData{SuccessCount: 1}, true, nil)

		_, ok, err := service.NotifyRecipients(context.Background(), []string{"user-1", "ghost"}, msg)

		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("fails when no recipient has devices", func(t *testing.T) {
		service, m := newTestService(t)

		m.cache.EXPECT().Get(gomock.Any()).Return(nil, errCacheMiss).Times(2)
		m.persistent.EXPECT().FindByRecipient(gomock.Any(), gomock.Any()).Return(nil, gorm.ErrRecordNotFound).Times(2)

		_, ok, err := service.NotifyRecipients(context.Background(), []string{"ghost-1", "ghost-2"}, msg)

		assert.ErrorIs(t, err, ErrNoDeviceTokens)
		assert.False(t, ok)
	})

	t.Run("lookup failure aborts the send", func(t *testing.T) {
		service, m := newTestService(t)

		m.cache.EXPECT().Get("user-1").Return(nil, errCacheMiss)
		m.persistent.EXPECT().FindByRecipient(gomock.Any(), "user-1").Return(nil, assert.AnError)

		_, _, err := service.NotifyRecipients(context.Background(), []string{"user-1"}, msg)

		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestNotificationService_RegisterDevice(t *testing.T) {
	tests := []struct {
		name          string
		platform      repository.Platform
		setupMocks    func(m mocks)
		expectedError error
	}{
		{
			name:     "stores the device and invalidates the cache",
			platform: repository.PlatformAndroid,
			setupMocks: func(m mocks) {
				m.persistent.EXPECT().Create(gomock.Any(), &repository.DeviceToken{
					RecipientID: "user-1",
					Token:       "tok1",
					Platform:    repository.PlatformAndroid,
				}).Return(nil)
				m.cache.EXPECT().Delete("user-1")
			},
		},
		{
			name:     "already registered token",
			platform: repository.PlatformIOS,
			setupMocks: func(m mocks) {
				m.persistent.EXPECT().Create(gomock.Any(), gomock.Any()).Return(gorm.ErrDuplicatedKey)
				m.cache.EXPECT().Delete("user-1")
			},
		},
		{
			name:     "database error keeps the cache",
			platform: repository.PlatformWeb,
			setupMocks: func(m mocks) {
				m.persistent.EXPECT().Create(gomock.Any(), gomock.Any()).Return(assert.AnError)
			},
			expectedError: assert.AnError,
		},
		{
			name:          "unknown platform",
			platform:      "blackberry",
			setupMocks:    func(m mocks) {},
			expectedError: ErrInvalidPlatform,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t)
			tt.setupMocks(m)

			err := service.RegisterDevice(context.Background(), "user-1", "tok1", tt.platform)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNotificationService_RegisterDeviceDuringLookup(t *testing.T) {
	service, m := newTestService(t)
	stale := []repository.DeviceToken{{RecipientID: "user-1", Token: "old"}}

	gomock.InOrder(
		m.cache.EXPECT().Get("user-1").Return(nil, errCacheMiss),
		m.persistent.EXPECT().FindByRecipient(gomock.Any(), "user-1").
			DoAndReturn(func(ctx context.Context, recipientID string) ([]repository.DeviceToken, error) {
				// a registration lands after the read but before the cache write
				require.NoError(t, service.RegisterDevice(ctx, recipientID, "new", repository.PlatformIOS))
				return stale, nil
			}),
		m.cache.EXPECT().Set("user-1", stale).Return(nil),
		m.cache.EXPECT().Delete("user-1"),
	)
	m.persistent.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.cache.EXPECT().Delete("user-1")
	m.sender.EXPECT().SendNotification(gomock.Any(), gomock.Any(), gomock.Any(), []string{"old"}, gomock.Any()).
		Return(client.DeliveryData{SuccessCount: 1}, true, nil)

	_, ok, err := service.NotifyRecipient(context.Background(), "user-1", Message{Title: "Hi", Body: "There"})

	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNotificationService_LookupWithoutRegistrationKeepsCache(t *testing.T) {
	service, m := newTestService(t)
	devices := []repository.DeviceToken{{RecipientID: "user-1", Token: "tok1"}}

	m.cache.EXPECT().Get("user-1").Return(nil, errCacheMiss)
	m.persistent.EXPECT().FindByRecipient(gomock.Any(), "user-1").Return(devices, nil)
	m.cache.EXPECT().Set("user-1", devices).Return(nil)
	m.cache.EXPECT().Delete(gomock.Any()).Times(0)
	m.sender.EXPECT().SendNotification(gomock.Any(), gomock.Any(), gomock.Any(), []string{"tok1"}, gomock.Any()).
		Return(client.DeliveryData{SuccessCount: 1}, true, nil)

	_, _, err := service.NotifyRecipient(context.Background(), "user-1", Message{Title: "Hi", Body: "There"})

	require.NoError(t, err)
}
