package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/koungkub/fcm-push-notification/internal/client"
	"github.com/koungkub/fcm-push-notification/internal/repository"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var Module = fx.Module("service",
	fx.Provide(
		fx.Annotate(
			NewNotificationService,
			fx.As(new(NotificationProvider)),
		),
	),
)

// lookupConcurrency bounds the token lookups of one NotifyRecipients call.
const lookupConcurrency = 8

var (
	ErrNoDeviceTokens  = errors.New("no device tokens registered")
	ErrInvalidPlatform = errors.New("invalid device platform")
)

//go:generate mockgen -package mockservice -destination ./mock/mockservice.go . NotificationProvider
type NotificationProvider interface {
	NotifyRecipient(ctx context.Context, recipientID string, msg Message) (client.DeliveryData, bool, error)
	NotifyRecipients(ctx context.Context, recipientIDs []string, msg Message) (client.DeliveryData, bool, error)
	RegisterDevice(ctx context.Context, recipientID string, token string, platform repository.Platform) error
}

type Message struct {
	Title string
	Body  string
	Data  map[string]any
}

var _ NotificationProvider = (*NotificationService)(nil)

type NotificationService struct {
	cacheProvider      repository.CacheProvider
	persistentProvider repository.PersistentProvider
	sender             client.NotificationSender

	// registrations counts RegisterDevice calls so a lookup that overlapped
	// one does not leave its pre-registration device list cached.
	registrations atomic.Uint64
}

type NotificationServiceParams struct {
	fx.In

	CacheProvider      repository.CacheProvider
	PersistentProvider repository.PersistentProvider
	Sender             client.NotificationSender
}

func NewNotificationService(params NotificationServiceParams) *NotificationService {
	return &NotificationService{
		cacheProvider:      params.CacheProvider,
		persistentProvider: params.PersistentProvider,
		sender:             params.Sender,
	}
}

func (s *NotificationService) NotifyRecipient(ctx context.Context, recipientID string, msg Message) (client.DeliveryData, bool, error) {
	devices, err := s.getDevices(ctx, recipientID)
	if err != nil {
		return client.DeliveryData{}, false, err
	}

	return s.sender.SendNotification(ctx, msg.Title, msg.Body, repository.Tokens(devices), msg.Data)
}

// NotifyRecipients sends one notification to the devices of every recipient.
// Recipients without devices are skipped; ErrNoDeviceTokens is returned only
// when none of them has a device.
func (s *NotificationService) NotifyRecipients(ctx context.Context, recipientIDs []string, msg Message) (client.DeliveryData, bool, error) {
	lookups := make([][]repository.DeviceToken, len(recipientIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	for i, recipientID := range recipientIDs {
		g.Go(func() error {
			devices, err := s.getDevices(gctx, recipientID)
			if errors.Is(err, ErrNoDeviceTokens) {
				return nil
			}
			if err != nil {
				return err
			}
			lookups[i] = devices
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return client.DeliveryData{}, false, err
	}

	seen := make(map[string]struct{})
	var tokens []string
	for _, devices := range lookups {
		for _, device := range devices {
			if _, ok := seen[device.Token]; ok {
				continue
			}
			seen[device.Token] = struct{}{}
			tokens = append(tokens, device.Token)
		}
	}
	if len(tokens) == 0 {
		return client.DeliveryData{}, false, ErrNoDeviceTokens
	}

	return s.sender.SendNotification(ctx, msg.Title, msg.Body, tokens, msg.Data)
}

// RegisterDevice stores the token and drops the recipient's cached devices.
// Registering the same token twice is not an error.
func (s *NotificationService) RegisterDevice(ctx context.Context, recipientID string, token string, platform repository.Platform) error {
	if !platform.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPlatform, platform)
	}

	err := s.persistentProvider.Create(ctx, &repository.DeviceToken{
		RecipientID: recipientID,
		Token:       token,
		Platform:    platform,
	})
	if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	s.registrations.Add(1)
	s.cacheProvider.Delete(recipientID)
	return nil
}

func (s *NotificationService) getDevices(ctx context.Context, recipientID string) ([]repository.DeviceToken, error) {
	devices, err := s.cacheProvider.Get(recipientID)
	if err == nil {
		return devices, nil
	}

	generation := s.registrations.Load()
	devices, err = s.persistentProvider.FindByRecipient(ctx, recipientID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("recipient %s: %w", recipientID, ErrNoDeviceTokens)
	}
	if err != nil {
		return nil, err
	}

	_ = s.cacheProvider.Set(recipientID, devices)
	if s.registrations.Load() != generation {
		s.cacheProvider.Delete(recipientID)
	}
	return devices, nil
}
