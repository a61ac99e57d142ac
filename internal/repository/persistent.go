package repository

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -package mockrepository -destination ./mock/mockpersistent.go . PersistentProvider
type PersistentProvider interface {
	FindByRecipient(ctx context.Context, recipientID string) ([]DeviceToken, error)
	Create(ctx context.Context, device *DeviceToken) error
}

var _ PersistentProvider = (*Persistent)(nil)

type Persistent struct {
	conn *gorm.DB
}

type PersistentParams struct {
	fx.In

	Config PersistentConfig
}

func NewPersistent(lc fx.Lifecycle, params PersistentParams) (*Persistent, error) {
	conn, err := gorm.Open(postgres.Open(params.Config.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if params.Config.AutoMigrate {
		if err := conn.AutoMigrate(&DeviceToken{}); err != nil {
			return nil, fmt.Errorf("migrate device tokens: %w", err)
		}
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})

	return &Persistent{
		conn: conn,
	}, nil
}

type PersistentConfig struct {
	Host        string `envconfig:"DB_HOST" required:"true"`
	Port        string `envconfig:"DB_PORT" required:"true"`
	Name        string `envconfig:"DB_NAME" required:"true"`
	Username    string `envconfig:"DB_USERNAME" required:"true"`
	Password    string `envconfig:"DB_PASSWORD" required:"true"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

func NewPersistentConfig() PersistentConfig {
	var cfg PersistentConfig
	envconfig.MustProcess("", &cfg)

	return cfg
}

func (c PersistentConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host,
		c.Username,
		c.Password,
		c.Name,
		c.Port,
		c.SSLMode,
	)
}

// FindByRecipient returns gorm.ErrRecordNotFound when the recipient has no
// registered device.
func (p *Persistent) FindByRecipient(ctx context.Context, recipientID string) ([]DeviceToken, error) {
	devices, err := gorm.
		G[DeviceToken](p.conn).
		Where("recipient_id = ?", recipientID).
		Order("id").
		Find(ctx)
	if err != nil {
		return []DeviceToken{}, err
	}
	if len(devices) == 0 {
		return []DeviceToken{}, gorm.ErrRecordNotFound
	}

	return devices, nil
}

// Create returns gorm.ErrDuplicatedKey when the token is already registered
// for the recipient.
func (p *Persistent) Create(ctx context.Context, device *DeviceToken) error {
	return gorm.G[DeviceToken](p.conn).Create(ctx, device)
}
