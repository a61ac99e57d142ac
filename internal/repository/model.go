package repository

import "gorm.io/gorm"

type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWeb     Platform = "web"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformAndroid, PlatformIOS, PlatformWeb:
		return true
	}
	return false
}

// DeviceToken is one FCM registration token owned by a recipient.
type DeviceToken struct {
	gorm.Model

	RecipientID string   `gorm:"uniqueIndex:idx_recipient_token;not null"`
	Token       string   `gorm:"uniqueIndex:idx_recipient_token;not null"`
	Platform    Platform `gorm:"not null"`
}

// Tokens returns the FCM tokens of devices in order.
func Tokens(devices []DeviceToken) []string {
	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.Token)
	}
	return tokens
}
