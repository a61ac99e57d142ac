package handler

type NotifyRequest struct {
	Title string         `json:"title" binding:"required"`
	Body  string         `json:"body" binding:"required"`
	Data  map[string]any `json:"data"`
}

type NotifyManyRequest struct {
	Recipients []string       `json:"recipients" binding:"required,min=1,dive,required"`
	Title      string         `json:"title" binding:"required"`
	Body       string         `json:"body" binding:"required"`
	Data       map[string]any `json:"data"`
}

type RegisterDeviceRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform" binding:"required,oneof=android ios web"`
}

// SendRequest is the push backend's wire format.
type SendRequest struct {
	Title     string         `json:"title" binding:"required"`
	Body      string         `json:"body" binding:"required"`
	FCMTokens []string       `json:"fcm_tokens" binding:"required,min=1,dive,required"`
	Data      map[string]any `json:"data"`
}
