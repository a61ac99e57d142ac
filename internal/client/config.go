package client

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultProtocol      = "https"
	DefaultPort          = 3001
	DefaultSendPath      = "/send"
	DefaultSuccessPolicy = SuccessCountPolicy

	APIProtocol = "http"
	APIPort     = 5000
	APISendPath = "/api/send"
)

// SuccessPolicy decides whether a decoded backend response counts as a delivery.
type SuccessPolicy int

const (
	// StatusPolicy accepts any response whose status is truthy.
	StatusPolicy SuccessPolicy = iota + 1
	// SuccessCountPolicy additionally requires data.successCount > 0.
	SuccessCountPolicy
)

var successPolicyName = map[SuccessPolicy]string{
	StatusPolicy:       "status",
	SuccessCountPolicy: "success_count",
}

func (p SuccessPolicy) String() string {
	if name, ok := successPolicyName[p]; ok {
		return name
	}
	return "unknown"
}

// Decode lets envconfig read the policy from its name.
func (p *SuccessPolicy) Decode(value string) error {
	parsed, err := ParseSuccessPolicy(value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func ParseSuccessPolicy(value string) (SuccessPolicy, error) {
	for policy, name := range successPolicyName {
		if strings.EqualFold(strings.TrimSpace(value), name) {
			return policy, nil
		}
	}
	return 0, fmt.Errorf("unknown success policy %q", value)
}

func (p SuccessPolicy) delivered(status Truthy, anySuccess bool) bool {
	if !status {
		return false
	}
	if p == SuccessCountPolicy {
		return anySuccess
	}
	return true
}

// Variant is a named set of endpoint defaults for one generation of the push backend.
type Variant struct {
	Protocol      string
	Port          int
	SendPath      string
	SuccessPolicy SuccessPolicy
}

var (
	LegacyVariant = Variant{
		Protocol:      DefaultProtocol,
		Port:          DefaultPort,
		SendPath:      DefaultSendPath,
		SuccessPolicy: StatusPolicy,
	}
	APIVariant = Variant{
		Protocol:      APIProtocol,
		Port:          APIPort,
		SendPath:      APISendPath,
		SuccessPolicy: SuccessCountPolicy,
	}
)

func (v Variant) Config(host string) Config {
	return Config{
		Host:          host,
		Protocol:      v.Protocol,
		Port:          v.Port,
		SendPath:      v.SendPath,
		SuccessPolicy: v.SuccessPolicy,
	}
}

type Config struct {
	Host          string        `envconfig:"PUSH_API_HOST"`
	Protocol      string        `envconfig:"PUSH_API_PROTOCOL" default:"https"`
	Port          int           `envconfig:"PUSH_API_PORT" default:"3001"`
	SendPath      string        `envconfig:"PUSH_API_SEND_PATH" default:"/send"`
	SuccessPolicy SuccessPolicy `envconfig:"PUSH_API_SUCCESS_POLICY" default:"success_count"`
}

// DefaultConfig returns a Config for host with every other field at its default.
func DefaultConfig(host string) Config {
	return Config{
		Host:          host,
		Protocol:      DefaultProtocol,
		Port:          DefaultPort,
		SendPath:      DefaultSendPath,
		SuccessPolicy: DefaultSuccessPolicy,
	}
}

func NewConfig() Config {
	var cfg Config
	envconfig.MustProcess("", &cfg)

	return cfg
}

// withDefaults fills the fields whose zero value has no meaning of its own.
// Host, Protocol and Port are never defaulted here: an empty value is a
// configuration error.
func (c Config) withDefaults() Config {
	if c.SendPath == "" {
		c.SendPath = DefaultSendPath
	}
	if c.SuccessPolicy == 0 {
		c.SuccessPolicy = DefaultSuccessPolicy
	}
	return c
}

// APIURL assembles protocol://host:port without validating it.
func (c Config) APIURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Protocol, c.Host, c.Port)
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return &ConfigurationError{Field: "host", Reason: "is required and cannot be empty"}
	}
	if !strings.HasPrefix(c.Host, "[") && strings.Contains(c.Host, ":") {
		return &ConfigurationError{Field: "host", Value: c.Host, Reason: "must not carry a port"}
	}
	if strings.TrimSpace(c.Protocol) == "" {
		return &ConfigurationError{Field: "protocol", Reason: "is required and cannot be empty"}
	}
	if c.Port == 0 {
		return &ConfigurationError{Field: "port", Reason: "is required and cannot be empty"}
	}
	if c.Port < 0 || c.Port > 65535 {
		return &ConfigurationError{Field: "port", Value: strconv.Itoa(c.Port), Reason: "must be between 1 and 65535"}
	}
	if c.SendPath != "" && !strings.HasPrefix(c.SendPath, "/") {
		return &ConfigurationError{Field: "send_path", Value: c.SendPath, Reason: "must start with /"}
	}
	if _, ok := successPolicyName[c.SuccessPolicy]; !ok && c.SuccessPolicy != 0 {
		return &ConfigurationError{Field: "success_policy", Value: c.SuccessPolicy.String(), Reason: "is not supported"}
	}

	raw := c.APIURL()
	u, err := url.Parse(raw)
	if err != nil {
		return &ConfigurationError{Field: "api_url", Value: raw, Reason: "is not a valid URL", Cause: err}
	}
	if !u.IsAbs() || !strings.EqualFold(u.Scheme, c.Protocol) || u.Host == "" ||
		u.Hostname() != strings.Trim(c.Host, "[]") || u.Port() != strconv.Itoa(c.Port) ||
		u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		return &ConfigurationError{Field: "api_url", Value: raw, Reason: "is not a valid absolute URL"}
	}

	return nil
}
