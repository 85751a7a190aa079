package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTwilioBaseURL = "https://api.twilio.com"
	defaultCountryCode   = "+91"
	messageTemplate      = "Your verification code is %s. It expires in %d minutes."
)

type TwilioConfig struct {
	AccountSID  string
	AuthToken   string
	FromNumber  string
	CountryCode string
	BaseURL     string
	CodeTTL     time.Duration
}

type TwilioSender struct {
	cfg        TwilioConfig
	httpClient *http.Client
}

func NewTwilioSender(cfg TwilioConfig, httpClient *http.Client) (*TwilioSender, error) {
	if cfg.AccountSID == "" {
		return nil, fmt.Errorf("twilio account sid not set")
	}
	if cfg.AuthToken == "" {
		return nil, fmt.Errorf("twilio auth token not set")
	}
	if cfg.FromNumber == "" {
		return nil, fmt.Errorf("twilio from number not set")
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = defaultCountryCode
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTwilioBaseURL
	}
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 5 * time.Minute
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &TwilioSender{cfg: cfg, httpClient: httpClient}, nil
}

// Send delivers the code to a national number in the configured country.
func (t *TwilioSender) Send(ctx context.Context, phone, code string) error {
	apiURL := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", strings.TrimRight(t.cfg.BaseURL, "/"), t.cfg.AccountSID)

	form := url.Values{}
	form.Set("To", t.cfg.CountryCode+phone)
	form.Set("From", t.cfg.FromNumber)
	form.Set("Body", fmt.Sprintf(messageTemplate, code, int(t.cfg.CodeTTL.Minutes())))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create twilio request: %w", err)
	}
	req.SetBasicAuth(t.cfg.AccountSID, t.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("twilio error %s: %s", resp.Status, string(body))
	}
	return nil
}

// LogSender writes codes to the log instead of sending them. Development only.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, phone, code string) error {
	s.logger.Info("otp generated", zap.String("phone", phone), zap.String("code", code))
	return nil
}
