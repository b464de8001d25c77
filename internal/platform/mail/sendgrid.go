package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/shepherd-backend/internal/platform/logger"
)

const defaultSendGridBaseURL = "https://api.sendgrid.com"

type sendGrid struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
	// sleep is swapped out in tests.
	sleep func(context.Context, time.Duration) error
}

// New returns a SendGrid sender, or NotConfigured when cfg has no API key.
func New(log *logger.Logger, cfg Config) Sender {
	if strings.TrimSpace(cfg.APIKey) == "" {
		log.Warn("SENDGRID_API_KEY not set; email sending disabled")
		return NotConfigured()
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultSendGridBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &sendGrid{
		log:        log.With("client", "SendGridClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		sleep:      sleepCtx,
	}
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type personalization struct {
	To []Address `json:"to"`
}

type mailContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type mailSendRequest struct {
	Personalizations []personalization `json:"personalizations"`
	From             Address           `json:"from"`
	ReplyTo          *Address          `json:"reply_to,omitempty"`
	Subject          string            `json:"subject"`
	Content          []mailContent     `json:"content"`
	Categories       []string          `json:"categories,omitempty"`
}

type errorResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// HTTPError is a non-2xx response from SendGrid.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("sendgrid http %d: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func (s *sendGrid) Send(ctx context.Context, msg Message) (*Result, error) {
	if strings.TrimSpace(msg.From.Email) == "" {
		msg.From = Address{Email: s.cfg.DefaultFromEmail, Name: s.cfg.DefaultFromName}
	}
	msg.Subject = strings.TrimSpace(msg.Subject)
	switch {
	case strings.TrimSpace(msg.From.Email) == "":
		return nil, fmt.Errorf("sendgrid: from address required (or set SENDGRID_FROM_EMAIL)")
	case len(msg.To) == 0:
		return nil, fmt.Errorf("sendgrid: at least one recipient required")
	case msg.Subject == "":
		return nil, fmt.Errorf("sendgrid: subject required")
	}

	var contents []mailContent
	if t := strings.TrimSpace(msg.Text); t != "" {
		contents = append(contents, mailContent{Type: "text/plain", Value: t})
	}
	if h := strings.TrimSpace(msg.HTML); h != "" {
		contents = append(contents, mailContent{Type: "text/html", Value: h})
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("sendgrid: text or html content required")
	}

	// One personalization per recipient keeps addresses out of each other's
	// To header.
	personalizations := make([]personalization, 0, len(msg.To))
	for _, addr := range msg.To {
		personalizations = append(personalizations, personalization{To: []Address{addr}})
	}

	raw, err := json.Marshal(mailSendRequest{
		Personalizations: personalizations,
		From:             msg.From,
		ReplyTo:          msg.ReplyTo,
		Subject:          msg.Subject,
		Content:          contents,
		Categories:       msg.Categories,
	})
	if err != nil {
		return nil, fmt.Errorf("encode mail send: %w", err)
	}

	backoff := time.Second
	for attempt := 0; ; attempt++ {
		res, retryAfter, err := s.doOnce(ctx, raw)
		if err == nil {
			return res, nil
		}
		var he *HTTPError
		if !errors.As(err, &he) || !he.retryable() || attempt >= s.cfg.MaxRetries {
			return nil, err
		}
		wait := backoff
		if retryAfter > 0 {
			wait = min(retryAfter, 10*time.Second)
		}
		s.log.Warn("SendGrid request retrying", "attempt", attempt+1, "max_retries", s.cfg.MaxRetries, "sleep", wait.String(), "error", err)
		if err := s.sleep(ctx, wait); err != nil {
			return nil, err
		}
		backoff *= 2
	}
}

func (s *sendGrid) doOnce(ctx context.Context, body []byte) (*Result, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("sendgrid request: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		he := &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil && len(er.Errors) > 0 && er.Errors[0].Message != "" {
			he.Message = er.Errors[0].Message
		}
		var retryAfter time.Duration
		if secs, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("Retry-After"))); err == nil && secs > 0 {
			retryAfter = time.Duration(secs) * time.Second
		}
		return nil, retryAfter, he
	}
	return &Result{
		StatusCode: resp.StatusCode,
		MessageID:  strings.TrimSpace(resp.Header.Get("X-Message-Id")),
	}, 0, nil
}
