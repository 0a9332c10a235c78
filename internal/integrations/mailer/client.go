package mailer

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-GymBooking/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var confirmationTemplate = template.Must(template.ParseFS(templatesFS, "templates/confirmation.html"))

// Client клиент почтового HTTP API (Resend)
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	siteName   string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр почтового клиента
func NewClient(baseURL, apiKey, from, siteName string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		from:     from,
		siteName: siteName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет письмо-подтверждение со ссылкой отмены
func (c *Client) SendBookingConfirmation(ctx context.Context, n *domain.BookingNotification) error {
	if n.ClientEmail == "" {
		return ErrNoRecipient
	}

	html, err := RenderConfirmation(c.siteName, n)
	if err != nil {
		return err
	}

	date := n.Date.Format(domain.DateFormat)
	id, err := c.send(ctx, &SendEmailRequest{
		From:    c.from,
		To:      []string{n.ClientEmail},
		Subject: fmt.Sprintf("Booking Confirmed - %s on %s", n.SlotName, date),
		HTML:    html,
	})
	if err != nil {
		return err
	}

	c.log.Info("SendBookingConfirmation: sent for booking id=%d, message id=%s", n.BookingID, id)
	return nil
}

// RenderConfirmation собирает HTML письма; значения экранируются шаблоном
func RenderConfirmation(siteName string, n *domain.BookingNotification) (string, error) {
	var buf bytes.Buffer
	err := confirmationTemplate.Execute(&buf, confirmationData{
		SiteName:   siteName,
		ClientName: n.ClientName,
		Date:       n.Date.Format("Monday, 2 January 2006"),
		SlotName:   n.SlotName,
		SlotTime:   n.SlotTime,
		CancelURL:  n.CancelURL(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: render template: %v", ErrInternal, err)
	}
	return buf.String(), nil
}

func (c *Client) send(ctx context.Context, payload *SendEmailRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK:
		// Продолжаем обработку
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var apiErr ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return "", fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, apiErr.Message)
	default:
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var out SendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return out.ID, nil
}
