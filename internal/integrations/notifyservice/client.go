package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с сервисом уведомлений
// Сервис уведомлений отправляет WhatsApp сообщения через провайдера;
// наш клиент только передаёт готовый текст
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса уведомлений
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет уведомление о созданной записи
func (c *Client) SendBookingConfirmation(ctx context.Context, confirmation *BookingConfirmation) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-confirmation", c.baseURL)

	payload, err := json.Marshal(confirmation)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal confirmation: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// SendBookingConfirmationWithGracefulDegradation отправляет уведомление с graceful degradation
// Недоступность сервиса уведомлений не должна ломать создание записи:
// вместо ошибки клиента возвращается ErrServiceDegraded, который вызывающий код только логирует
func (c *Client) SendBookingConfirmationWithGracefulDegradation(ctx context.Context, confirmation *BookingConfirmation) error {
	c.log.Info("Sending booking confirmation for appointment_id=%s", confirmation.AppointmentID)

	if err := c.SendBookingConfirmation(ctx, confirmation); err != nil {
		c.log.Error("NotifyService unavailable, skipping notification for appointment_id=%s: %v",
			confirmation.AppointmentID, err)
		return fmt.Errorf("%w: appointment_id=%s, error=%v", ErrServiceDegraded, confirmation.AppointmentID, err)
	}

	c.log.Info("Booking confirmation sent for appointment_id=%s", confirmation.AppointmentID)
	return nil
}
