package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ahmed-Morsi888/Doctor-system/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// RecordsAPIClient 后端记录 API 客户端（仅创建），不重试
type RecordsAPIClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewRecordsAPIClient 创建客户端；token 非空时附带 Bearer 认证头
func NewRecordsAPIClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *RecordsAPIClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}
	return &RecordsAPIClient{httpClient: client, logger: logger}
}

// CreatePatient POST /patients
func (c *RecordsAPIClient) CreatePatient(ctx context.Context, fields PatientFields) (*domain.Patient, error) {
	var out domain.Patient
	if err := c.post(ctx, "/patients", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateReservation POST /reservations
func (c *RecordsAPIClient) CreateReservation(ctx context.Context, fields ReservationFields) (*domain.Reservation, error) {
	var out domain.Reservation
	if err := c.post(ctx, "/reservations", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RecordsAPIClient) post(ctx context.Context, path string, body, result any) error {
	c.logger.Debug("Calling records API", zap.String("path", path))

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(path)
	if err != nil {
		c.logger.Error("Records API call failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: POST %s: %v", ErrNetwork, path, err)
	}
	if resp.IsError() {
		c.logger.Error("Records API returned error",
			zap.String("path", path),
			zap.Int("status_code", resp.StatusCode()),
		)
		return fmt.Errorf("%w: POST %s: status %d", ErrNetwork, path, resp.StatusCode())
	}
	return nil
}
