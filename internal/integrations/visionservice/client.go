package visionservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с VisionService - сервисом анализа фотографий автомобилей
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента VisionService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// AnalyzeCarPhoto отправляет фотографию автомобиля на анализ
func (c *Client) AnalyzeCarPhoto(ctx context.Context, photoURL string) (*Analysis, error) {
	url := fmt.Sprintf("%s/internal/vision/analyze", c.baseURL)

	payload, err := json.Marshal(AnalyzeRequest{PhotoURL: photoURL})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid photo URL", ErrInvalidResponse)
	case http.StatusUnprocessableEntity:
		return nil, ErrPhotoNotAnalyzable
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var analysis Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &analysis, nil
}

// AnalyzeCarPhotoWithGracefulDegradation анализирует фотографию с graceful degradation
// При недоступности VisionService возвращает ErrServiceDegraded: карточка автомобиля
// публикуется без AI-сводки, сводку можно добавить позже при обновлении
func (c *Client) AnalyzeCarPhotoWithGracefulDegradation(ctx context.Context, photoURL string) (*Analysis, error) {
	c.log.Info("Analyzing car photo: %s", photoURL)

	analysis, err := c.AnalyzeCarPhoto(ctx, photoURL)
	if err != nil {
		// Неразбираемая фотография - бизнес-ошибка, пробрасываем её дальше
		if err == ErrPhotoNotAnalyzable {
			c.log.Info("Photo not analyzable: %s", photoURL)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга и т.д.)
		// применяем graceful degradation - возвращаем ErrServiceDegraded с контекстом
		c.log.Error("VisionService unavailable, applying graceful degradation for photo=%s: %v", photoURL, err)
		return nil, fmt.Errorf("%w: photo=%s, error=%v", ErrServiceDegraded, photoURL, err)
	}

	c.log.Info("Photo analyzed: condition=%s, defects=%d", analysis.Condition, len(analysis.Defects))
	return analysis, nil
}
