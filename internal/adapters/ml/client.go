package ml

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"raphavets/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("ml client not configured")
)

// Config del cliente del microservicio de predicción de raza.
// BaseURL normalmente viene de config (ML_URL), default http://localhost:5001.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	http    *httpclient.Client
	baseURL string
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	hc, err := httpclient.NewWithBaseURL(baseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:    hc,
		baseURL: baseURL,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != ""
}

// PredictBreed reenvía la imagen al endpoint del modelo y devuelve el JSON
// de respuesta tal cual (el proxy no lo interpreta).
func (c *Client) PredictBreed(ctx context.Context, filename string, file io.Reader) ([]byte, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	return c.http.DoMultipartFile(ctx, http.MethodPost, "/breed/predict", "file", filename, file)
}
