package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/arbrands/storefront-backend/internal/auth"
	"github.com/arbrands/storefront-backend/internal/products"
	"github.com/arbrands/storefront-backend/pkg/types"
)

// apiClient is a thin HTTP client over the storefront API. Responses arrive
// in the standard envelope; the error branch carries the coded payload.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient(baseURL, token string) *apiClient {
	return &apiClient{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type successEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error types.APIError `json:"error"`
}

func (c *apiClient) Register(email, password string) (*auth.AuthResponse, error) {
	return c.authRequest("/api/v1/auth/register", email, password)
}

func (c *apiClient) Login(email, password string) (*auth.AuthResponse, error) {
	return c.authRequest("/api/v1/auth/login", email, password)
}

func (c *apiClient) authRequest(path, email, password string) (*auth.AuthResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	var result auth.AuthResponse
	if err := c.do(http.MethodPost, path, nil, payload, &result); err != nil {
		return nil, err
	}
	c.token = result.Token
	return &result, nil
}

func (c *apiClient) Profile() (*auth.AuthResponse, error) {
	var result auth.AuthResponse
	if err := c.do(http.MethodGet, "/api/v1/auth/profile", nil, nil, &result.Account); err != nil {
		return nil, err
	}
	result.Token = c.token
	return &result, nil
}

func (c *apiClient) ListProducts(search string) ([]products.ProductDTO, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	query.Set("available", "true")

	var result []products.ProductDTO
	if err := c.do(http.MethodGet, "/api/v1/products", query, nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *apiClient) do(method, path string, query url.Values, body, dest any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
			return fmt.Errorf("%s", envelope.Error.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if dest == nil {
		return nil
	}
	var envelope successEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return json.Unmarshal(envelope.Data, dest)
}
