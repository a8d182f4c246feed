package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cv-editor/internal/model"
)

var ErrNotFound = errors.New("backend: not found")

// APIError is a non-2xx reply or a reply with success=false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Status)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client calls the CV builder backend. Requests are never retried: a
// failed call is reported to the user who decides whether to try again.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// fetch sends one request and returns the body of a 2xx reply. Other
// statuses become an *APIError carrying the envelope's message, if any.
func (c *Client) fetch(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env envelope
		if json.Unmarshal(rb, &env) == nil {
			apiErr.Message = env.Error
		}
		return nil, apiErr
	}
	return rb, nil
}

// do sends one request and decodes a JSON reply into out.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	rb, err := c.fetch(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rb, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if f, ok := out.(interface{ failure() (bool, string) }); ok {
		if failed, msg := f.failure(); failed {
			return &APIError{Status: http.StatusOK, Message: msg}
		}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

// SaveCV persists doc. The reply carries the cv id assigned to new CVs.
func (c *Client) SaveCV(ctx context.Context, doc *model.CVDocument) (*SaveResult, error) {
	var out SaveResult
	if err := c.doJSON(ctx, http.MethodPost, "/save_cv", doc, &out); err != nil {
		return nil, fmt.Errorf("save cv: %w", err)
	}
	return &out, nil
}

func (c *Client) GetCV(ctx context.Context, id int) (*StoredCV, error) {
	var out getCVResponse
	if err := c.doJSON(ctx, http.MethodGet, "/get_cv/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get cv %d: %w", id, err)
	}
	return &out.Data, nil
}

func (c *Client) DeleteCV(ctx context.Context, id int) error {
	var out envelope
	if err := c.doJSON(ctx, http.MethodDelete, "/delete_cv/"+strconv.Itoa(id), nil, &out); err != nil {
		return fmt.Errorf("delete cv %d: %w", id, err)
	}
	return nil
}

func (c *Client) TemplateFields(ctx context.Context, templateID int) (*TemplateFields, error) {
	var out TemplateFields
	if err := c.doJSON(ctx, http.MethodGet, "/get_template_fields/"+strconv.Itoa(templateID), nil, &out); err != nil {
		return nil, fmt.Errorf("get template fields %d: %w", templateID, err)
	}
	return &out, nil
}

func (c *Client) Templates(ctx context.Context) ([]Template, error) {
	var out templatesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/get_templates", nil, &out); err != nil {
		return nil, fmt.Errorf("get templates: %w", err)
	}
	return out.Templates, nil
}

// Recommend forwards a prompt with the current CV and returns the raw
// recommendation text.
func (c *Client) Recommend(ctx context.Context, in RecommendRequest) (string, error) {
	var out recommendResponse
	if err := c.doJSON(ctx, http.MethodPost, "/ai_recommend", in, &out); err != nil {
		return "", fmt.Errorf("ai recommend: %w", err)
	}
	return out.Recommendation, nil
}

// UploadProfileImage posts the image as the multipart field profile_image.
func (c *Client) UploadProfileImage(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("profile_image", filename)
	if err != nil {
		return nil, fmt.Errorf("upload profile image: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("upload profile image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("upload profile image: %w", err)
	}

	var out UploadResult
	if err := c.do(ctx, http.MethodPost, "/dashboard/upload_profile_image", &buf, mw.FormDataContentType(), &out); err != nil {
		return nil, fmt.Errorf("upload profile image: %w", err)
	}
	return &out, nil
}

// Languages searches the language vocabulary. An empty input lists the
// first page.
func (c *Client) Languages(ctx context.Context, input string) ([]Option, error) {
	return c.options(ctx, "/get_languages", input)
}

func (c *Client) Technologies(ctx context.Context, input string) ([]Option, error) {
	return c.options(ctx, "/get_technologies", input)
}

func (c *Client) options(ctx context.Context, path, input string) ([]Option, error) {
	var out []Option
	if err := c.doJSON(ctx, http.MethodGet, path+"?input="+url.QueryEscape(input), nil, &out); err != nil {
		return nil, fmt.Errorf("get options %s: %w", path, err)
	}
	return out, nil
}

// SampleCV downloads the sample CV file as raw JSON.
func (c *Client) SampleCV(ctx context.Context) ([]byte, error) {
	b, err := c.fetch(ctx, http.MethodGet, "/samples/json-sample-file", nil, "")
	if err != nil {
		return nil, fmt.Errorf("get sample cv: %w", err)
	}
	return b, nil
}
