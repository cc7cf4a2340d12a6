// Package cloudinary hosts menu images on Cloudinary through its signed
// upload API.
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1" //nolint:gosec // Cloudinary request signatures are SHA-1
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"foodorder/internal/pkg/errs"
)

const DefaultBaseURL = "https://api.cloudinary.com"

type Config struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Client implements ports.ImageStore.
type Client struct {
	cfg        Config
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(cfg Config, timeout time.Duration) (*Client, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errs.NewValueIsRequiredError("cloudinary credentials")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}, nil
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	params := map[string]string{"timestamp": c.timestamp()}
	if c.cfg.Folder != "" {
		params["folder"] = c.cfg.Folder
	}

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	for k, v := range c.sign(params) {
		if err := form.WriteField(k, v); err != nil {
			return "", err
		}
	}
	part, err := form.CreateFormFile("file", path.Base(filename))
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(part, content); err != nil {
		return "", err
	}
	if err = form.Close(); err != nil {
		return "", err
	}

	var resp uploadResponse
	if err = c.post(ctx, "upload", form.FormDataContentType(), &body, &resp); err != nil {
		return "", err
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload returned no url")
	}
	return resp.SecureURL, nil
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Delete removes an image by the URL Upload returned. Images that are
// already gone are not an error.
func (c *Client) Delete(ctx context.Context, imageURL string) error {
	publicID, err := PublicID(imageURL)
	if err != nil {
		return err
	}

	form := url.Values{}
	for k, v := range c.sign(map[string]string{"public_id": publicID, "timestamp": c.timestamp()}) {
		form.Set(k, v)
	}

	var resp destroyResponse
	err = c.post(ctx, "destroy", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &resp)
	if err != nil {
		return err
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, resp.Result)
	}
	return nil
}

// PublicID extracts the asset id from a delivery URL such as
// https://res.cloudinary.com/<cloud>/image/upload/v123/menu/pizza.png.
func PublicID(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause("imageUrl", err)
	}

	_, rest, found := strings.Cut(u.Path, "/upload/")
	if !found || rest == "" {
		return "", errs.NewValueIsInvalidErrorWithCause("imageUrl", fmt.Errorf("%q is not a cloudinary upload url", imageURL))
	}

	segments := strings.Split(rest, "/")
	if len(segments) > 1 && isVersion(segments[0]) {
		segments = segments[1:]
	}
	id := strings.Join(segments, "/")
	return strings.TrimSuffix(id, path.Ext(id)), nil
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	_, err := strconv.ParseUint(segment[1:], 10, 64)
	return err == nil
}

func (c *Client) post(ctx context.Context, action, contentType string, body io.Reader, out any) error {
	endpoint := fmt.Sprintf("%s/v1_1/%s/image/%s", c.cfg.BaseURL, c.cfg.CloudName, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("cloudinary %s responded with %s: %s", action, resp.Status, bytes.TrimSpace(msg))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) timestamp() string {
	return strconv.FormatInt(c.now().Unix(), 10)
}

// sign adds api_key and signature to params. The signature is the SHA-1 of
// the sorted key=value pairs joined by '&', followed by the API secret.
func (c *Client) sign(params map[string]string) map[string]string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret)) //nolint:gosec // required by the API

	signed := make(map[string]string, len(params)+2)
	for k, v := range params {
		signed[k] = v
	}
	signed["api_key"] = c.cfg.APIKey
	signed["signature"] = hex.EncodeToString(sum[:])
	return signed
}
