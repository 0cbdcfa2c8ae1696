package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"novavision/internal/device"
	"novavision/internal/system"
)

// DefaultHost is the backend the CLI talks to unless --host overrides it.
const DefaultHost = "https://alfa.suite.novavision.ai/"

const (
	registerPath   = "api/device/data/register-device"
	initializePath = "api/device/data/initialize-device"
	getServerPath  = "api/device/data/get-server"
	getFilePath    = "api/storage/default/get-file"
)

// Client talks to the NovaVision backend. All requests authenticate with an
// access-token query parameter: the user token for registration, the device
// token afterwards.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
}

// NewClient creates a backend client for the given host URL.
func NewClient(host string, logger *slog.Logger) *Client {
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}
	return &Client{
		baseURL: host,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		logger:  logger,
	}
}

// RegisterResponse is returned by the register-device endpoint. The device
// token authenticates every later call for this device.
type RegisterResponse struct {
	UUID        string `json:"uuid"`
	AccessToken string `json:"access-token"`
}

// RegisterDevice registers a new device under the user's account.
func (c *Client) RegisterDevice(ctx context.Context, userToken string, reg device.Registration) (*RegisterResponse, error) {
	c.logger.Info("registering device", "type", reg.Type, "name", reg.Name)

	body, err := c.postForm(ctx, registerPath, userToken, reg.FormValues())
	if err != nil {
		return nil, fmt.Errorf("register-device: %w", err)
	}

	var resp RegisterResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("register-device: decoding response: %w", err)
	}
	if resp.UUID == "" || resp.AccessToken == "" {
		return nil, fmt.Errorf("register-device: response missing uuid or access-token")
	}
	return &resp, nil
}

// InitializeDevice uploads the host inventory for a freshly registered device.
func (c *Client) InitializeDevice(ctx context.Context, deviceToken string, info system.Info) error {
	c.logger.Info("initializing device", "serial", info.Serial, "arch", info.Architecture)

	values := url.Values{}
	values.Set("cpu", info.CPU)
	values.Set("gpu", info.GPU)
	values.Set("os", info.OS)
	values.Set("disk", info.Disk)
	values.Set("memory", info.Memory)
	values.Set("architecture", info.Architecture)
	values.Set("serial", info.Serial)

	if _, err := c.postForm(ctx, initializePath, deviceToken, values); err != nil {
		return fmt.Errorf("initialize-device: %w", err)
	}
	return nil
}

// GetServerFileID asks the backend which stored file holds this device's
// server bundle. The endpoint returns a bare JSON scalar.
func (c *Client) GetServerFileID(ctx context.Context, deviceToken string) (string, error) {
	body, err := c.get(ctx, getServerPath, url.Values{"access-token": {deviceToken}})
	if err != nil {
		return "", fmt.Errorf("get-server: %w", err)
	}

	var id any
	if err := json.Unmarshal(body, &id); err != nil {
		return "", fmt.Errorf("get-server: decoding file id: %w", err)
	}
	switch v := id.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatInt(int64(v), 10), nil
	default:
		return "", fmt.Errorf("get-server: unexpected file id type %T", id)
	}
}

// DownloadFile streams a stored file to dest.
func (c *Client) DownloadFile(ctx context.Context, deviceToken, fileID, dest string) error {
	query := url.Values{"access-token": {deviceToken}, "id": {fileID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(getFilePath, query), nil)
	if err != nil {
		return fmt.Errorf("get-file: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("get-file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get-file: %s", statusError(resp))
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("get-file: %w", err)
	}
	defer out.Close()

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("get-file: writing %s: %w", dest, err)
	}
	c.logger.Info("downloaded server bundle", "file_id", fileID, "bytes", n)
	return nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	return c.baseURL + path + "?" + query.Encode()
}

func (c *Client) postForm(ctx context.Context, path, token string, form url.Values) ([]byte, error) {
	query := url.Values{"access-token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, query), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s", statusError(resp))
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s", statusError(resp))
	}
	return io.ReadAll(resp.Body)
}

// statusError summarizes a non-200 response without dumping the whole body.
func statusError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	snippet := strings.TrimSpace(string(body))
	if snippet == "" {
		return fmt.Sprintf("backend returned %s", resp.Status)
	}
	return fmt.Sprintf("backend returned %s: %s", resp.Status, snippet)
}
