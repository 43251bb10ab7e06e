// Package backend talks to the inference server that owns the segmentation model.
package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ImageType selects the encoding of preview images returned by the server.
type ImageType string

const (
	ImagePNG  ImageType = "png"
	ImageJPEG ImageType = "jpeg"
)

// Button ids understood by /button_click.
const (
	ButtonBox       = "box"
	ButtonInference = "inference"
)

// BoxPayload is the /box_receive body, in original-image pixels.
type BoxPayload struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type buttonRequest struct {
	ButtonID  string    `json:"button_id"`
	ImageType ImageType `json:"image_type"`
}

type buttonResponse struct {
	Image string `json:"image"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Preview is an encoded image returned by the server.
type Preview struct {
	Type ImageType
	Data []byte
}

// DataURL renders the preview as a data URL.
func (p Preview) DataURL() string {
	return "data:image/" + string(p.Type) + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// StatusError reports a non-2xx server response.
type StatusError struct {
	Endpoint string
	Code     int
	Message  string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Code)
	}
	return e.Endpoint + ": " + msg
}

// API is the server surface used by the presenters.
type API interface {
	UploadImage(ctx context.Context, name string, r io.Reader) (string, error)
	ButtonClick(ctx context.Context, buttonID string, typ ImageType) (Preview, error)
	SendBox(ctx context.Context, box BoxPayload) (string, error)
}

// Client is an HTTP implementation of API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:5000"
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// UploadImage posts the raw image file as multipart field "image". The
// acknowledgement text is returned for logging.
func (c *Client) UploadImage(ctx context.Context, name string, r io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", name)
	if err != nil {
		return "", errors.Wrap(err, "create multipart field")
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", errors.Wrap(err, "read image")
	}
	if err := mw.Close(); err != nil {
		return "", errors.Wrap(err, "close multipart body")
	}
	resp, err := c.post(ctx, "/upload_image", mw.FormDataContentType(), &body)
	if err != nil {
		return "", err
	}
	return string(resp), nil
}

// ButtonClick triggers a server-side mode change or an inference round and
// returns the updated preview image.
func (c *Client) ButtonClick(ctx context.Context, buttonID string, typ ImageType) (Preview, error) {
	if typ != ImageJPEG {
		typ = ImagePNG
	}
	raw, err := c.postJSON(ctx, "/button_click", buttonRequest{ButtonID: buttonID, ImageType: typ})
	if err != nil {
		return Preview{}, err
	}
	var br buttonResponse
	if err := json.Unmarshal(raw, &br); err != nil {
		return Preview{}, errors.Wrap(err, "decode /button_click response")
	}
	data, err := base64.StdEncoding.DecodeString(stripDataURL(br.Image))
	if err != nil {
		return Preview{}, errors.Wrap(err, "decode preview base64")
	}
	return Preview{Type: typ, Data: data}, nil
}

// SendBox posts a committed box in original-image coordinates.
func (c *Client) SendBox(ctx context.Context, box BoxPayload) (string, error) {
	raw, err := c.postJSON(ctx, "/box_receive", box)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s request", endpoint)
	}
	return c.post(ctx, endpoint, "application/json", bytes.NewReader(payload))
}

func (c *Client) post(ctx context.Context, endpoint, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s request", endpoint)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s request failed", endpoint)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s response", endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil {
			se.Message = er.Error
		}
		return nil, se
	}
	return raw, nil
}

// stripDataURL accepts either bare base64 or a full data URL.
func stripDataURL(s string) string {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			return s[i+1:]
		}
	}
	return s
}

var _ API = (*Client)(nil)
