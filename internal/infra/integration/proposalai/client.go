package proposalai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"time"

	"github.com/yadhurtech/leadquote/internal/entity"
)

// Client calls the remote proposal-generation function.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate posts the intake form, as JSON or, when files are attached, as
// multipart form data. A non-2xx answer with a JSON body is returned as
// decoded so the caller sees the remote error message.
func (c *Client) Generate(ctx context.Context, input entity.ProposalInput, files []entity.Attachment) (*entity.GenerateResponse, error) {
	var (
		body        io.Reader
		contentType string
		err         error
	)
	if len(files) > 0 {
		body, contentType, err = multipartBody(input, files)
	} else {
		body, contentType, err = jsonBody(input)
	}
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proposal request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read proposal response: %w", err)
	}

	var out entity.GenerateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("proposal endpoint returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode proposal response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out.OK = false
		if out.Error == "" {
			out.Error = fmt.Sprintf("proposal endpoint returned status %d", resp.StatusCode)
		}
	}
	return &out, nil
}

func jsonBody(input entity.ProposalInput) (io.Reader, string, error) {
	if input.ServiceTypes == nil {
		input.ServiceTypes = []string{}
	}
	b, err := json.Marshal(input)
	if err != nil {
		return nil, "", fmt.Errorf("encode proposal input: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

func multipartBody(input entity.ProposalInput, files []entity.Attachment) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	services := input.ServiceTypes
	if services == nil {
		services = []string{}
	}
	serviceJSON, err := json.Marshal(services)
	if err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"clientName", input.ClientName},
		{"businessName", input.BusinessName},
		{"quickPrompt", input.QuickPrompt},
		{"businessOverview", input.BusinessOverview},
		{"businessActivities", input.BusinessActivities},
		{"softwareType", input.SoftwareType},
		{"serviceTypes", string(serviceJSON)},
		{"paymentTerms", input.PaymentTerms},
		{"targetUsers", input.TargetUsers},
		{"keyFeatures", input.KeyFeatures},
		{"projectFlow", input.ProjectFlow},
		{"integrations", input.Integrations},
		{"timelineWeeks", strconv.Itoa(input.TimelineWeeks)},
		{"budget", strconv.FormatFloat(input.Budget, 'f', -1, 64)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, f.Filename))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
