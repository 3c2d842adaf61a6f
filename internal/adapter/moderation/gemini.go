package moderation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/fuisonguest/retrand/internal/listing/domain"
)

// Result is the moderation verdict for an uploaded image.
type Result struct {
	IsAppropriate bool   `json:"isAppropriate"`
	Reason        string `json:"reason,omitempty"`
}

// Client moderates listing images through Gemini. A nil Client (no API key
// configured) reports every image as unavailable, which callers handle with
// the degraded accept-with-warning policy.
type Client struct {
	model   *genai.GenerativeModel
	timeout time.Duration
}

func NewClient(ctx context.Context, apiKey, modelID string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelID)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"is_appropriate": {
				Type:        genai.TypeBoolean,
				Description: "False if the image contains nudity, violence, weapons, drugs, hate symbols, or other content unsuitable for a general secondhand marketplace.",
			},
			"reason": {
				Type:        genai.TypeString,
				Description: "One short sentence explaining the verdict.",
			},
		},
		Required: []string{"is_appropriate"},
	}

	return &Client{model: model, timeout: timeout}, nil
}

// Moderate classifies a base64-encoded image (optionally a data URL).
// Errors wrap domain.ErrModerationUnavailable so callers can apply the
// degraded policy without inspecting causes.
func (c *Client) Moderate(ctx context.Context, image string) (*Result, error) {
	if c == nil || c.model == nil {
		return nil, fmt.Errorf("moderation not configured: %w", domain.ErrModerationUnavailable)
	}

	format, data, err := decodeImage(image)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx,
		genai.ImageData(format, data),
		genai.Text("Moderate this marketplace listing photo. Output JSON adhering to the schema."),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini moderation call: %w: %v", domain.ErrModerationUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty moderation response: %w", domain.ErrModerationUnavailable)
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected moderation response part: %w", domain.ErrModerationUnavailable)
	}

	var verdict struct {
		IsAppropriate bool   `json:"is_appropriate"`
		Reason        string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(text), &verdict); err != nil {
		return nil, fmt.Errorf("parse moderation response: %w", domain.ErrModerationUnavailable)
	}
	return &Result{IsAppropriate: verdict.IsAppropriate, Reason: verdict.Reason}, nil
}

// decodeImage accepts either a bare base64 string or a data URL and returns
// the image format plus raw bytes.
func decodeImage(image string) (string, []byte, error) {
	format := "jpeg"
	payload := image

	if strings.HasPrefix(image, "data:") {
		header, rest, found := strings.Cut(image, ",")
		if !found {
			return "", nil, fmt.Errorf("malformed data URL")
		}
		payload = rest
		if mime, _, ok := strings.Cut(strings.TrimPrefix(header, "data:"), ";"); ok {
			if sub, ok := strings.CutPrefix(mime, "image/"); ok {
				format = sub
			}
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return format, data, nil
}
