package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/canken881226/amazon-Listing-Tool/listing"
	"github.com/canken881226/amazon-Listing-Tool/models"
	"github.com/canken881226/amazon-Listing-Tool/utils"
)

var (
	// ErrRateLimited: the model provider answered 429.
	ErrRateLimited = errors.New("rate limited")
	// ErrResponseInvalid: the model answer could not be decoded into an annotation.
	ErrResponseInvalid = errors.New("response invalid")
)

const annotationPrompt = `Analyze this wall art image for an Amazon listing. Reply with JSON only:
{"title":"","elements":"","color":"","bp":["","","","",""]}
title: short product title without brand. elements: the main subjects, space separated.
color: the dominant color or theme word. bp: five selling points, one sentence each.`

// upstreamError is a non-2xx answer from the model provider
type upstreamError struct {
	provider string
	status   int
	msg      string
}

func (e upstreamError) Error() string {
	return fmt.Sprintf("%s upstream %d: %s", e.provider, e.status, e.msg)
}

// AnnotatorOptions configures the HTTP annotators
type AnnotatorOptions struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

func (o *AnnotatorOptions) defaults(baseURL, model string) {
	if o.BaseURL == "" {
		o.BaseURL = baseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Model == "" {
		o.Model = model
	}
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
}

// OpenAIAnnotator calls an OpenAI compatible chat completions endpoint with the image inline.
type OpenAIAnnotator struct {
	url    string
	apiKey string
	model  string
	do     func(*http.Request) (*http.Response, error)
}

// Ensure OpenAIAnnotator implements AnnotatorInterface
var _ AnnotatorInterface = (*OpenAIAnnotator)(nil)

func NewOpenAIAnnotator(opts AnnotatorOptions) (*OpenAIAnnotator, error) {
	opts.defaults("https://api.openai.com/v1", "gpt-4o-mini")
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai: %w: missing api key", listing.ErrMissingInput)
	}
	hc := &http.Client{Timeout: opts.Timeout}
	return &OpenAIAnnotator{
		url:    opts.BaseURL + "/chat/completions",
		apiKey: opts.APIKey,
		model:  opts.Model,
		do:     hc.Do,
	}, nil
}

type oaContentPart struct {
	Type     string      `json:"type"`
	Text     string      `json:"text,omitempty"`
	ImageURL *oaImageURL `json:"image_url,omitempty"`
}

type oaImageURL struct {
	URL string `json:"url"`
}

type oaMessage struct {
	Role    string          `json:"role"`
	Content []oaContentPart `json:"content"`
}

type oaRequest struct {
	Model          string           `json:"model"`
	Messages       []oaMessage      `json:"messages"`
	ResponseFormat oaResponseFormat `json:"response_format"`
}

type oaResponseFormat struct {
	Type string `json:"type"`
}

type oaResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Annotate sends image to the model and parses its JSON answer
func (a *OpenAIAnnotator) Annotate(ctx context.Context, image []byte, hint string) (*models.BaseItemAnnotation, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", listing.ErrMissingInput)
	}
	dataURL := "data:" + http.DetectContentType(image) + ";base64," + base64.StdEncoding.EncodeToString(image)
	body, err := json.Marshal(oaRequest{
		Model: a.model,
		Messages: []oaMessage{{
			Role: "user",
			Content: []oaContentPart{
				{Type: "text", Text: promptWithHint(hint)},
				{Type: "image_url", ImageURL: &oaImageURL{URL: dataURL}},
			},
		}},
		ResponseFormat: oaResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var out oaResponse
	if err := sendJSON(ctx, "openai", a.do, req, &out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: %w: no choices", listing.ErrAnnotationFailed, ErrResponseInvalid)
	}
	return ParseAnnotation(out.Choices[0].Message.Content)
}

// GeminiAnnotator calls the Gemini generateContent endpoint with the image as inline data.
type GeminiAnnotator struct {
	url    string
	apiKey string
	do     func(*http.Request) (*http.Response, error)
}

// Ensure GeminiAnnotator implements AnnotatorInterface
var _ AnnotatorInterface = (*GeminiAnnotator)(nil)

func NewGeminiAnnotator(opts AnnotatorOptions) (*GeminiAnnotator, error) {
	opts.defaults("https://generativelanguage.googleapis.com", "gemini-1.5-flash")
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w: missing api key", listing.ErrMissingInput)
	}
	hc := &http.Client{Timeout: opts.Timeout}
	return &GeminiAnnotator{
		url:    opts.BaseURL + "/v1beta/models/" + opts.Model + ":generateContent",
		apiKey: opts.APIKey,
		do:     hc.Do,
	}, nil
}

type gmInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type gmPart struct {
	Text       string        `json:"text,omitempty"`
	InlineData *gmInlineData `json:"inline_data,omitempty"`
}

type gmContent struct {
	Role  string   `json:"role,omitempty"`
	Parts []gmPart `json:"parts"`
}

type gmRequest struct {
	Contents         []gmContent        `json:"contents"`
	GenerationConfig gmGenerationConfig `json:"generationConfig"`
}

type gmGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type gmResponse struct {
	Candidates []struct {
		Content gmContent `json:"content"`
	} `json:"candidates"`
}

func (a *GeminiAnnotator) Annotate(ctx context.Context, image []byte, hint string) (*models.BaseItemAnnotation, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", listing.ErrMissingInput)
	}
	body, err := json.Marshal(gmRequest{
		Contents: []gmContent{{
			Role: "user",
			Parts: []gmPart{
				{Text: promptWithHint(hint)},
				{InlineData: &gmInlineData{
					MimeType: http.DetectContentType(image),
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
		GenerationConfig: gmGenerationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("x-goog-api-key", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	var out gmResponse
	if err := sendJSON(ctx, "gemini", a.do, req, &out); err != nil {
		return nil, err
	}
	var text strings.Builder
	for _, c := range out.Candidates {
		for _, p := range c.Content.Parts {
			text.WriteString(p.Text)
		}
		if text.Len() > 0 {
			break
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("%w: %w: no candidates", listing.ErrAnnotationFailed, ErrResponseInvalid)
	}
	return ParseAnnotation(text.String())
}

func promptWithHint(hint string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return annotationPrompt
	}
	return annotationPrompt + "\nSeller notes: " + hint
}

// sendJSON executes req and decodes a 2xx JSON body into out. Every failure wraps
// listing.ErrAnnotationFailed.
func sendJSON(ctx context.Context, provider string, do func(*http.Request) (*http.Response, error), req *http.Request, out any) error {
	resp, err := do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", listing.ErrAnnotationFailed, ctx.Err())
		}
		return fmt.Errorf("%w: %s request: %w", listing.ErrAnnotationFailed, provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s: %w", listing.ErrAnnotationFailed, provider, ErrRateLimited)
	}
	if resp.StatusCode/100 != 2 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%w: %w", listing.ErrAnnotationFailed, upstreamError{provider: provider, status: resp.StatusCode, msg: strings.TrimSpace(string(slurp))})
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w: %s decode: %v", listing.ErrAnnotationFailed, ErrResponseInvalid, provider, err)
	}
	zap.S().Debugf("🤖 %s answered %d", provider, resp.StatusCode)
	return nil
}

type rawAnnotation struct {
	Title    json.RawMessage `json:"title"`
	Elements json.RawMessage `json:"elements"`
	Color    json.RawMessage `json:"color"`
	Bullets  json.RawMessage `json:"bp"`
}

// ParseAnnotation decodes a model answer. Markdown fences and text around the JSON object are
// ignored, and every field may be a string or a list of strings.
func ParseAnnotation(text string) (*models.BaseItemAnnotation, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: %w: no JSON object in answer", listing.ErrAnnotationFailed, ErrResponseInvalid)
	}
	var raw rawAnnotation
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w: %v", listing.ErrAnnotationFailed, ErrResponseInvalid, err)
	}

	ann := &models.BaseItemAnnotation{
		Title:        strings.Join(stringOrList(raw.Title), " "),
		Elements:     strings.Join(stringOrList(raw.Elements), " "),
		PrimaryTheme: strings.Join(stringOrList(raw.Color), " "),
		Bullets:      stringOrList(raw.Bullets),
	}
	ann.Title = utils.CleanText(ann.Title, nil)
	ann.Elements = utils.CleanText(ann.Elements, nil)
	ann.PrimaryTheme = utils.CleanText(ann.PrimaryTheme, nil)
	if ann.Title == "" && ann.Elements == "" {
		return nil, fmt.Errorf("%w: %w: title and elements are empty", listing.ErrAnnotationFailed, ErrResponseInvalid)
	}
	return ann, nil
}

// stringOrList accepts a JSON string or array of strings. A single string is split into lines.
func stringOrList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		list = strings.Split(s, "\n")
	}
	out := list[:0]
	for _, item := range list {
		item = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(item), "-•*"))
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
