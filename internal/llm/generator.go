package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/adforge/backend/internal/models"
	"go.uber.org/zap"
)

// DefaultBaseURL is TogetherAI's OpenAI-compatible endpoint root.
const DefaultBaseURL = "https://api.together.xyz/v1"

const maxTokens = 1000

// Generator produces ad copy from a campaign brief. The pipeline treats it
// as a black box: structured content out, or a GenerationError.
type Generator interface {
	Generate(ctx context.Context, brief models.CampaignBrief, model string, temperature float64) (models.GeneratedContent, error)
}

// GenerationError covers everything that goes wrong between the brief and
// validated content: API failures, unparseable output, missing fields. It is
// reported distinctly from platform errors and must not be retried
// automatically.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("error generating campaign content: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// TogetherClient calls TogetherAI's chat-completions API.
type TogetherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewTogetherClient(baseURL, apiKey string, log *zap.Logger) *TogetherClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &TogetherClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log: log,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	N           int           `json:"n"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate asks the model for the four content fields and validates the
// result. Model output is parsed leniently (the model does not always emit
// bare JSON) but the field set is not negotiable.
func (c *TogetherClient) Generate(ctx context.Context, brief models.CampaignBrief, model string, temperature float64) (models.GeneratedContent, error) {
	if c.apiKey == "" {
		return models.GeneratedContent{}, &GenerationError{Err: fmt.Errorf("TogetherAI API key not found, set the TOGETHER_API_KEY environment variable")}
	}

	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(brief)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		N:           1,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return models.GeneratedContent{}, &GenerationError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return models.GeneratedContent{}, &GenerationError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.GeneratedContent{}, &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.GeneratedContent{}, &GenerationError{Err: err}
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return models.GeneratedContent{}, &GenerationError{Err: fmt.Errorf("invalid completion response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := string(body)
		if chat.Error != nil {
			msg = chat.Error.Message
		}
		return models.GeneratedContent{}, &GenerationError{Err: fmt.Errorf("completion request returned %d: %s", resp.StatusCode, msg)}
	}
	if len(chat.Choices) == 0 {
		return models.GeneratedContent{}, &GenerationError{Err: fmt.Errorf("completion response has no choices")}
	}

	fields, err := extractContent(chat.Choices[0].Message.Content)
	if err != nil {
		return models.GeneratedContent{}, &GenerationError{Err: err}
	}

	content, err := models.ContentFromMap(fields)
	if err != nil {
		return models.GeneratedContent{}, &GenerationError{Err: err}
	}

	c.log.Debug("campaign content generated",
		zap.String("model", model),
		zap.String("headline", content.Headline),
	)
	return content, nil
}
