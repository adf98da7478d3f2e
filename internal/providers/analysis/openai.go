package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"donorpath/internal/domain"
	"donorpath/internal/ingest"
)

var (
	// ErrTimeout reports that the completion did not arrive within the
	// deadline. The in-flight request is abandoned, not canceled.
	ErrTimeout = errors.New("analysis request timed out")

	// ErrRateLimited reports an upstream 429.
	ErrRateLimited = errors.New("analysis rate limit exceeded")
)

type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client generates donor analyses through the OpenAI chat completions
// API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	model      string
	timeout    time.Duration
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	model := opts.Model
	if model == "" {
		model = "gpt-4"
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		httpClient: client,
		baseURL:    base,
		token:      strings.TrimSpace(opts.APIKey),
		model:      model,
		timeout:    timeout,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Analyze produces a strategic analysis for one donor. The completion
// call races a timer; when the timer wins the caller gets ErrTimeout
// while the request is left to finish on its own.
func (c *Client) Analyze(ctx context.Context, donor domain.DonorRecord) (string, error) {
	if c == nil || c.token == "" {
		return "", domain.ErrNotConfigured
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	// Detach the request context so the losing side of the race keeps
	// running, mirroring how the completion promise was never canceled.
	reqCtx := context.WithoutCancel(ctx)
	go func() {
		text, err := c.complete(reqCtx, donor)
		done <- result{text: text, err: err}
	}()

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.text, res.err
	case <-timer.C:
		return "", ErrTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Client) complete(ctx context.Context, donor domain.DonorRecord) (string, error) {
	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(donor)},
		},
		Temperature: 0.7,
		MaxTokens:   1500,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return "", fmt.Errorf("openai: http %d", resp.StatusCode)
		}
		return "", err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("openai error: %s (%s)", out.Error.Message, out.Error.Type)
		}
		return "", fmt.Errorf("openai: http %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", errors.New("openai: empty completion")
	}
	return out.Choices[0].Message.Content, nil
}

const systemPrompt = `You are an expert fundraising consultant analyzing donor data.
Focus on identifying key opportunities, wealth indicators, and engagement patterns.
Provide strategic recommendations based on the donor's profile.
Format your response in clear sections with bullet points for easy reading.`

func userPrompt(donor domain.DonorRecord) string {
	currency := func(label string) string {
		return ingest.FormatCurrency(donor.Str(label))
	}
	lastGiftDate := donor.Str("Last Gift Date")
	if lastGiftDate == "" {
		lastGiftDate = "No date"
	}
	return fmt.Sprintf(`Please analyze this donor:
- Name: %s %s
- Estimated Capacity: %s
- Total Giving: %s
- Last Gift: %s (%s)
- Annual Fund Likelihood: %d%%
- Major Gift Likelihood: %d%%
- Business Revenue: %s
- Real Estate Value: %s
- Number of Properties: %d
- Total Philanthropic Giving: %s
- Education Giving: %s

Provide a strategic analysis including:
1. Wealth Capacity Assessment
2. Giving History Analysis
3. Engagement Opportunities
4. Specific Recommendations for Next Steps`,
		donor.Str("First Name"), donor.Str("Last Name"),
		currency("Estimated Capacity"),
		currency("Total Gift Amount"),
		currency("Last Gift Amount"), lastGiftDate,
		donor.Int("Annual Fund Likelihood"),
		donor.Int("Major Gift Likelihood"),
		currency("Business Revenue"),
		currency("Real Estate Est"),
		donor.Int("# Of Prop"),
		currency("Philanthropy and Grantmaking Total"),
		currency("Education Gift Amount"))
}
