package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appconfig "market-scout/config"
	"market-scout/models"
	"market-scout/observability"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// openaiClient defines the interface for OpenAI API calls (for testing)
type openaiClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
	CreateResponse(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error)
}

// openaiClientWrapper wraps the openai.Client to implement our interface
type openaiClientWrapper struct {
	client openai.Client
}

func (w *openaiClientWrapper) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return w.client.Chat.Completions.New(ctx, params)
}

func (w *openaiClientWrapper) CreateResponse(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	return w.client.Responses.New(ctx, params)
}

// QuoteFunc resolves a ticker symbol to a price string. It is the local
// function exposed to the model as a tool and must not fail; lookup problems
// come back as human-readable sentinel strings.
type QuoteFunc func(ctx context.Context, symbol string) string

// OpenAIService handles communication with OpenAI API
type OpenAIService struct {
	client    openaiClient
	model     string
	maxTokens int
	now       func() time.Time
}

// NewOpenAIService creates a new OpenAIService instance
func NewOpenAIService(cfg *appconfig.Config) (*OpenAIService, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	client := openai.NewClient(option.WithAPIKey(cfg.OpenAI.APIKey))

	return &OpenAIService{
		client:    &openaiClientWrapper{client: client},
		model:     cfg.OpenAI.Model,
		maxTokens: cfg.OpenAI.MaxTokens,
		now:       time.Now,
	}, nil
}

// newOpenAIServiceWithClient creates an OpenAIService with a custom client (for testing)
func newOpenAIServiceWithClient(client openaiClient, model string, maxTokens int) *OpenAIService {
	return &OpenAIService{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		now:       time.Now,
	}
}

// createResponse issues one Responses API call and returns its output text
func (s *OpenAIService) createResponse(ctx context.Context, operation, prompt string, webSearch bool) (string, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerOpenAI, operation)
	timer := metrics.NewTimer()

	result, err := WithCircuitBreaker(ctx, BreakerOpenAI, func() (string, error) {
		params := responses.ResponseNewParams{
			Model: shared.ResponsesModel(s.model),
			Input: responses.ResponseNewParamsInputUnion{OfString: openai.String(prompt)},
		}
		if webSearch {
			params.Tools = []responses.ToolUnionParam{{
				OfWebSearchPreview: &responses.WebSearchToolParam{
					Type: responses.WebSearchToolTypeWebSearchPreview,
				},
			}}
		}

		resp, err := s.client.CreateResponse(ctx, params)
		if err != nil {
			return "", fmt.Errorf("failed to invoke OpenAI: %w", err)
		}

		text := resp.OutputText()
		if text == "" {
			return "", fmt.Errorf("empty response from OpenAI")
		}
		return text, nil
	})

	timer.ObserveExternalAPI(BreakerOpenAI, operation)
	if err != nil {
		metrics.RecordExternalAPIError(BreakerOpenAI, operation, categorizeAPIError(err))
	}
	return result, err
}

// FindArticles asks the model for the top 3 most recent news stories about
// the query. The raw text is returned as-is; the caller owns the strict parse
// since the JSON-only instruction is a convention the model may violate.
func (s *OpenAIService) FindArticles(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(
		"The current date is %s. All news found should be recent. "+
			"Find the 3 top and most recent news stories about: %s. "+
			"Only give top 3, nothing else. Return it in JSON format with the title, "+
			"description, and url. Don't even include the ```json``` tags.",
		s.now().Format("2006-01-02"), query)

	return s.createResponse(ctx, "find_articles", prompt, true)
}

// ExtractInsights visits the URL via web search and extracts the structured
// insight record. Parse failures yield an empty record, never an error, so a
// single bad article cannot abort a batch.
func (s *OpenAIService) ExtractInsights(ctx context.Context, url string) models.ArticleInsight {
	prompt := fmt.Sprintf(
		"Visit this URL: %s and extract the following information:\n"+
			"1. Key insights and main points from the article\n"+
			"2. Key companies/players mentioned\n"+
			"3. Stock ticker symbols for these companies if applicable. Make sure you are "+
			"giving stock tickers, not company names. For example, if the company is Apple, "+
			"the stock ticker is AAPL. If the company is Tesla, the stock ticker is TSLA. "+
			"Even if there are no stock companies directly, try to think of companies that "+
			"are indirectly related or will be affected by the news. Only mention the top 3 "+
			"companies affected and an analysis of why they are affected, how their stock "+
			"prices might be affected, and what the future might hold for them.\n"+
			"Format the response as JSON with keys 'insights', 'key_players', and 'tickers'. "+
			"Make sure you dont include ``` json ``` tags in the response.",
		url)

	raw, err := s.createResponse(ctx, "extract_insights", prompt, true)
	if err != nil {
		observability.WithError(err).Warn("insight extraction call failed", "url", url)
		return models.EmptyInsight(url)
	}

	rec, err := models.ParseInsight(url, raw)
	if err != nil {
		observability.WithError(err).Warn("could not parse insight response", "url", url)
		return models.EmptyInsight(url)
	}
	return rec
}

// GenerateHighlight produces the narration text for the given prompt
func (s *OpenAIService) GenerateHighlight(ctx context.Context, prompt string) (string, error) {
	return s.createResponse(ctx, "generate_highlight", prompt, false)
}

// quoteToolParams is the schema for the get_stock_quote tool
var quoteToolParams = shared.FunctionParameters{
	"type": "object",
	"properties": map[string]any{
		"ticker_symbol": map[string]any{
			"type":        "string",
			"description": "The stock ticker symbol, e.g., AAPL for Apple Inc.",
		},
	},
	"required":             []string{"ticker_symbol"},
	"additionalProperties": false,
}

// ResolveTickerQuote sends the free-text reference to the model with a single
// get_stock_quote tool. If the model calls the tool, the quote function is
// executed locally, the result is fed back keyed by the call's identifier, and
// the second round-trip's text is returned. If the model answers directly,
// that answer is returned unchanged.
func (s *OpenAIService) ResolveTickerQuote(ctx context.Context, reference string, quote QuoteFunc) (string, error) {
	metrics := observability.GetMetrics()
	metrics.RecordExternalAPIRequest(BreakerOpenAI, "resolve_quote")
	timer := metrics.NewTimer()
	defer timer.ObserveExternalAPI(BreakerOpenAI, "resolve_quote")

	tool := openai.ChatCompletionToolParam{
		Function: shared.FunctionDefinitionParam{
			Name:        "get_stock_quote",
			Description: openai.String("Get current stock information for a company by ticker symbol"),
			Parameters:  quoteToolParams,
			Strict:      openai.Bool(true),
		},
	}

	userMsg := openai.UserMessage(fmt.Sprintf("Get the current stock information for the ticker: %s", reference))

	params := openai.ChatCompletionNewParams{
		Model:     shared.ChatModel(s.model),
		MaxTokens: openai.Int(int64(s.maxTokens)),
		Messages:  []openai.ChatCompletionMessageParamUnion{userMsg},
		Tools:     []openai.ChatCompletionToolParam{tool},
	}

	completion, err := WithCircuitBreaker(ctx, BreakerOpenAI, func() (*openai.ChatCompletion, error) {
		return s.client.CreateChatCompletion(ctx, params)
	})
	if err != nil {
		metrics.RecordExternalAPIError(BreakerOpenAI, "resolve_quote", categorizeAPIError(err))
		return "", fmt.Errorf("failed to invoke OpenAI: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	msg := completion.Choices[0].Message
	if len(msg.ToolCalls) == 0 {
		// Model answered without the tool
		return msg.Content, nil
	}

	call := msg.ToolCalls[0]
	if call.Function.Name != "get_stock_quote" {
		return "", fmt.Errorf("unexpected tool call: %s", call.Function.Name)
	}

	var args struct {
		TickerSymbol string `json:"ticker_symbol"`
	}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return "", fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	result := quote(ctx, args.TickerSymbol)

	followup := openai.ChatCompletionNewParams{
		Model:     shared.ChatModel(s.model),
		MaxTokens: openai.Int(int64(s.maxTokens)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			userMsg,
			msg.ToParam(),
			openai.ToolMessage(result, call.ID),
		},
		Tools: []openai.ChatCompletionToolParam{tool},
	}

	final, err := WithCircuitBreaker(ctx, BreakerOpenAI, func() (*openai.ChatCompletion, error) {
		return s.client.CreateChatCompletion(ctx, followup)
	})
	if err != nil {
		metrics.RecordExternalAPIError(BreakerOpenAI, "resolve_quote", categorizeAPIError(err))
		return "", fmt.Errorf("failed to invoke OpenAI: %w", err)
	}
	if len(final.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	return final.Choices[0].Message.Content, nil
}

// categorizeAPIError categorizes an error for metrics purposes
func categorizeAPIError(err error) string {
	if err == nil {
		return "none"
	}
	errStr := err.Error()
	switch {
	case contains(errStr, "timeout", "deadline"):
		return "timeout"
	case contains(errStr, "rate limit", "429"):
		return "rate_limit"
	case contains(errStr, "unauthorized", "401"):
		return "auth_error"
	case contains(errStr, "connection", "network"):
		return "connection_error"
	case contains(errStr, "status 4", "status 5"):
		return "http_error"
	default:
		return "unknown"
	}
}

// contains checks if the string contains any of the substrings
func contains(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if len(s) >= len(sub) {
			for i := 0; i <= len(s)-len(sub); i++ {
				if s[i:i+len(sub)] == sub {
					return true
				}
			}
		}
	}
	return false
}
