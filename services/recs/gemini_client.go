package recs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"recstream/models"
)

const (
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel          = "gemini-2.5-flash"

	geminiTimeout = 15 * time.Second
)

// Ranking degrades rather than fails: the orchestrator collapses either
// error to an empty ranked sequence, which routes the catalog through
// the unranked fallback path.
var (
	ErrRankingUnavailable = errors.New("ranking service unavailable")
	ErrRankingMalformed   = errors.New("ranking response malformed")
)

// Profile caps keep the generation request bounded.
const (
	maxWatchedInProfile = 250
	maxPoolInProfile    = 150
)

type geminiClient struct {
	httpc   *http.Client
	baseURL string
}

func newGeminiClient(httpc *http.Client) *geminiClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: geminiTimeout}
	}
	return &geminiClient{httpc: httpc, baseURL: defaultGeminiBaseURL}
}

// geminiRequest is the request body for the Gemini generateContent API.
type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
	Temperature      float64         `json:"temperature"`
	TopP             float64         `json:"topP,omitempty"`
}

// geminiResponse is the response from the Gemini generateContent API.
// The structured result arrives as a string field requiring a second
// JSON parse.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// rankingSchema constrains the model output to the shape the finalizer
// understands.
var rankingSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "recommendations": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "imdb": {"type": "string"},
          "score": {"type": "number"},
          "reason": {"type": "string"}
        },
        "required": ["imdb", "score"]
      }
    }
  },
  "required": ["recommendations"]
}`)

// rankingProfile is the data payload embedded in the prompt.
type rankingProfile struct {
	Locale              string                 `json:"locale"`
	RecentlyWatchedIMDB []string               `json:"recentlyWatchedImdb"`
	Pool                []models.CandidateItem `json:"pool"`
}

// rank asks Gemini to score the candidate pool against the user's
// watch history. A missing API key short-circuits to an empty result.
// Any failure (network, non-2xx, missing or unparsable payload, schema
// violation) is reported as ErrRankingUnavailable or
// ErrRankingMalformed; there is no partial-credit parsing and no retry.
func (c *geminiClient) rank(ctx context.Context, apiKey, kindLabel string, watched []string, pool []models.CandidateItem, locale string) ([]models.RankedEntry, error) {
	if apiKey == "" {
		return nil, nil
	}

	profile := rankingProfile{
		Locale:              locale,
		RecentlyWatchedIMDB: capStrings(watched, maxWatchedInProfile),
		Pool:                capItems(pool, maxPoolInProfile),
	}
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal ranking profile: %w", err)
	}

	prompt := fmt.Sprintf(`You are a recommender system for %s.
- Prefer high quality, discovery-friendly picks.
- STRICTLY exclude anything in recentlyWatchedImdb.
- Encourage variety: avoid same franchise/director back-to-back if possible.
- Return up to 30 results as JSON (schema provided).

DATA:
%s`, kindLabel, profileJSON)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   rankingSchema,
			Temperature:      0.4,
			TopP:             0.8,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, geminiModel, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRankingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrRankingUnavailable, resp.StatusCode)
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrRankingMalformed, err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: empty candidates", ErrRankingMalformed)
	}
	text := geminiResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return nil, fmt.Errorf("%w: empty text payload", ErrRankingMalformed)
	}

	var result struct {
		Recommendations *[]models.RankedEntry `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("%w: parse recommendations: %v", ErrRankingMalformed, err)
	}
	if result.Recommendations == nil {
		return nil, fmt.Errorf("%w: missing recommendations field", ErrRankingMalformed)
	}

	return *result.Recommendations, nil
}

func capStrings(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func capItems(s []models.CandidateItem, n int) []models.CandidateItem {
	if len(s) > n {
		return s[:n]
	}
	return s
}
