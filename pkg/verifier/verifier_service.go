package verifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"kyro-backend/domain"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var defaultModels = []string{"gemini-1.5-flash", "gemini-1.5-pro", "gemini-2.0-flash"}

var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

type (
	VerifierService interface {
		Verify(ctx context.Context, image []byte, mimeType string, expectedCategory string) (domain.VerificationVerdict, error)
	}

	verifierService struct {
		apiKey  string
		models  []string
		baseURL string
		client  *http.Client
	}
)

func NewVerifierService(apiKey string, models []string) VerifierService {
	if len(models) == 0 {
		models = defaultModels
	}
	return &verifierService{
		apiKey:  apiKey,
		models:  models,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *verifierService) Verify(ctx context.Context, image []byte, mimeType string, expectedCategory string) (domain.VerificationVerdict, error) {
	if s.apiKey == "" {
		return domain.VerificationVerdict{}, domain.ErrVerifierNotConfigured
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	var lastErr error
	for _, model := range s.models {
		verdict, err := s.verifyWithModel(ctx, model, image, mimeType, expectedCategory)
		if err == nil {
			return verdict, nil
		}
		lastErr = err
		log.Printf("verification model %s failed: %v", model, err)
	}

	return domain.VerificationVerdict{}, fmt.Errorf("%w: %v", domain.ErrVerificationUnavailable, lastErr)
}

func (s *verifierService) verifyWithModel(ctx context.Context, model string, image []byte, mimeType string, expectedCategory string) (domain.VerificationVerdict, error) {
	requestBody := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]any{
					{
						"text": buildPrompt(expectedCategory),
					},
					{
						"inline_data": map[string]any{
							"mime_type": mimeType,
							"data":      base64.StdEncoding.EncodeToString(image),
						},
					},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.1,
			"topP":            1,
			"topK":            32,
			"maxOutputTokens": 1024,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return domain.VerificationVerdict{}, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestJSON))
	if err != nil {
		return domain.VerificationVerdict{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.VerificationVerdict{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return domain.VerificationVerdict{}, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return domain.VerificationVerdict{}, err
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return domain.VerificationVerdict{}, domain.ErrVerdictMalformed
	}

	return parseVerdict(geminiResp.Candidates[0].Content.Parts[0].Text)
}

// parseVerdict isolates the JSON payload the model was told to produce and
// strictly validates its shape; anything missing or mistyped is rejected
// rather than coerced into a verdict.
func parseVerdict(text string) (domain.VerificationVerdict, error) {
	if match := jsonPattern.FindString(text); match != "" {
		text = match
	}

	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	text = strings.TrimSpace(text)

	var raw struct {
		IsVerified    *bool     `json:"isVerified"`
		DetectedItems *[]string `json:"detectedItems"`
		Confidence    *float64  `json:"confidence"`
		Reasoning     *string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return domain.VerificationVerdict{}, fmt.Errorf("%w: %v", domain.ErrVerdictMalformed, err)
	}
	if raw.IsVerified == nil || raw.DetectedItems == nil || raw.Confidence == nil || raw.Reasoning == nil {
		return domain.VerificationVerdict{}, domain.ErrVerdictMalformed
	}
	if *raw.Confidence < 0 || *raw.Confidence > 100 {
		return domain.VerificationVerdict{}, domain.ErrVerdictMalformed
	}

	return domain.VerificationVerdict{
		IsVerified:    *raw.IsVerified,
		DetectedItems: *raw.DetectedItems,
		Confidence:    *raw.Confidence,
		Reasoning:     *raw.Reasoning,
	}, nil
}

func buildPrompt(expectedCategory string) string {
	return fmt.Sprintf(`You are an e-waste verification assistant. Analyze this image and determine if it contains "%s".

Respond with ONLY a valid JSON object in this exact format:
{
  "isVerified": boolean,
  "detectedItems": ["item1", "item2"],
  "confidence": number (0-100),
  "reasoning": "brief explanation"
}

Rules:
- isVerified: true only if you can clearly see items that match "%s"
- detectedItems: list what e-waste items you can identify
- confidence: how confident you are (0-100)
- reasoning: brief explanation of your decision

E-waste categories:
- Smartphones & Tablets: phones, tablets, mobile devices
- Laptops & Computers: laptops, desktops, keyboards, mice
- TVs & Monitors: televisions, computer monitors, displays
- Batteries & Power Banks: batteries, power banks, UPS
- Cables & Chargers: charging cables, adapters, power cables
- Other Small Appliances: small electronic devices, gadgets`, expectedCategory, expectedCategory)
}
