package mistral

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.mistral.ai"
	defaultVisionModel = "pixtral-12b-2409"
	chatCompletionPath = "/v1/chat/completions"
	defaultHTTPTimeout = 30 * time.Second
)

// Client appelle l'API vision de Mistral pour lire les champs d'un document
// d'identité. L'appel est traité comme distant, lent et faillible : c'est à
// l'appelant de décider si un échec est bloquant.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// ExtractedIdentity est le résultat structuré d'une extraction. Les champs
// absents de la pièce restent vides.
type ExtractedIdentity struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	BirthDate   string `json:"birth_date"`
	Address     string `json:"address"`
	IDNumber    string `json:"id_number"`
	Nationality string `json:"nationality"`
	Gender      string `json:"gender"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewClient construit un client ; apiKey vide est une erreur, model et
// baseURL vides prennent les valeurs par défaut.
func NewClient(apiKey, model, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("clé API Mistral manquante")
	}
	if model == "" {
		model = defaultVisionModel
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
	}, nil
}

const extractionPrompt = `Lis la pièce d'identité sur l'image et renvoie uniquement un objet JSON avec les clés :
first_name, last_name, birth_date (format AAAA-MM-JJ), address, id_number, nationality, gender.
Laisse vide ("") toute clé illisible ou absente du document. Aucun texte hors du JSON.`

// ExtractIdentityFields envoie l'image au modèle vision et décode la
// réponse JSON. L'image part en data-URL base64 dans le corps de requête.
func (c *Client) ExtractIdentityFields(ctx context.Context, imageBytes []byte, mimeType string) (*ExtractedIdentity, error) {
	if len(imageBytes) == 0 {
		return nil, errors.New("image vide")
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageBytes))

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: extractionPrompt},
					{Type: "image_url", ImageURL: dataURL},
				},
			},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionPath, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("appel vision Mistral échoué avec le statut %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, errors.New("réponse Mistral vide")
	}

	// Certains modèles entourent encore le JSON de clôtures markdown.
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var fields ExtractedIdentity
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &fields); err != nil {
		return nil, fmt.Errorf("réponse Mistral non exploitable: %w", err)
	}
	return &fields, nil
}
