package ocr

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"receipt-insights/pkg/config"
)

const visionPrompt = `Extract all text from this receipt or invoice image.
Return only the text that is visible, line by line, keeping labels such as Vendor, Date and Total next to their values.
Do not add comments. If nothing is readable, return an empty string.`

var errUnauthorized = errors.New("gigachat: unauthorized")

// GigaChatEngine recognises text through the GigaChat vision API: the image
// is uploaded to /files and then referenced from a chat completion.
type GigaChatEngine struct {
	cfg        config.GigaChatConfig
	httpClient *http.Client
	logger     *zap.Logger

	mu          sync.Mutex
	accessToken string
}

func NewGigaChatEngine(cfg config.GigaChatConfig, logger *zap.Logger) *GigaChatEngine {
	httpClient := &http.Client{}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	return &GigaChatEngine{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (e *GigaChatEngine) Name() string { return "gigachat" }

// Recognize uploads the image and asks the model to transcribe it. An expired
// token is refreshed once per call.
func (e *GigaChatEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	text, err := e.recognize(ctx, image)
	if errors.Is(err, errUnauthorized) {
		e.logger.Info("GigaChat token rejected, refreshing")
		e.resetToken()
		text, err = e.recognize(ctx, image)
	}
	return text, err
}

func (e *GigaChatEngine) recognize(ctx context.Context, image []byte) (string, error) {
	token, err := e.token(ctx)
	if err != nil {
		return "", err
	}

	fileID, err := e.uploadImage(ctx, token, image)
	if err != nil {
		return "", err
	}

	return e.completeVision(ctx, token, fileID)
}

func (e *GigaChatEngine) token(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.accessToken != "" {
		return e.accessToken, nil
	}

	token, err := e.fetchAccessToken(ctx)
	if err != nil {
		return "", err
	}
	e.accessToken = token
	return token, nil
}

func (e *GigaChatEngine) resetToken() {
	e.mu.Lock()
	e.accessToken = ""
	e.mu.Unlock()
}

// fetchAccessToken exchanges the Base64 authorization key for a bearer token.
func (e *GigaChatEngine) fetchAccessToken(ctx context.Context) (string, error) {
	rqUID := uuid.New().String()

	form := url.Values{}
	form.Set("scope", e.cfg.Scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.OAuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create OAuth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", rqUID)
	req.Header.Set("Authorization", "Basic "+e.cfg.APIKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		e.logger.Error("OAuth request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("rq_uid", rqUID),
		)
		return "", fmt.Errorf("OAuth failed with status %d: %s", resp.StatusCode, string(body))
	}

	var oauthResp struct {
		AccessToken string `json:"access_token"`
		ExpiresAt   int64  `json:"expires_at"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return "", fmt.Errorf("failed to decode OAuth response: %w", err)
	}
	if oauthResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token in OAuth response")
	}

	e.logger.Info("GigaChat access token obtained")
	return oauthResp.AccessToken, nil
}

func (e *GigaChatEngine) uploadImage(ctx context.Context, token string, image []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// "general" lets the uploaded file be attached to completions
	if err := writer.WriteField("purpose", "general"); err != nil {
		return "", fmt.Errorf("failed to write purpose field: %w", err)
	}

	mimeType := http.DetectContentType(image)
	filename := "receipt.png"
	if mimeType == "image/jpeg" {
		filename = "receipt.jpg"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", errUnauthorized
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var uploadResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	e.logger.Debug("Image uploaded to GigaChat", zap.String("file_id", uploadResp.ID))
	return uploadResp.ID, nil
}

type chatMessage struct {
	Role        string   `json:"role"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

func (e *GigaChatEngine) completeVision(ctx context.Context, token, fileID string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: e.cfg.Model,
		Messages: []chatMessage{{
			Role:        "user",
			Content:     visionPrompt,
			Attachments: []string{fileID},
		}},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", errUnauthorized
	case resp.StatusCode != http.StatusOK:
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("vision API failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var visionResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&visionResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(visionResp.Choices) == 0 {
		return "", fmt.Errorf("no response from vision API")
	}

	text := strings.TrimSpace(visionResp.Choices[0].Message.Content)
	e.logger.Debug("Text extracted via GigaChat vision", zap.Int("text_length", len(text)))

	return text, nil
}
