package image

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/3469335/referent-n/internal/config"
	"github.com/3469335/referent-n/internal/domain"
	"github.com/3469335/referent-n/internal/ports"
)

const errorPreviewBytes = 1024

// StableDiffusionModel is one ranked text-to-image candidate behind the
// Hugging Face inference router. It returns the binary payload on success;
// every failure carries the provider's HTTP status so the orchestrator can
// decide whether to fall through or abort.
type StableDiffusionModel struct {
	baseURL        string
	modelID        string
	apiKey         string
	inferenceSteps int
	guidanceScale  float64
	client         *http.Client
}

var _ ports.ImageModel = (*StableDiffusionModel)(nil)

// NewRankedModels builds the configured candidates in rank order sharing a
// single HTTP client.
func NewRankedModels(cfg config.HuggingFaceConfig, client *http.Client) []ports.ImageModel {
	if client == nil {
		client = &http.Client{}
	}

	models := make([]ports.ImageModel, 0, len(cfg.Models))
	for _, id := range cfg.Models {
		models = append(models, &StableDiffusionModel{
			baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
			modelID:        id,
			apiKey:         cfg.APIKey,
			inferenceSteps: cfg.InferenceSteps,
			guidanceScale:  cfg.GuidanceScale,
			client:         client,
		})
	}
	return models
}

// ID identifies the candidate in logs and diagnostics.
func (m *StableDiffusionModel) ID() string {
	return m.modelID
}

// Generate posts the prompt to the inference endpoint and reads back the
// image payload.
func (m *StableDiffusionModel) Generate(ctx context.Context, prompt string) (domain.Image, error) {
	payload, err := json.Marshal(map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"num_inference_steps": m.inferenceSteps,
			"guidance_scale":      m.guidanceScale,
		},
	})
	if err != nil {
		return domain.Image{}, fmt.Errorf("marshal inference payload: %w", err)
	}

	endpoint := m.baseURL + "/" + m.modelID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Image{}, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domain.Image{}, domain.WrapError(domain.KindTimeout, err, "model %s: no response in time", m.modelID)
		}
		return domain.Image{}, domain.WrapError(domain.KindUpstream, err, "model %s", m.modelID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, errorPreviewBytes))
		return domain.Image{}, domain.StatusError(resp.StatusCode,
			"model %s: %s", m.modelID, strings.TrimSpace(string(preview)))
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		// A 200 without a declared image/* type is a diagnostic message,
		// not pixels. A missing header counts as not-an-image.
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, errorPreviewBytes))
		return domain.Image{}, &domain.Error{
			Kind:    domain.KindEmptyResult,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("model %s returned %q instead of an image: %s", m.modelID, contentType, strings.TrimSpace(string(preview))),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Image{}, domain.WrapError(domain.KindUpstream, err, "model %s: read image payload", m.modelID)
	}

	return domain.Image{Bytes: raw, MimeType: contentType}, nil
}
