package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/3469335/referent-n/internal/domain"
	"github.com/3469335/referent-n/internal/ports"
)

const defaultCandidateTimeout = 60 * time.Second

// attempt outcomes decide whether the candidate loop continues or aborts.
type outcome int

const (
	outcomeSuccess outcome = iota
	// Model cold start; the next candidate may already be warm.
	outcomeTransient
	// The credential is wrong for every candidate.
	outcomeAuth
	// Endpoint retired for this model.
	outcomeDeprecated
	// Success status but a diagnostic body instead of pixels.
	outcomeMalformed
	outcomeFailure
)

func classifyOutcome(err error) outcome {
	if err == nil {
		return outcomeSuccess
	}
	status := domain.StatusOf(err)
	switch {
	case status == http.StatusServiceUnavailable:
		return outcomeTransient
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return outcomeAuth
	case status == http.StatusGone:
		return outcomeDeprecated
	case domain.KindOf(err) == domain.KindEmptyResult:
		return outcomeMalformed
	default:
		return outcomeFailure
	}
}

// Illustrator walks a ranked list of image models strictly in order;
// the first success wins. Candidates are never tried in parallel because
// an auth failure must short-circuit the remaining ones.
type Illustrator struct {
	models  []ports.ImageModel
	timeout time.Duration
	logger  *slog.Logger
}

// NewIllustrator constructs the image-generation orchestrator. The timeout
// bounds each candidate call so one stalled model cannot consume the whole
// request budget.
func NewIllustrator(models []ports.ImageModel, timeout time.Duration, logger *slog.Logger) *Illustrator {
	if timeout <= 0 {
		timeout = defaultCandidateTimeout
	}
	return &Illustrator{models: models, timeout: timeout, logger: logger}
}

// Illustrate generates an image for the prompt, falling through the ranked
// candidates on transient failures and aborting the whole list on an auth
// failure. On exhaustion the most recent transient outcome is reported when
// one occurred; "come back later" beats an opaque failure.
func (i *Illustrator) Illustrate(ctx context.Context, prompt string) (domain.Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return domain.Image{}, domain.NewError(domain.KindInvalidInput, "prompt is required")
	}
	if len(i.models) == 0 {
		return domain.Image{}, domain.NewError(domain.KindAllFailed, "no image models configured")
	}

	var lastTransient, lastErr error
	for _, model := range i.models {
		if err := ctx.Err(); err != nil {
			return domain.Image{}, domain.WrapError(domain.KindTimeout, err, "request cancelled")
		}

		img, err := i.generateOnce(ctx, model, prompt)
		switch classifyOutcome(err) {
		case outcomeSuccess:
			i.debug("image generated", "model", model.ID(), "mime", img.MimeType, "bytes", len(img.Bytes))
			return img, nil
		case outcomeTransient:
			i.warn("model loading, trying next", "model", model.ID())
			lastTransient = err
			lastErr = err
		case outcomeAuth:
			i.warn("authorization failed, aborting candidates", "model", model.ID())
			return domain.Image{}, &domain.Error{
				Kind:    domain.KindAuthError,
				Status:  domain.StatusOf(err),
				Message: "authorization failed; check the inference API key",
				Err:     err,
			}
		case outcomeDeprecated:
			i.warn("endpoint retired, trying next", "model", model.ID())
			lastErr = err
		case outcomeMalformed:
			i.warn("non-image response, trying next", "model", model.ID(), "error", err)
			lastErr = err
		default:
			i.warn("model failed, trying next", "model", model.ID(), "error", err)
			lastErr = err
		}
	}

	if lastTransient != nil {
		return domain.Image{}, &domain.Error{
			Kind:    domain.KindModelLoading,
			Status:  http.StatusServiceUnavailable,
			Message: "the model is still loading; wait a few seconds and try again",
			Err:     lastTransient,
		}
	}
	return domain.Image{}, &domain.Error{
		Kind:    domain.KindAllFailed,
		Message: "failed to generate an image with any configured model",
		Err:     lastErr,
	}
}

func (i *Illustrator) generateOnce(ctx context.Context, model ports.ImageModel, prompt string) (domain.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()
	return model.Generate(ctx, prompt)
}

func (i *Illustrator) debug(msg string, args ...any) {
	if i.logger != nil {
		i.logger.Debug(msg, args...)
	}
}

func (i *Illustrator) warn(msg string, args ...any) {
	if i.logger != nil {
		i.logger.Warn(msg, args...)
	}
}
