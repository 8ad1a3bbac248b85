package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/3469335/referent-n/internal/chunk"
	"github.com/3469335/referent-n/internal/domain"
	"github.com/3469335/referent-n/internal/ports"
	"github.com/3469335/referent-n/internal/prompt"
)

const (
	defaultGenerationTimeout = 60 * time.Second

	// Bodies above maxSourceTextRunes are reduced to the first and last
	// excerptChunkRunes before prompting.
	maxSourceTextRunes = 40000
	excerptChunkRunes  = 35000
)

// Generator drives text transformations through the configured provider.
type Generator struct {
	provider ports.TextGenerator
	timeout  time.Duration
	logger   *slog.Logger
}

// NewGenerator constructs the text-generation orchestrator.
func NewGenerator(provider ports.TextGenerator, timeout time.Duration, logger *slog.Logger) *Generator {
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	return &Generator{provider: provider, timeout: timeout, logger: logger}
}

// Generate validates the request, reduces oversized input, and issues a
// single completion for the requested transformation. Invalid requests are
// rejected before any network activity.
func (g *Generator) Generate(ctx context.Context, action domain.Action, sourceText, sourceURL string) (string, error) {
	if !action.Valid() {
		return "", domain.NewError(domain.KindInvalidInput,
			"valid action is required (summary, theses, or social_post)")
	}
	if strings.TrimSpace(sourceText) == "" {
		return "", domain.NewError(domain.KindInvalidInput, "text is required")
	}

	reduced := chunk.Reduce(sourceText, maxSourceTextRunes, excerptChunkRunes)
	if len(reduced) != len(sourceText) {
		g.debug("source text reduced", "action", action, "original_len", len(sourceText), "reduced_len", len(reduced))
	}

	spec, err := prompt.For(action, reduced, sourceURL)
	if err != nil {
		return "", err
	}
	return g.complete(ctx, spec)
}

// Translate renders the whole text in the target language through the same
// provider path. The input is not reduced: a partial translation is useless.
func (g *Generator) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.NewError(domain.KindInvalidInput, "text is required")
	}
	return g.complete(ctx, prompt.Translation(text))
}

func (g *Generator) complete(ctx context.Context, spec prompt.Spec) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.provider.Complete(ctx, ports.ChatRequest{
		System:      spec.System,
		User:        spec.User,
		Temperature: spec.Temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", domain.WrapError(domain.KindTimeout, err,
				"AI processing took too long; try again or use a shorter article")
		}
		return "", fmt.Errorf("complete prompt: %w", err)
	}

	if strings.TrimSpace(result) == "" {
		// A success status with no usable content is its own failure mode.
		return "", domain.NewError(domain.KindEmptyResult, "no result received from provider")
	}
	return result, nil
}

func (g *Generator) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}
