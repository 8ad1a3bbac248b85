package ports

import (
	"context"

	"github.com/3469335/referent-n/internal/domain"
)

// HTMLFetcher retrieves the raw HTML document behind a URL.
type HTMLFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// ChatRequest carries a single prompt to a text-generation provider.
type ChatRequest struct {
	System      string
	User        string
	Temperature float32
}

// TextGenerator issues one chat completion against a configured provider
// and returns the generated text verbatim.
type TextGenerator interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// ImageModel is a single ranked candidate for illustration generation.
// Generate returns the binary payload on success; failures surface as
// domain errors carrying the provider's HTTP status so the orchestrator
// can decide whether to fall through or abort.
type ImageModel interface {
	ID() string
	Generate(ctx context.Context, prompt string) (domain.Image, error)
}
