package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/3469335/referent-n/internal/config"
	"github.com/3469335/referent-n/internal/domain"
	"github.com/3469335/referent-n/internal/infrastructure/image"
	"github.com/3469335/referent-n/internal/infrastructure/llm"
	"github.com/3469335/referent-n/internal/infrastructure/parser"
	"github.com/3469335/referent-n/internal/logging"
	"github.com/3469335/referent-n/internal/usecase"
)

// Application wires configuration to adapters and exposes the boundary
// operations. It holds no mutable state: every operation is request-scoped
// and safe to invoke concurrently.
type Application struct {
	fetcher     *parser.PageFetcher
	generator   *usecase.Generator
	illustrator *usecase.Illustrator
}

// New builds a runnable application instance from configuration.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	fetcher := parser.NewPageFetcher(nil, cfg.Fetcher.Timeout,
		baseLogger.With("component", "fetcher"))

	chat := llm.NewOpenRouterClient(cfg.OpenRouter,
		baseLogger.With("component", "llm"))
	generator := usecase.NewGenerator(chat, cfg.OpenRouter.Timeout,
		baseLogger.With("component", "generator"))

	models := image.NewRankedModels(cfg.HuggingFace, &http.Client{})
	illustrator := usecase.NewIllustrator(models, cfg.HuggingFace.Timeout,
		baseLogger.With("component", "illustrator"))

	return &Application{
		fetcher:     fetcher,
		generator:   generator,
		illustrator: illustrator,
	}
}

// ExtractArticle downloads the page and recovers its title, publication
// date, and body text.
func (a *Application) ExtractArticle(ctx context.Context, pageURL string) (domain.Article, error) {
	rawHTML, err := a.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return domain.Article{}, err
	}
	return parser.Extract(rawHTML)
}

// GenerateArtifact produces the requested transformation of the source
// text. sourceURL is used only to back-link social posts and may be empty.
func (a *Application) GenerateArtifact(ctx context.Context, action domain.Action, sourceText, sourceURL string) (string, error) {
	return a.generator.Generate(ctx, action, sourceText, sourceURL)
}

// Translate renders the text in the target language.
func (a *Application) Translate(ctx context.Context, text string) (string, error) {
	return a.generator.Translate(ctx, text)
}

// GenerateIllustration produces an image for the prompt, typically a
// previously generated summary.
func (a *Application) GenerateIllustration(ctx context.Context, prompt string) (domain.Image, error) {
	return a.illustrator.Illustrate(ctx, prompt)
}
