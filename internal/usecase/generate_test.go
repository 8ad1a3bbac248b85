package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/3469335/referent-n/internal/domain"
	"github.com/3469335/referent-n/internal/ports"
)

type stubTextGenerator struct {
	calls  int
	last   ports.ChatRequest
	result string
	err    error
}

func (s *stubTextGenerator) Complete(ctx context.Context, req ports.ChatRequest) (string, error) {
	s.calls++
	s.last = req
	return s.result, s.err
}

func TestGenerateRejectsUnknownActionWithoutNetworkCall(t *testing.T) {
	t.Parallel()

	stub := &stubTextGenerator{result: "never used"}
	generator := NewGenerator(stub, 0, nil)

	_, err := generator.Generate(context.Background(), domain.Action("unknownKind"), "text", "")
	if err == nil {
		t.Fatal("expected error for unknown action")
	}
	if got := domain.KindOf(err); got != domain.KindInvalidInput {
		t.Fatalf("expected invalid_input, got %s", got)
	}
	if stub.calls != 0 {
		t.Fatalf("provider must not be called, got %d calls", stub.calls)
	}
}

func TestGenerateRejectsEmptyText(t *testing.T) {
	t.Parallel()

	stub := &stubTextGenerator{}
	generator := NewGenerator(stub, 0, nil)

	_, err := generator.Generate(context.Background(), domain.ActionSummary, "   ", "")
	if err == nil {
		t.Fatal("expected error for empty text")
	}
	if got := domain.KindOf(err); got != domain.KindInvalidInput {
		t.Fatalf("expected invalid_input, got %s", got)
	}
	if stub.calls != 0 {
		t.Fatalf("provider must not be called, got %d calls", stub.calls)
	}
}

func TestGenerateReturnsProviderResult(t *testing.T) {
	t.Parallel()

	stub := &stubTextGenerator{result: "краткое содержание"}
	generator := NewGenerator(stub, 0, nil)

	got, err := generator.Generate(context.Background(), domain.ActionSummary, "the article body", "")
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "краткое содержание" {
		t.Fatalf("unexpected result: %q", got)
	}
	if stub.calls != 1 {
		t.Fatalf("expected a single provider call, got %d", stub.calls)
	}
	if !strings.Contains(stub.last.User, "the article body") {
		t.Fatalf("source text missing from prompt: %q", stub.last.User)
	}
}

func TestGenerateTreatsBlankOutputAsEmptyResult(t *testing.T) {
	t.Parallel()

	stub := &stubTextGenerator{result: "   \n"}
	generator := NewGenerator(stub, 0, nil)

	_, err := generator.Generate(context.Background(), domain.ActionTheses, "body", "")
	if err == nil {
		t.Fatal("expected error for blank provider output")
	}
	if got := domain.KindOf(err); got != domain.KindEmptyResult {
		t.Fatalf("expected empty_result, got %s", got)
	}
}

func TestGenerateClassifiesTimeout(t *testing.T) {
	t.Parallel()

	stub := &stubTextGenerator{err: context.DeadlineExceeded}
	generator := NewGenerator(stub, 10*time.Millisecond, nil)

	_, err := generator.Generate(context.Background(), domain.ActionSummary, "body", "")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if got := domain.KindOf(err); got != domain.KindTimeout {
		t.Fatalf("expected timeout, got %s (%v)", got, err)
	}
}

func TestGenerateReducesOversizedInput(t *testing.T) {
	t.Parallel()

	stub := &stubTextGenerator{result: "ok"}
	generator := NewGenerator(stub, 0, nil)

	longBody := strings.Repeat("a", maxSourceTextRunes+1)
	if _, err := generator.Generate(context.Background(), domain.ActionSummary, longBody, ""); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if !strings.Contains(stub.last.User, "пропущена средняя часть") {
		t.Fatal("expected elision marker in reduced prompt")
	}
}

func TestGeneratePassesSourceURLToSocialPost(t *testing.T) {
	t.Parallel()

	stub := &stubTextGenerator{result: "пост"}
	generator := NewGenerator(stub, 0, nil)

	sourceURL := "https://example.com/article"
	if _, err := generator.Generate(context.Background(), domain.ActionSocialPost, "body", sourceURL); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if !strings.Contains(stub.last.User, sourceURL) {
		t.Fatalf("source URL missing from prompt: %q", stub.last.User)
	}
}

func TestTranslateRejectsEmptyText(t *testing.T) {
	t.Parallel()

	stub := &stubTextGenerator{}
	generator := NewGenerator(stub, 0, nil)

	_, err := generator.Translate(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty text")
	}
	if got := domain.KindOf(err); got != domain.KindInvalidInput {
		t.Fatalf("expected invalid_input, got %s", got)
	}
	if stub.calls != 0 {
		t.Fatalf("provider must not be called, got %d calls", stub.calls)
	}
}

func TestTranslateReturnsProviderResult(t *testing.T) {
	t.Parallel()

	stub := &stubTextGenerator{result: "перевод"}
	generator := NewGenerator(stub, 0, nil)

	got, err := generator.Translate(context.Background(), "english text")
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if got != "перевод" {
		t.Fatalf("unexpected result: %q", got)
	}
	if !strings.Contains(stub.last.User, "english text") {
		t.Fatalf("text missing from prompt: %q", stub.last.User)
	}
}
