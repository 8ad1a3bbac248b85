package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/3469335/referent-n/internal/domain"
	"github.com/3469335/referent-n/internal/ports"
)

type stubImageModel struct {
	id    string
	img   domain.Image
	err   error
	calls int
}

func (m *stubImageModel) ID() string { return m.id }

func (m *stubImageModel) Generate(ctx context.Context, prompt string) (domain.Image, error) {
	m.calls++
	return m.img, m.err
}

func loading(id string) *stubImageModel {
	return &stubImageModel{id: id, err: domain.StatusError(http.StatusServiceUnavailable, "model %s is loading", id)}
}

func ready(id, mime string, payload []byte) *stubImageModel {
	return &stubImageModel{id: id, img: domain.Image{Bytes: payload, MimeType: mime}}
}

func TestIllustrateAuthFailureShortCircuits(t *testing.T) {
	t.Parallel()

	first := loading("first")
	second := &stubImageModel{id: "second", err: domain.StatusError(http.StatusUnauthorized, "bad key")}
	third := ready("third", "image/png", []byte("pixels"))

	illustrator := NewIllustrator([]ports.ImageModel{first, second, third}, 0, nil)
	_, err := illustrator.Illustrate(context.Background(), "a red fox")
	if err == nil {
		t.Fatal("expected auth error")
	}
	if got := domain.KindOf(err); got != domain.KindAuthError {
		t.Fatalf("expected auth_error, got %s (%v)", got, err)
	}
	if third.calls != 0 {
		t.Fatalf("third candidate must never be invoked, got %d calls", third.calls)
	}
}

func TestIllustrateFallsThroughToWarmModel(t *testing.T) {
	t.Parallel()

	first := loading("first")
	second := ready("second", "image/jpeg", []byte{0xff, 0xd8, 0xff})

	illustrator := NewIllustrator([]ports.ImageModel{first, second}, 0, nil)
	img, err := illustrator.Illustrate(context.Background(), "a red fox")
	if err != nil {
		t.Fatalf("Illustrate error: %v", err)
	}

	if img.MimeType != "image/jpeg" {
		t.Fatalf("unexpected mime type: %q", img.MimeType)
	}
	if string(img.Bytes) != string(second.img.Bytes) {
		t.Fatalf("unexpected payload: %v", img.Bytes)
	}
	if first.calls != 1 || second.calls != 1 {
		t.Fatalf("unexpected call counts: first=%d second=%d", first.calls, second.calls)
	}
}

func TestIllustrateDeprecatedEndpointContinues(t *testing.T) {
	t.Parallel()

	first := &stubImageModel{id: "first", err: domain.StatusError(http.StatusGone, "endpoint retired")}
	second := ready("second", "image/png", []byte("pixels"))

	illustrator := NewIllustrator([]ports.ImageModel{first, second}, 0, nil)
	img, err := illustrator.Illustrate(context.Background(), "a red fox")
	if err != nil {
		t.Fatalf("Illustrate error: %v", err)
	}
	if img.MimeType != "image/png" {
		t.Fatalf("unexpected mime type: %q", img.MimeType)
	}
}

func TestIllustrateExhaustionPrefersTransientOutcome(t *testing.T) {
	t.Parallel()

	first := loading("first")
	second := &stubImageModel{id: "second", err: domain.StatusError(http.StatusBadGateway, "upstream broke")}

	illustrator := NewIllustrator([]ports.ImageModel{first, second}, 0, nil)
	_, err := illustrator.Illustrate(context.Background(), "a red fox")
	if err == nil {
		t.Fatal("expected error on exhaustion")
	}
	if got := domain.KindOf(err); got != domain.KindModelLoading {
		t.Fatalf("expected model_loading, got %s (%v)", got, err)
	}
}

func TestIllustrateExhaustionWithoutTransient(t *testing.T) {
	t.Parallel()

	first := &stubImageModel{id: "first", err: domain.StatusError(http.StatusBadGateway, "upstream broke")}
	second := &stubImageModel{id: "second", err: domain.NewError(domain.KindEmptyResult, "diagnostic text instead of pixels")}

	illustrator := NewIllustrator([]ports.ImageModel{first, second}, 0, nil)
	_, err := illustrator.Illustrate(context.Background(), "a red fox")
	if err == nil {
		t.Fatal("expected error on exhaustion")
	}
	if got := domain.KindOf(err); got != domain.KindAllFailed {
		t.Fatalf("expected generation_failed, got %s (%v)", got, err)
	}
}

func TestIllustrateRejectsEmptyPrompt(t *testing.T) {
	t.Parallel()

	first := ready("first", "image/png", []byte("pixels"))
	illustrator := NewIllustrator([]ports.ImageModel{first}, 0, nil)

	_, err := illustrator.Illustrate(context.Background(), "  ")
	if err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if got := domain.KindOf(err); got != domain.KindInvalidInput {
		t.Fatalf("expected invalid_input, got %s", got)
	}
	if first.calls != 0 {
		t.Fatalf("no candidate may be invoked, got %d calls", first.calls)
	}
}

func TestIllustrateStopsInRankOrder(t *testing.T) {
	t.Parallel()

	first := ready("first", "image/png", []byte("first wins"))
	second := ready("second", "image/png", []byte("never reached"))

	illustrator := NewIllustrator([]ports.ImageModel{first, second}, 0, nil)
	img, err := illustrator.Illustrate(context.Background(), "a red fox")
	if err != nil {
		t.Fatalf("Illustrate error: %v", err)
	}
	if string(img.Bytes) != "first wins" {
		t.Fatalf("unexpected payload: %q", img.Bytes)
	}
	if second.calls != 0 {
		t.Fatalf("second candidate must not be invoked after success, got %d calls", second.calls)
	}
}
