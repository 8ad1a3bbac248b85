package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/3469335/referent-n/internal/config"
	"github.com/3469335/referent-n/internal/domain"
)

func TestExtractArticleEndToEnd(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`
		<html><head><title>Doc</title></head><body>
		  <h1>Wired Up</h1>
		  <time datetime="2024-01-01T00:00:00Z">Jan 1</time>
		  <article>
		    <p>A paragraph long enough to make it into the extracted body.</p>
		    <p>Another paragraph long enough to make it into the body too.</p>
		  </article>
		</body></html>`))
	}))
	defer server.Close()

	application := New(config.Load(), nil)

	article, err := application.ExtractArticle(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ExtractArticle error: %v", err)
	}

	if article.Title != "Wired Up" {
		t.Fatalf("unexpected title: %q", article.Title)
	}
	want := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !article.PublishedAt.Equal(want) {
		t.Fatalf("unexpected published date: %v", article.PublishedAt)
	}
	if !strings.Contains(article.Body, "long enough to make it") {
		t.Fatalf("unexpected body: %q", article.Body)
	}
}

func TestExtractArticleRejectsMalformedURL(t *testing.T) {
	t.Parallel()

	application := New(config.Load(), nil)
	_, err := application.ExtractArticle(context.Background(), "::: not a url :::")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := domain.KindOf(err); got != domain.KindInvalidInput {
		t.Fatalf("expected invalid_input, got %s", got)
	}
}
