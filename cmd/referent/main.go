package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/3469335/referent-n/internal/app"
	"github.com/3469335/referent-n/internal/config"
	"github.com/3469335/referent-n/internal/domain"
	"github.com/3469335/referent-n/internal/logging"
)

func main() {
	var (
		pageURL   = flag.String("url", "", "article URL to process")
		action    = flag.String("action", "", "transformation: summary, theses, social_post or translate (empty prints the extracted article)")
		imgPrompt = flag.String("illustrate", "", "generate an illustration for the given prompt instead of processing a URL")
		outFile   = flag.String("out", "illustration.png", "output file for generated illustrations")
	)
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	application := app.New(cfg, logger)
	ctx := context.Background()

	switch {
	case *imgPrompt != "":
		img, err := application.GenerateIllustration(ctx, *imgPrompt)
		if err != nil {
			logger.Error("illustration failed", "error", err, "kind", domain.KindOf(err))
			os.Exit(1)
		}
		if err := os.WriteFile(*outFile, img.Bytes, 0o644); err != nil {
			logger.Error("cannot write illustration", "error", err)
			os.Exit(1)
		}
		logger.Info("illustration written", "file", *outFile, "mime", img.MimeType)

	case *pageURL != "":
		article, err := application.ExtractArticle(ctx, *pageURL)
		if err != nil {
			logger.Error("extraction failed", "error", err, "kind", domain.KindOf(err))
			os.Exit(1)
		}

		if *action == "" {
			fmt.Printf("%s\n%s\n\n%s\n", article.Title, article.PublishedAt.Format("2006-01-02"), article.Body)
			return
		}

		var result string
		if *action == "translate" {
			result, err = application.Translate(ctx, article.Body)
		} else {
			result, err = application.GenerateArtifact(ctx, domain.Action(*action), article.Body, *pageURL)
		}
		if err != nil {
			logger.Error("generation failed", "error", err, "kind", domain.KindOf(err))
			os.Exit(1)
		}
		fmt.Println(result)

	default:
		flag.Usage()
		os.Exit(2)
	}
}
