// Package prompt maps each transformation to its fixed provider prompt.
package prompt

import (
	"fmt"

	"github.com/3469335/referent-n/internal/domain"
)

// Spec is a fully instantiated prompt ready to send to the provider.
type Spec struct {
	System      string
	User        string
	Temperature float32
}

const (
	summarySystem = "You are an expert article summarizer specializing in English-language articles. Provide a clear, concise summary in Russian that captures:\n" +
		"- The main topic and purpose of the article\n" +
		"- Key arguments and findings\n" +
		"- Important conclusions or implications\n" +
		"Keep it brief (2-3 paragraphs, approximately 150-200 words). Write in natural, fluent Russian. Do not add any explanations, comments, or meta-text - only provide the summary itself."

	thesesSystem = "You are an expert at analyzing articles and extracting key points. Create a structured list of main theses from the article in Russian. Each thesis should:\n" +
		"- Be a complete, meaningful statement\n" +
		"- Represent a significant idea or finding\n" +
		"- Be concise (one sentence per thesis)\n" +
		"Format as a bulleted list using \"-\" or \"•\". Focus on the most important and actionable points. Write in natural Russian. Do not add explanations or comments - only provide the list."

	socialPostSystem = "You are a social media content creator. Create an engaging Telegram post in Russian based on the article. Include:\n" +
		"- Catchy headline/emoji\n" +
		"- Brief summary (2-3 sentences)\n" +
		"- Key points (bullet format)\n" +
		"- Call to action or conclusion\n" +
		"- At the end, add a hyperlink to the source article in Telegram markdown format: [текст](URL)\n" +
		"Format it for Telegram (use emojis, line breaks, hashtags if appropriate). Do not add any explanations or comments, only provide the post."

	translateSystem = "You are a professional translator. Translate the following English text to Russian. Preserve the formatting, structure, and meaning of the original text. Do not add any explanations or comments, only provide the translation."
)

// For builds the prompt for the requested action. Unknown actions are
// rejected here, before any provider is contacted.
func For(action domain.Action, text, sourceURL string) (Spec, error) {
	switch action {
	case domain.ActionSummary:
		return Spec{
			System:      summarySystem,
			User:        "Summarize the following English article in Russian. Focus on the essential information and main ideas:\n\n" + text,
			Temperature: 0.3,
		}, nil
	case domain.ActionTheses:
		return Spec{
			System:      thesesSystem,
			User:        "Extract the main theses and key points from the following English article. Present them as a bulleted list in Russian:\n\n" + text,
			Temperature: 0.3,
		}, nil
	case domain.ActionSocialPost:
		return Spec{
			System:      socialPostSystem,
			User:        socialPostUser(text, sourceURL),
			Temperature: 0.5,
		}, nil
	}
	return Spec{}, domain.NewError(domain.KindInvalidInput, "unknown action %q", action)
}

// Translation produces the prompt for the standalone translation operation.
func Translation(text string) Spec {
	return Spec{
		System:      translateSystem,
		User:        "Translate the following text to Russian:\n\n" + text,
		Temperature: 0.3,
	}
}

// socialPostUser instructs a source backlink only when a URL is known; a
// placeholder link is never fabricated.
func socialPostUser(text, sourceURL string) string {
	if sourceURL == "" {
		return "Create a Telegram post in Russian based on the following article:\n\n" + text
	}
	return fmt.Sprintf(
		"Create a Telegram post in Russian based on the following article. At the end of the post, add a hyperlink to the source article in Telegram markdown format [Источник](%s) or [Читать далее](%s). Use the format: [текст](URL)\n\nArticle:\n%s",
		sourceURL, sourceURL, text,
	)
}
