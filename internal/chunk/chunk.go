// Package chunk reduces oversized article bodies to a bounded excerpt.
//
// For long-form articles the introduction and the conclusion carry most of
// the thesis-bearing sentences, so the reducer keeps both ends and elides
// the middle instead of truncating from the start.
package chunk

const (
	elisionMarker = "\n\n[...пропущена средняя часть статьи...]\n\n"
	shortenedNote = "\n\n[Примечание: статья была сокращена для обработки из-за большого объема]"
)

// Reduce returns body unchanged when it fits into maxLen runes; otherwise
// it concatenates the first and last chunkSize runes with an elision marker
// and appends a note that the source was shortened. Pure and deterministic.
func Reduce(body string, maxLen, chunkSize int) string {
	runes := []rune(body)
	if len(runes) <= maxLen {
		return body
	}

	head := string(runes[:chunkSize])
	tail := string(runes[len(runes)-chunkSize:])
	return head + elisionMarker + tail + shortenedNote
}
