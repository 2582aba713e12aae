package chatbot

import (
	"regexp"
	"strings"
)

var (
	headingRe = regexp.MustCompile(`^#{1,6}\s*`)
	bulletRe  = regexp.MustCompile(`^[-*•—–]\s+`)

	markdownReplacer = strings.NewReplacer(
		"\r\n", "\n",
		"\r", "\n",
		"**", "",
		"__", "",
		"`", "",
	)
)

// CleanPlainText strips common markdown decoration the model emits despite
// being told not to, keeping the words themselves.
func CleanPlainText(text string) string {
	text = markdownReplacer.Replace(text)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		s := strings.TrimSpace(line)
		s = headingRe.ReplaceAllString(s, "")
		s = bulletRe.ReplaceAllString(s, "")
		s = strings.TrimLeft(s, "*_")

		// one blank line at most between paragraphs
		if s == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, s)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
