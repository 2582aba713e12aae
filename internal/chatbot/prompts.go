package chatbot

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

const SystemPrompt = `You are Typhoon, a specialist assistant focused on modern fighter aircraft (F-16, F-15EX, Rafale, Gripen, Su-35, J-20, F-35 and more). Keep answers educational and based on publicly available information. If details are uncertain or vary by source/configuration, say so clearly. Do not provide tactical combat instructions.

Formatting rules:
Plain text only. No markdown.
Do not use asterisks, underscores, backticks, hashtags, or bullet symbols.
If listing items, use numbering like:
1. Item: sentence.
2. Item: sentence.

If your response is long, it is OK to continue across multiple messages.`

const knowledgeBaseHeader = "Reference notes (public, simplified):\n"

const (
	msgEmptyPrompt    = "Please type a message for Typhoon."
	msgMissingToken   = "HF_TOKEN is missing. Set it in the server environment, then restart."
	msgNoUsableReply  = "I didn’t get a usable response that time. Please try again."
	msgStillTruncated = "Note: Output may still be cut short. Ask 'continue' again."
	msgModelErrorFmt  = "Typhoon error calling the model: %v"

	continuePrompt = "continue"
)

// LoadKnowledgeBase reads the optional reference notes. A missing file is
// not an error; the notes are simply left out of the prompt.
func LoadKnowledgeBase(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "read knowledge base %s", path)
	}
	return strings.TrimSpace(string(b)), nil
}
