package agent

import (
	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"
)

// logPromptTokens records the approximate token size of an outbound prompt.
// The gpt-3.5-turbo encoding is close enough for budgeting across providers.
func logPromptTokens(prompt string) {
	enc, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
	if err != nil {
		log.Debug().Err(err).Msg("token encoding unavailable")
		return
	}
	tokens := enc.Encode(prompt, nil, nil)
	log.Debug().Int("prompt_tokens", len(tokens)).Int("prompt_chars", len(prompt)).Msg("sending prompt")
}
