// Package tokencount measures extracted text in model tokens using
// tiktoken-go, so operators can see how large parsed documents are when fed
// to an LLM.
package tokencount

import (
	"log/slog"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// fallbackEncoding is used when the model is unknown to tiktoken.
const fallbackEncoding = "cl100k_base"

// Counter provides thread-safe token counting with an encoding cache.
type Counter struct {
	encodingCache map[string]*tiktoken.Tiktoken
	mu            sync.RWMutex
}

// NewCounter creates a new token counter instance.
func NewCounter() *Counter {
	return &Counter{encodingCache: make(map[string]*tiktoken.Tiktoken)}
}

func (c *Counter) encodingFor(model string) (*tiktoken.Tiktoken, error) {
	name := normalizeModelName(model)

	c.mu.RLock()
	if enc, ok := c.encodingCache[name]; ok {
		c.mu.RUnlock()
		return enc, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if enc, ok := c.encodingCache[name]; ok {
		return enc, nil
	}

	enc, err := tiktoken.EncodingForModel(name)
	if err != nil {
		slog.Debug("falling back to default encoding",
			slog.String("model", model),
			slog.String("normalized", name),
			slog.String("encoding", fallbackEncoding),
			slog.Any("error", err))
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, err
		}
	}
	c.encodingCache[name] = enc
	return enc, nil
}

// normalizeModelName strips provider prefixes and maps model families to a
// name tiktoken knows.
func normalizeModelName(model string) string {
	model = strings.ToLower(strings.TrimSpace(model))
	if i := strings.LastIndex(model, "/"); i >= 0 {
		model = model[i+1:]
	}
	switch {
	case strings.HasPrefix(model, "gpt-4o"):
		return "gpt-4o"
	case strings.Contains(model, "gpt-4"):
		return "gpt-4"
	case strings.Contains(model, "gpt-3.5"):
		return "gpt-3.5-turbo"
	case strings.HasPrefix(model, "text-embedding-"):
		return model
	default:
		return "gpt-4"
	}
}

// CountTokens counts the tokens of text under model's encoding.
func (c *Counter) CountTokens(text, model string) (int, error) {
	enc, err := c.encodingFor(model)
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(text, nil, nil)), nil
}

// Count is CountTokens with a rough four-bytes-per-token estimate when no
// encoding can be loaded (for example when the BPE files cannot be fetched).
func (c *Counter) Count(text, model string) int {
	n, err := c.CountTokens(text, model)
	if err != nil {
		slog.Warn("failed to count tokens, using estimate",
			slog.String("model", model),
			slog.Any("error", err))
		return Estimate(text)
	}
	return n
}

// Estimate approximates a token count from the byte length of text.
func Estimate(text string) int { return len(text) / 4 }
