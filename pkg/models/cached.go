package models

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jobdeck/jobdeck/pkg/cache"
	"github.com/jobdeck/jobdeck/pkg/chat"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

// CachedModel wraps a ChatModel and memoizes plain completions. Tool-augmented
// calls bypass the cache: tool outcomes depend on live data.
type CachedModel struct {
	Model ChatModel
	Cache *cache.LRU
}

func NewCachedModel(model ChatModel, size int, ttl time.Duration) *CachedModel {
	return &CachedModel{
		Model: model,
		Cache: cache.NewLRU(size, ttl),
	}
}

func (c *CachedModel) Complete(ctx context.Context, messages []chat.Message, system string) (string, error) {
	key := completionKey(messages, system)
	if val, ok := c.Cache.Get(key); ok {
		if text, ok := val.(string); ok {
			return text, nil
		}
	}

	text, err := c.Model.Complete(ctx, messages, system)
	if err != nil {
		return "", err
	}
	c.Cache.Set(key, text)
	return text, nil
}

func (c *CachedModel) CompleteWithTools(ctx context.Context, messages []chat.Message, system string, specs []tools.Spec) (*Reply, error) {
	return c.Model.CompleteWithTools(ctx, messages, system, specs)
}

func completionKey(messages []chat.Message, system string) string {
	blob, _ := json.Marshal(struct {
		System   string
		Messages []chat.Message
	}{System: system, Messages: messages})
	return cache.HashKey(string(blob))
}
