package models

import (
	"context"
	"strings"
	"sync"

	"github.com/jobdeck/jobdeck/pkg/chat"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

// DummyModel is a scripted model implementation for testing without API
// calls. Each call pops the next scripted reply; when the script is empty it
// echoes the last user message.
type DummyModel struct {
	mu     sync.Mutex
	Script []*Reply
	Err    error

	// Calls records every transcript the model received, in order.
	Calls [][]chat.Message
}

func NewDummyModel(script ...*Reply) *DummyModel {
	return &DummyModel{Script: script}
}

func (d *DummyModel) next(messages []chat.Message) (*Reply, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.Calls = append(d.Calls, append([]chat.Message(nil), messages...))
	if d.Err != nil {
		return nil, d.Err
	}
	if len(d.Script) > 0 {
		reply := d.Script[0]
		d.Script = d.Script[1:]
		return reply, nil
	}

	var last string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == chat.RoleUser && strings.TrimSpace(messages[i].Content) != "" {
			last = messages[i].Content
			break
		}
	}
	if last == "" {
		last = "<empty prompt>"
	}
	return &Reply{Text: "Dummy response: " + last}, nil
}

func (d *DummyModel) Complete(_ context.Context, messages []chat.Message, _ string) (string, error) {
	reply, err := d.next(messages)
	if err != nil {
		return "", err
	}
	return reply.Text, nil
}

func (d *DummyModel) CompleteWithTools(_ context.Context, messages []chat.Message, _ string, _ []tools.Spec) (*Reply, error) {
	return d.next(messages)
}
