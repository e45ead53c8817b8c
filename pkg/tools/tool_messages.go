package tools

import (
	"context"

	"github.com/jobdeck/jobdeck/pkg/session"
	"github.com/jobdeck/jobdeck/pkg/store"
)

// SendMessageTool posts a message on an application thread.
type SendMessageTool struct {
	Store store.Facade
}

func (t *SendMessageTool) Spec() Spec {
	return Spec{
		Name:        "sendMessage",
		Description: "Send a message on an application's conversation thread.",
		Parameters: map[string]Param{
			"applicationId": {Type: "string", Description: "Identifier of the application the message belongs to."},
			"content":       {Type: "string", Description: "Message body."},
		},
		Required: []string{"applicationId", "content"},
	}
}

func (t *SendMessageTool) Execute(ctx context.Context, params map[string]any, sctx session.Context) Outcome {
	applicationID := stringArg(params, "applicationId")
	content := stringArg(params, "content")
	if applicationID == "" || content == "" {
		return Fail("applicationId and content are required")
	}
	if sctx.UserID == "" {
		return Fail("no user is bound to this session")
	}

	msg, err := t.Store.CreateMessage(ctx, store.Message{
		ApplicationID: applicationID,
		SenderID:      sctx.UserID,
		Content:       content,
	})
	if err != nil {
		return Fail("could not send message: %v", err)
	}
	return OK(map[string]any{
		"message": map[string]any{
			"id":            msg.ID,
			"applicationId": msg.ApplicationID,
			"content":       msg.Content,
			"sentAt":        msg.CreatedAt.Format("2006-01-02 15:04"),
		},
	})
}
