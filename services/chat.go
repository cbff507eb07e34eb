package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/edura-app/edura-go/core"
)

// ChatService covers the /api/chat endpoints.
type ChatService struct {
	d *Dispatcher
}

func NewChatService(d *Dispatcher) *ChatService {
	return &ChatService{d: d}
}

// History fetches the conversation about a document with one other user.
func (s *ChatService) History(ctx context.Context, documentID, targetUserID string) ([]core.ChatMessage, error) {
	query := core.EncodeQuery(map[string]string{
		"documentId":   documentID,
		"targetUserId": targetUserID,
	})
	raw, err := s.d.Do(ctx, "GET", "/api/chat/history?"+query, nil)
	if err != nil {
		return nil, err
	}
	list := core.ExtractList(raw, "messages", "data")
	var messages []core.ChatMessage
	if list != nil {
		if err := json.Unmarshal(list, &messages); err != nil {
			return nil, fmt.Errorf("failed to decode chat history: %w", err)
		}
	}
	return messages, nil
}

// UploadImage attaches an image to a conversation and returns the stored
// message.
func (s *ChatService) UploadImage(ctx context.Context, documentID, targetUserID string, file io.Reader, filename string) (*core.ChatMessage, error) {
	form := NewForm().
		AddField("documentId", documentID).
		AddField("targetUserId", targetUserID).
		AddFile("file", filename, file)
	raw, err := s.d.DoForm(ctx, "POST", "/api/chat/upload", form)
	if err != nil {
		return nil, err
	}
	var message core.ChatMessage
	if err := json.Unmarshal(raw, &message); err != nil {
		return nil, fmt.Errorf("failed to decode chat upload response: %w", err)
	}
	return &message, nil
}

func (s *ChatService) Conversations(ctx context.Context) ([]core.Conversation, error) {
	raw, err := s.d.Do(ctx, "GET", "/api/chat/conversations", nil)
	if err != nil {
		return nil, err
	}
	list := core.ExtractList(raw, "conversations", "data")
	var conversations []core.Conversation
	if list != nil {
		if err := json.Unmarshal(list, &conversations); err != nil {
			return nil, fmt.Errorf("failed to decode conversations: %w", err)
		}
	}
	return conversations, nil
}
