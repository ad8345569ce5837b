package dto

import "github.com/polkiloo/sushibar/internal/domain/repository"

// MessagesResponse carries flash messages popped from the session.
type MessagesResponse struct {
	Messages []repository.Flash `json:"messages"`
}
