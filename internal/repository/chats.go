package repository

import (
	"context"
	"fmt"
	"sync"
)

// Chats keeps telegram chats subscribed to balance reports
type Chats interface {
	Add(ctx context.Context, chatID int64, username string) error
	Get(ctx context.Context, chatID int64) (string, error)
	Remove(ctx context.Context, chatID int64) error
	List(ctx context.Context) (map[int64]string, error)
}

type ChatsLocalStorage struct {
	mu sync.RWMutex
	m  map[int64]string
}

func NewChatsLocalStorage() *ChatsLocalStorage {
	return &ChatsLocalStorage{
		m: make(map[int64]string),
	}
}

func (l *ChatsLocalStorage) Add(_ context.Context, chatID int64, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m[chatID] = username
	return nil
}

func (l *ChatsLocalStorage) Get(_ context.Context, chatID int64) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.m[chatID]
	if !ok {
		return "", fmt.Errorf("repository.ChatsLocalStorage.Get value with key: %d doesn't exist", chatID)
	}
	return v, nil
}

func (l *ChatsLocalStorage) Remove(_ context.Context, chatID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.m, chatID)
	return nil
}

// List returns a copy of all subscriptions, key: chatID, value: username
func (l *ChatsLocalStorage) List(_ context.Context) (map[int64]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	chats := make(map[int64]string, len(l.m))
	for chatID, username := range l.m {
		chats[chatID] = username
	}
	return chats, nil
}

var _ Chats = (*ChatsLocalStorage)(nil)
