package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kavjeydev/notepod-sub000/internal/domain/entities"
)

type CacheService interface {
	GetDocument(ctx context.Context, docID string) (*entities.Document, error)
	SetDocument(ctx context.Context, doc *entities.Document) error
	GetSidebar(ctx context.Context, key string) ([]*entities.Document, error)
	SetSidebar(ctx context.Context, key string, docs []*entities.Document) error
	InvalidateDocument(ctx context.Context, docID string) error
	InvalidateSidebar(ctx context.Context, ownerID string) error
	SidebarKey(ownerID string, parentID *string) string
}

type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, duration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

type redisCacheService struct {
	client        RedisClient
	cacheDuration time.Duration
}

func NewRedisCacheService(client RedisClient, cacheDuration time.Duration) *redisCacheService {
	return &redisCacheService{
		client:        client,
		cacheDuration: cacheDuration,
	}
}

func (s *redisCacheService) GetDocument(ctx context.Context, docID string) (*entities.Document, error) {
	key := fmt.Sprintf("doc:%s", docID)
	data, err := s.client.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var doc entities.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (s *redisCacheService) SetDocument(ctx context.Context, doc *entities.Document) error {
	key := fmt.Sprintf("doc:%s", doc.ID)
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, data, s.cacheDuration)
}

func (s *redisCacheService) GetSidebar(ctx context.Context, key string) ([]*entities.Document, error) {
	data, err := s.client.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var docs []*entities.Document
	if err := json.Unmarshal([]byte(data), &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func (s *redisCacheService) SetSidebar(ctx context.Context, key string, docs []*entities.Document) error {
	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, data, s.cacheDuration)
}

func (s *redisCacheService) InvalidateDocument(ctx context.Context, docID string) error {
	key := fmt.Sprintf("doc:%s", docID)
	return s.client.Del(ctx, key)
}

// InvalidateSidebar drops every cached child list for one owner. Mutations
// can reparent across levels, so the whole owner prefix goes.
func (s *redisCacheService) InvalidateSidebar(ctx context.Context, ownerID string) error {
	pattern := fmt.Sprintf("sidebar:%s:*", ownerID)
	keys, err := s.client.Keys(ctx, pattern)
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return s.client.Del(ctx, keys...)
	}

	return nil
}

func (s *redisCacheService) SidebarKey(ownerID string, parentID *string) string {
	parent := "root"
	if parentID != nil {
		parent = *parentID
	}
	return fmt.Sprintf("sidebar:%s:%s", ownerID, parent)
}
