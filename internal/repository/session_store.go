package repository

import (
	"child_growth_backend/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "assessment:session:"

// SessionStore 保存进行中的每日测评，按 (userID, childID, sessionID) 定位，过期自动失效
type SessionStore interface {
	Save(ctx context.Context, session *model.AssessmentSession, ttl time.Duration) error
	// Find 会话不存在或已过期时返回 (nil, nil)
	Find(ctx context.Context, userID, childID uint, sessionID string) (*model.AssessmentSession, error)
	Delete(ctx context.Context, userID, childID uint, sessionID string) error
}

func sessionKey(userID, childID uint, sessionID string) string {
	return fmt.Sprintf("%s%d:%d:%s", sessionKeyPrefix, userID, childID, sessionID)
}

// RedisSessionStore 多实例部署时使用，同一会话的并发写入以最后一次为准
type RedisSessionStore struct {
	Redis *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Redis: rdb}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *model.AssessmentSession, ttl time.Duration) error {
	val, err := json.Marshal(session)
	if err != nil {
		return err
	}
	key := sessionKey(session.UserID, session.ChildID, session.SessionID)
	return s.Redis.Set(ctx, key, val, ttl).Err()
}

func (s *RedisSessionStore) Find(ctx context.Context, userID, childID uint, sessionID string) (*model.AssessmentSession, error) {
	val, err := s.Redis.Get(ctx, sessionKey(userID, childID, sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var session model.AssessmentSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID, childID uint, sessionID string) error {
	return s.Redis.Del(ctx, sessionKey(userID, childID, sessionID)).Err()
}

type memorySessionEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemorySessionStore 进程内实现，仅适用于单实例部署和测试
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memorySessionEntry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

func NewMemorySessionStore(now func() time.Time) *MemorySessionStore {
	if now == nil {
		now = time.Now
	}
	return &MemorySessionStore{
		entries: make(map[string]memorySessionEntry),
		now:     now,
		stop:    make(chan struct{}),
	}
}

func (s *MemorySessionStore) Save(_ context.Context, session *model.AssessmentSession, ttl time.Duration) error {
	// 存储序列化副本，避免调用方修改已保存的会话
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	key := sessionKey(session.UserID, session.ChildID, session.SessionID)

	s.mu.Lock()
	s.entries[key] = memorySessionEntry{payload: payload, expiresAt: s.now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Find(_ context.Context, userID, childID uint, sessionID string) (*model.AssessmentSession, error) {
	key := sessionKey(userID, childID, sessionID)

	s.mu.Lock()
	entry, ok := s.entries[key]
	if ok && !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, nil
	}
	var session model.AssessmentSession
	if err := json.Unmarshal(entry.payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, userID, childID uint, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionKey(userID, childID, sessionID))
	s.mu.Unlock()
	return nil
}

// Sweep 清理已过期的会话，返回清理数量
func (s *MemorySessionStore) Sweep() int {
	now := s.now()
	removed := 0
	s.mu.Lock()
	for key, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, key)
			removed++
		}
	}
	s.mu.Unlock()
	return removed
}

// StartJanitor 定期清理过期会话，直到 Stop 被调用
func (s *MemorySessionStore) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *MemorySessionStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}
