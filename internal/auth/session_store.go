package auth

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("oturum kaydı bulunamadı")

// SessionStore, sunucu tarafındaki oturum kayıtlarını tutar. Çerezdeki
// token imzası geçerli olsa bile store'dan silinmiş bir oturum reddedilir.
type SessionStore interface {
	Save(ctx context.Context, sid string, userID uint, ttl time.Duration) error
	Get(ctx context.Context, sid string) (uint, error)
	Delete(ctx context.Context, sid string) error
}

var (
	_ SessionStore = (*RedisSessionStore)(nil)
	_ SessionStore = (*MemorySessionStore)(nil)
)

const sessionKeyPrefix = "session:"

type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Save(ctx context.Context, sid string, userID uint, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKeyPrefix+sid, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, sid string) (uint, error) {
	val, err := s.rdb.Get(ctx, sessionKeyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, ErrSessionNotFound
	}
	return uint(userID), nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+sid).Err()
}

// MemorySessionStore: Redis yapılandırılmadığında kullanılan süreç içi
// store. Kayıtlar uygulama yeniden başlayınca kaybolur.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]memorySession)}
}

func (s *MemorySessionStore) Save(_ context.Context, sid string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memorySession{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, sid string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, sid)
		return 0, ErrSessionNotFound
	}
	return sess.userID, nil
}

func (s *MemorySessionStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
