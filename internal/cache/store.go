package cache

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"submatch/internal/logging"
)

// expirySuffix names the sibling key holding an entry's expiry timestamp in
// epoch milliseconds.
const expirySuffix = "_expiry"

// uncategorized is the stats bucket for keys without a category prefix.
const uncategorized = "general"

// Stats summarizes cache contents.
type Stats struct {
	EntryCount  int
	TotalBytes  int64
	PerCategory map[string]int
}

// Store layers TTL expiry, encoding, and statistics over a KV backend.
// Failures on the backend degrade to cache misses; the cache is an
// optimization, never a correctness requirement.
type Store struct {
	kv     KV
	codec  *Codec
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCodec sets the value codec.
func WithCodec(codec *Codec) Option {
	return func(s *Store) { s.codec = codec }
}

// NewStore wraps kv. A nil logger disables logging.
func NewStore(kv KV, logger *slog.Logger, opts ...Option) *Store {
	store := &Store{
		kv:     kv,
		logger: logging.NewComponentLogger(logger, "cache"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Set writes value under key with the given lifetime. A zero or negative TTL
// stores an already-expired entry, which reads as a miss.
func (s *Store) Set(key, value string, ttl time.Duration) {
	expiresAt := s.now().Add(ttl).UnixMilli()
	encoded := value
	if s.codec != nil {
		encoded = s.codec.Encode(value)
	}
	if err := s.kv.Set(key, encoded); err != nil {
		s.logger.Warn("cache write failed",
			logging.String(logging.FieldEventType, "cache_write_failed"),
			logging.String("key", key),
			logging.Error(err),
			logging.String(logging.FieldImpact, "value will be recomputed next time"))
		return
	}
	if err := s.kv.Set(key+expirySuffix, strconv.FormatInt(expiresAt, 10)); err != nil {
		s.logger.Warn("cache expiry write failed",
			logging.String(logging.FieldEventType, "cache_write_failed"),
			logging.String("key", key),
			logging.Error(err))
	}
}

// Get returns the live value for key. Expired, missing, and unreadable
// entries all report a miss.
func (s *Store) Get(key string) (string, bool) {
	expiryRaw, ok, err := s.kv.Get(key + expirySuffix)
	if err != nil {
		s.logger.Warn("cache read failed",
			logging.String(logging.FieldEventType, "cache_read_failed"),
			logging.String("key", key),
			logging.Error(err))
		return "", false
	}
	if !ok {
		return "", false
	}
	expiresAt, err := strconv.ParseInt(strings.TrimSpace(expiryRaw), 10, 64)
	if err != nil || s.now().UnixMilli() >= expiresAt {
		return "", false
	}

	stored, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		if err != nil {
			s.logger.Warn("cache read failed",
				logging.String(logging.FieldEventType, "cache_read_failed"),
				logging.String("key", key),
				logging.Error(err))
		}
		return "", false
	}
	value := stored
	if s.codec != nil {
		value, err = s.codec.Decode(stored)
		if err != nil {
			s.logger.Warn("cache decode failed",
				logging.String(logging.FieldEventType, "cache_decode_failed"),
				logging.String("key", key),
				logging.Error(err))
			return "", false
		}
	}
	return value, true
}

// Delete removes key and its expiry sibling.
func (s *Store) Delete(key string) {
	if err := s.kv.Delete(key); err != nil {
		s.logger.Warn("cache delete failed", logging.String("key", key), logging.Error(err))
	}
	if err := s.kv.Delete(key + expirySuffix); err != nil {
		s.logger.Warn("cache delete failed", logging.String("key", key), logging.Error(err))
	}
}

// ClearAll removes every entry.
func (s *Store) ClearAll() error {
	keys, err := s.kv.Keys()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.kv.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// ClearCategory removes every entry whose key starts with "<name>:".
func (s *Store) ClearCategory(name string) error {
	keys, err := s.kv.Keys()
	if err != nil {
		return err
	}
	prefix := name + ":"
	for _, key := range keys {
		if strings.HasPrefix(key, prefix) {
			if err := s.kv.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats derives entry counts and sizes from the backend. Expiry siblings are
// folded into their entry rather than counted separately.
func (s *Store) Stats() (Stats, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{PerCategory: make(map[string]int)}
	for _, key := range keys {
		if strings.HasSuffix(key, expirySuffix) {
			continue
		}
		stats.EntryCount++
		stats.PerCategory[categoryOf(key)]++
		if value, ok, err := s.kv.Get(key); err == nil && ok {
			stats.TotalBytes += int64(len(value))
		}
	}
	return stats, nil
}

func categoryOf(key string) string {
	if idx := strings.IndexByte(key, ':'); idx > 0 {
		return key[:idx]
	}
	return uncategorized
}
