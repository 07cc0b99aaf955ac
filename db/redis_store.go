package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"student-aid-matcher/config"
	"student-aid-matcher/logger"
	"student-aid-matcher/models"
)

const (
	sessionsKey   = "sessions" // Set: IDs of every saved session
	sessionPrefix = "session:" // String prefix: session:{id} -> session JSON, with TTL
)

// RedisStore keeps sessions in Redis
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
	log    *logger.Logger
}

// NewRedisStore creates a RedisStore whose sessions live for ttl
func NewRedisStore(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisStore {
	return &RedisStore{Client: client, TTL: ttl, log: log}
}

// Helper to generate session key
func getSessionKey(id string) string {
	return sessionPrefix + id
}

// Save stores the session and indexes its ID
func (s *RedisStore) Save(ctx context.Context, session models.Session) error {
	if session.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}

	pipe := s.Client.TxPipeline()
	pipe.SAdd(ctx, sessionsKey, session.ID)
	pipe.Set(ctx, getSessionKey(session.ID), payload, s.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Error("Error saving session", "session", session.ID, "error", err)
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}
	s.log.Debug("Saved session", "session", session.ID, "matches", len(session.Matches))
	return nil
}

// Load retrieves a session by its ID
func (s *RedisStore) Load(ctx context.Context, id string) (*models.Session, error) {
	payload, err := s.Client.Get(ctx, getSessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Expired or never existed; drop the stale index entry.
			if err := s.Client.SRem(ctx, sessionsKey, id).Err(); err != nil {
				s.log.Warn("Error pruning session index", "session", id, "error", err)
			}
			return nil, nil
		}
		s.log.Error("Error getting session", "session", id, "error", err)
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &session, nil
}

// Delete removes a session; deleting an unknown ID is not an error
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := s.Client.TxPipeline()
	pipe.SRem(ctx, sessionsKey, id)
	pipe.Del(ctx, getSessionKey(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}
	return nil
}

// List retrieves a summary of every live session
func (s *RedisStore) List(ctx context.Context) ([]models.SessionSummary, error) {
	ids, err := s.Client.SMembers(ctx, sessionsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.SessionSummary{}, nil
		}
		return nil, fmt.Errorf("failed to get session IDs from Redis: %w", err)
	}

	summaries := make([]models.SessionSummary, 0, len(ids))
	for _, id := range ids {
		session, err := s.Load(ctx, id)
		if err != nil {
			// Log the error but continue with the others
			s.log.Warn("Error fetching session", "session", id, "error", err)
			continue
		}
		if session != nil {
			summaries = append(summaries, session.Summary())
		}
	}
	sortNewestFirst(summaries)
	return summaries, nil
}

func sortNewestFirst(summaries []models.SessionSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
}

// InitializeRedisClient creates a Redis client and checks the connection
func InitializeRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}
