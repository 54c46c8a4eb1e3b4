package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"taskpilot/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated Redis client for session-token caching.
var AuthCacheClient *redis.Client

const authSessionPrefix = "session:"

// SessionTTL matches the JWT expiry so Redis and token lifetimes stay in step.
const SessionTTL = 72 * time.Hour

// InitAuthCache initializes the Redis client for session caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for session caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// SaveSessionToken stores the hash of an issued token so the auth middleware
// can reject revoked or stale tokens.
func SaveSessionToken(client *redis.Client, userID, tokenHash string) error {
	ctx := context.Background()
	key := authSessionPrefix + userID
	if err := client.Set(ctx, key, tokenHash, SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session token: %w", err)
	}
	return nil
}

// SessionTokenValid reports whether the presented token hash matches the
// cached session for the user.
func SessionTokenValid(client *redis.Client, userID, tokenHash string) bool {
	ctx := context.Background()
	cached, err := client.Get(ctx, authSessionPrefix+userID).Result()
	if err != nil {
		return false
	}
	return cached == tokenHash
}

// DeleteSessionToken revokes the cached session for the user.
func DeleteSessionToken(client *redis.Client, userID string) error {
	ctx := context.Background()
	return client.Del(ctx, authSessionPrefix+userID).Err()
}
