package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func Connect(config Config, log *zap.Logger) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     100,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  5 * time.Minute,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	info, err := client.Info(ctx, "server").Result()
	if err != nil {
		log.Warn("failed to get Redis info", zap.Error(err))
	} else {
		log.Info("redis connected",
			zap.String("addr", addr),
			zap.String("version", parseInfo(info)["redis_version"]))
	}

	return client, nil
}

var statKeys = []string{
	"redis_version",
	"connected_clients",
	"used_memory_human",
	"keyspace_hits",
	"keyspace_misses",
	"uptime_in_seconds",
}

// GetStats returns the subset of INFO fields reported by the health endpoint.
func GetStats(ctx context.Context, client *redis.Client) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	info, err := client.Info(ctx).Result()
	if err != nil {
		return nil, err
	}

	all := parseInfo(info)
	stats := make(map[string]string, len(statKeys))
	for _, key := range statKeys {
		if value, ok := all[key]; ok {
			stats[key] = value
		}
	}
	return stats, nil
}

// parseInfo splits the key:value lines of an INFO reply, skipping section
// headers.
func parseInfo(info string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(info, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if key, value, found := strings.Cut(line, ":"); found {
			fields[key] = value
		}
	}
	return fields
}
