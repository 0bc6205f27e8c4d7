package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/soundhaven/musicstore/internal/transport"
)

const albumTTL = 10 * time.Minute

// AlbumCache is a read-through cache in front of catalog album lookups.
// A nil *AlbumCache is valid and caches nothing, so Redis stays optional.
type AlbumCache struct {
	rdb *redis.Client
}

func NewAlbumCache(addr string) (*AlbumCache, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &AlbumCache{rdb: rdb}, nil
}

func albumKey(id uuid.UUID) string {
	return "album:" + id.String()
}

func (c *AlbumCache) Get(ctx context.Context, id uuid.UUID) (*transport.AlbumInfo, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, albumKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var info transport.AlbumInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, false
	}
	return &info, true
}

func (c *AlbumCache) Set(ctx context.Context, info *transport.AlbumInfo) {
	if c == nil {
		return
	}
	data, err := json.Marshal(info)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, albumKey(info.ID), data, albumTTL)
}

func (c *AlbumCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
