package db_test

import (
	"context"
	"errors"
	"testing"

	"weather-dash/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MemoryRedisClient", db.NewMemoryRedisClient()},
		// GoRedisClient needs a live server; see NewGoRedisClientFromOptions.
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, test.client.Set(ctx, "test-key", "test-value"))

			retrieved, err := test.client.Get(ctx, "test-key")
			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)

			require.NoError(t, test.client.Del(ctx, "test-key"))
			_, err = test.client.Get(ctx, "test-key")
			assert.True(t, errors.Is(err, db.ErrKeyNotFound))
		})
	}
}

func TestMemoryRedisClient_Keys(t *testing.T) {
	ctx := context.Background()
	client := db.NewMemoryRedisClient()
	_ = client.Set(ctx, "recent_searches_v1:b", "[]")
	_ = client.Set(ctx, "recent_searches_v1:a", "[]")
	_ = client.Set(ctx, "other:c", "[]")

	keys, err := client.Keys(ctx, "recent_searches_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"recent_searches_v1:a", "recent_searches_v1:b"}, keys)

	_, err = client.Keys(ctx, "[")
	assert.Error(t, err)
}

func TestMemoryRedisClient_KeysGlobSyntax(t *testing.T) {
	ctx := context.Background()
	client := db.NewMemoryRedisClient()
	for _, k := range []string{
		"recent_searches_v1:team/alice",
		"recent_searches_v1:bob",
		"recent_searches_v1:b*b",
		"recent_searches_v1:cat",
		"recent_searches_v1:cut",
		"recent_searches_v1:cot",
	} {
		require.NoError(t, client.Set(ctx, k, "[]"))
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"recent_searches_v1:*", []string{
			"recent_searches_v1:b*b", "recent_searches_v1:bob", "recent_searches_v1:cat",
			"recent_searches_v1:cot", "recent_searches_v1:cut", "recent_searches_v1:team/alice",
		}},
		{"*/alice", []string{"recent_searches_v1:team/alice"}},
		{"recent_searches_v1:c?t", []string{"recent_searches_v1:cat", "recent_searches_v1:cot", "recent_searches_v1:cut"}},
		{"recent_searches_v1:c[au]t", []string{"recent_searches_v1:cat", "recent_searches_v1:cut"}},
		{"recent_searches_v1:c[^au]t", []string{"recent_searches_v1:cot"}},
		{`recent_searches_v1:b\*b`, []string{"recent_searches_v1:b*b"}},
		{"recent_searches_v1:b.b", []string{}},
	}

	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			keys, err := client.Keys(ctx, test.pattern)
			require.NoError(t, err)
			assert.Equal(t, test.want, keys)
		})
	}
}

func TestRedisClient_Ping(t *testing.T) {
	client := db.NewMemoryRedisClient()
	assert.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, client.Close())
}
