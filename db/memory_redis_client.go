package db

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// MemoryRedisClient keeps keys in process memory. It backs local runs without a
// Redis server and the DAO tests.
type MemoryRedisClient struct {
	data map[string]string
	mu   sync.RWMutex
}

func NewMemoryRedisClient() *MemoryRedisClient {
	return &MemoryRedisClient{
		data: make(map[string]string),
	}
}

func (m *MemoryRedisClient) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryRedisClient) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

func (m *MemoryRedisClient) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys supports the KEYS glob syntax ("*", "?", "[...]", "\\" escapes); results are sorted.
// Unlike filepath globs, "*" also matches "/".
func (m *MemoryRedisClient) Keys(ctx context.Context, pattern string) ([]string, error) {
	re, err := globToRegexp(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := []string{}
	for k := range m.data {
		if re.MatchString(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func globToRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			b.WriteString("(?s:.*)")
		case '?':
			b.WriteString("(?s:.)")
		case '\\':
			if i+1 < len(runes) {
				i++
				b.WriteString(regexp.QuoteMeta(string(runes[i])))
			} else {
				b.WriteString(regexp.QuoteMeta("\\"))
			}
		case '[':
			end := i + 1
			if end < len(runes) && runes[end] == '^' {
				end++
			}
			if end < len(runes) && runes[end] == ']' {
				end++
			}
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				return nil, fmt.Errorf("unterminated character class")
			}
			class := runes[i+1 : end]
			b.WriteString("[")
			for j, c := range class {
				switch {
				case j == 0 && c == '^':
					b.WriteRune('^')
				case c == '\\' || c == '[' || c == ']':
					b.WriteRune('\\')
					b.WriteRune(c)
				default:
					b.WriteRune(c)
				}
			}
			b.WriteString("]")
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

func (m *MemoryRedisClient) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryRedisClient) Close() error {
	return nil
}
