package redis

import (
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

type fixedIDs []string

type sequence struct {
	mu  sync.Mutex
	ids []string
	i   int
}

func (f fixedIDs) gen() *sequence { return &sequence{ids: f} }

func (s *sequence) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.ids[s.i%len(s.ids)]
	s.i++
	return id
}
