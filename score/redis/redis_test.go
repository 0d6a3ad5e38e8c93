package redis

import (
	"fmt"
	"os"
	"testing"

	"github.com/dlsteuer/miniredis"
	"github.com/go-redis/redis"
	"github.com/stretchr/testify/require"

	"github.com/gridserpent/engine/score/testsuite"
)

var store *Store
var server *miniredis.Miniredis

func TestStoreRedis(t *testing.T) {
	testsuite.Suite(t, store, func() { resetRedisServer(t) })
}

func TestNewStoreBadURL(t *testing.T) {
	_, err := NewStore("this is not a redis url")
	require.Error(t, err)
}

func TestMain(m *testing.M) {
	redisURL := os.Getenv("REDIS_URL")
	if len(redisURL) == 0 {
		// Setup server
		server = miniredis.NewMiniRedis()
		err := server.StartAddr("127.0.0.1:9736")
		if err != nil {
			fmt.Println("unable to start local redis instance")
			os.Exit(1)
		}
		redisURL = fmt.Sprintf("redis://%s", server.Addr())
	}

	// Setup store
	s, err := NewStore(redisURL)
	if err != nil {
		fmt.Println("unable to connect redis store")
		os.Exit(1)
	}
	store = s

	retCode := m.Run()
	if server != nil {
		store.Close()
		server.Close()
	}
	os.Exit(retCode)
}

func resetRedisServer(t *testing.T) {
	if server == nil {
		// this means we're running against an actual redis instance, so
		// instead flush all keys
		o, err := redis.ParseURL(os.Getenv("REDIS_URL"))
		require.NoError(t, err)
		client := redis.NewClient(o)
		err = client.FlushAll().Err()
		require.NoError(t, err)
		client.Close()
		return
	}

	server.Close()
	server = miniredis.NewMiniRedis()
	if err := server.StartAddr("127.0.0.1:9736"); err != nil {
		t.Fatalf("unable to restart local redis instance: %v", err)
	}
}
