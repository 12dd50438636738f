package config

import (
	"context"
	"log"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var locker *redislock.Client

// GetRedisLock returns the shared lock client, or nil when Redis is not
// configured. The sequence reservation treats nil as "run unlocked",
// which is the inherited append-then-count behavior.
func GetRedisLock() *redislock.Client {
	return locker
}

// ConnectRedisWithRetry connects and sets the global Redis client + lock
// client. Redis is optional here: it only serializes report-number
// reservations. Call from main() AFTER the HTTP server is listening so
// container startup never blocks on it.
func ConnectRedisWithRetry(redisAddr string) {
	if redisAddr == "" {
		log.Printf("REDIS_ADDRESS not set; sequence reservation runs without a lock")
		return
	}

	ctx := context.Background()
	var attempt int
	for {
		attempt++
		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		if err := rdb.Ping(ctx).Err(); err == nil {
			locker = redislock.New(rdb)
			log.Printf("connected to redis (attempt=%d addr=%s)", attempt, redisAddr)
			return
		} else {
			rdb.Close()
			backoff := min(attempt, 5)
			sleep := time.Second * time.Duration(1<<backoff)
			if sleep > 30*time.Second {
				sleep = 30 * time.Second
			}
			log.Printf("failed to connect redis (attempt=%d addr=%s): %v; retrying in %s", attempt, redisAddr, err, sleep)
			time.Sleep(sleep)
		}
	}
}
