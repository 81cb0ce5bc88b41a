package repository

import (
	"context"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"

	"modaShop/models"
)

type RedisStore struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisStore(redis_conn *redis.Client, _ctx context.Context) (KVStore, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(_ctx).Err()
	if err != nil {
		return nil, err
	}
	return &RedisStore{
		rdb: redis_conn,
		ctx: _ctx,
	}, nil
}

func (r *RedisStore) Get(key string) (val string, exists bool, err error) {
	val, e := r.rdb.Get(r.ctx, key).Result()
	if e != nil {
		if e == redis.Nil {
			val = ""
			return
		}
		log.Printf("RedisStore.Get: %v", e)
		err = models.ErrStoreUnavailable
		return
	}
	exists = true
	return
}

func (r *RedisStore) Set(key string, val string) (err error) {
	// device-local documents never expire
	err = r.rdb.Set(r.ctx, key, val, 0).Err()
	if err != nil {
		log.Printf("RedisStore.Set: %v", err)
		err = models.ErrStoreUnavailable
	}
	return
}

func (r *RedisStore) Remove(key string) (err error) {
	err = r.rdb.Del(r.ctx, key).Err()
	if err != nil {
		log.Printf("RedisStore.Remove: %v", err)
		err = models.ErrStoreUnavailable
	}
	return
}
