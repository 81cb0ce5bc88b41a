package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"

	"modaShop/config"
	"modaShop/handlers"
	"modaShop/repository"
	"modaShop/services"
)

func main() {
	config.Load()

	store := initStore()
	log.Printf("store ready (%s)", config.AppEnv.StoreDriver)

	cartR, err := repository.NewCartRepository(store)
	wishR, err2 := repository.NewWishlistRepository(store)
	tokenR, err3 := repository.NewTokenRepository(store, config.AppEnv.AppSecret)
	if err != nil {
		panic(err)
	}
	if err2 != nil {
		panic(err2)
	}
	if err3 != nil {
		panic(err3)
	}

	cat, err := services.NewCatalogService(config.AppEnv.APIBaseURL, config.AppEnv.APITimeout)
	if err != nil {
		panic(err)
	}
	acc, err := services.NewAccountService(config.AppEnv.APIBaseURL, config.AppEnv.APITimeout, tokenR)
	if err != nil {
		panic(err)
	}

	h := handlers.NewHandler(handlers.HandlerParams{
		CrtService: services.NewCartService(cartR),
		WshService: services.NewWishlistService(wishR),
		NavService: services.NewNavigationService(config.AppEnv.ExitWindow),
		CatService: cat,
		AccService: acc,
		Out:        os.Stdout,
	})

	if config.AppEnv.DebugAddr != "" {
		go func() {
			log.Printf("debug endpoint on %s", config.AppEnv.DebugAddr)
			if err := http.ListenAndServe(config.AppEnv.DebugAddr, h.DebugRouter()); err != nil {
				log.Printf("debug endpoint: %v", err)
			}
		}()
	}

	h.Run(os.Stdin)
}

func initStore() repository.KVStore {
	switch config.AppEnv.StoreDriver {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.AppEnv.RedisHost + ":" + config.AppEnv.RedisPort,
			Password: "",
			DB:       0,
		})
		ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
		defer cncl()
		if status := rdb.Ping(ctx); status.Err() != nil {
			panic("redis is not working: " + status.Err().Error())
		}
		store, err := repository.NewRedisStore(rdb, context.Background())
		if err != nil {
			panic(err)
		}
		return store
	case "sqlite3", "postgres":
		db, err := sql.Open(config.AppEnv.StoreDriver, config.AppEnv.StoreDSN)
		if err != nil {
			panic(err)
		}
		store, err := repository.NewSQLStore(db, config.AppEnv.StoreDriver)
		if err != nil {
			panic(err)
		}
		return store
	case "memory":
		return repository.NewMemoryStore()
	default:
		panic("unknown STORE_DRIVER: " + config.AppEnv.StoreDriver)
	}
}
