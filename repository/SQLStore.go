package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"modaShop/models"
)

// SQLStore keeps the key-value documents in a single kv table, so the
// same code runs on an on-device sqlite3 file or a shared postgres
// instance depending on the configured driver.
type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLStore(conn *sql.DB, driver string) (KVStore, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	if driver != "sqlite3" && driver != "postgres" {
		return nil, errors.New("unsupported driver: " + driver)
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	_, err = conn.Exec("CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v TEXT NOT NULL)")
	if err != nil {
		return nil, err
	}
	return &SQLStore{
		db:     conn,
		driver: driver,
	}, nil
}

func (s *SQLStore) placeholder(n int) string {
	if s.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func (s *SQLStore) Get(key string) (val string, exists bool, err error) {
	row := s.db.QueryRow("SELECT v FROM kv WHERE k = "+s.placeholder(1), key)
	err = row.Scan(&val)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("SQLStore.Get: %v", err)
			err = models.ErrStoreUnavailable
		}
		return
	}
	exists = true
	return
}

func (s *SQLStore) Set(key string, val string) (err error) {
	query := fmt.Sprintf(
		"INSERT INTO kv (k, v) VALUES (%s, %s) ON CONFLICT (k) DO UPDATE SET v = excluded.v",
		s.placeholder(1), s.placeholder(2))
	_, err = s.db.Exec(query, key, val)
	if err != nil {
		log.Printf("SQLStore.Set: %v", err)
		err = models.ErrStoreUnavailable
	}
	return
}

func (s *SQLStore) Remove(key string) (err error) {
	_, err = s.db.Exec("DELETE FROM kv WHERE k = "+s.placeholder(1), key)
	if err != nil {
		log.Printf("SQLStore.Remove: %v", err)
		err = models.ErrStoreUnavailable
	}
	return
}
