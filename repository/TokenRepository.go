package repository

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"

	"modaShop/models"
)

const tokenKey = "auth_token"
const deviceKey = "device_id"

// TokenRepository persists the backend-issued auth token sealed at rest,
// plus the once-generated device identity.
type TokenRepository interface {
	SaveToken(token string) (err error)
	LoadToken() (token string, exists bool, err error)
	ClearToken() (err error)
	DeviceId() (id string, err error)
}

type TokenRepo struct {
	store KVStore
	aead  cipher.AEAD
}

func NewTokenRepository(store KVStore, secret string) (TokenRepository, error) {
	if store == nil {
		return nil, errors.New("store must be non-nil")
	}
	if secret == "" {
		return nil, errors.New("secret must be non-empty")
	}
	key := sha256.Sum256([]byte(secret))
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, err
	}
	return &TokenRepo{
		store: store,
		aead:  aead,
	}, nil
}

func (t *TokenRepo) SaveToken(token string) (err error) {
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err = rand.Read(nonce); err != nil {
		log.Printf("SaveToken: %v", err)
		err = models.ErrServerError
		return
	}
	sealed := t.aead.Seal(nonce, nonce, []byte(token), nil)
	err = t.store.Set(tokenKey, base64.StdEncoding.EncodeToString(sealed))
	return
}

func (t *TokenRepo) LoadToken() (token string, exists bool, err error) {
	val, ok, e := t.store.Get(tokenKey)
	if e != nil {
		err = e
		return
	}
	if !ok {
		return
	}
	sealed, e := base64.StdEncoding.DecodeString(val)
	if e != nil || len(sealed) < chacha20poly1305.NonceSizeX {
		log.Printf("LoadToken: malformed sealed token")
		return
	}
	nonce := sealed[:chacha20poly1305.NonceSizeX]
	plain, e := t.aead.Open(nil, nonce, sealed[chacha20poly1305.NonceSizeX:], nil)
	if e != nil {
		// wrong key or tampered payload, treat as signed out
		log.Printf("LoadToken: %v", e)
		return
	}
	token = string(plain)
	exists = true
	return
}

func (t *TokenRepo) ClearToken() (err error) {
	err = t.store.Remove(tokenKey)
	return
}

func (t *TokenRepo) DeviceId() (id string, err error) {
	id, exists, err := t.store.Get(deviceKey)
	if err != nil {
		return
	}
	if exists {
		return
	}
	id = uuid.NewString()
	err = t.store.Set(deviceKey, id)
	return
}
