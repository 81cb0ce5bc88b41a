package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"modaShop/models"
	"modaShop/repository"
)

type AccountService struct {
	baseURL string
	client  *http.Client
	tr      repository.TokenRepository
	now     func() time.Time
}

func NewAccountService(baseURL string, timeout time.Duration, tokenRepo repository.TokenRepository) (*AccountService, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL must be non-empty")
	}
	if tokenRepo == nil {
		return nil, errors.New("tokenRepo must be non-nil")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AccountService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		tr:      tokenRepo,
		now:     time.Now,
	}, nil
}

func (as *AccountService) SignIn(username, password string) (err error) {
	body, err := json.Marshal(models.Credentials{Username: username, Password: password})
	if err != nil {
		log.Printf("SignIn: %v", err)
		err = models.ErrServerError
		return
	}
	resp, e := as.client.Post(as.baseURL+"/users/signin", "application/json", bytes.NewReader(body))
	if e != nil {
		log.Printf("SignIn: %v", e)
		err = models.ErrServerError
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		err = models.ErrUnautorized
		return
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("SignIn: status %d", resp.StatusCode)
		err = models.ErrServerError
		return
	}
	var signin models.SigninResponse
	e = json.NewDecoder(resp.Body).Decode(&signin)
	if e != nil || signin.Token == "" {
		log.Printf("SignIn: decode: %v", e)
		err = models.ErrServerError
		return
	}
	err = as.tr.SaveToken(signin.Token)
	return
}

func (as *AccountService) SignOut() (err error) {
	err = as.tr.ClearToken()
	return
}

// SignedIn reports whether a stored, unexpired session token exists. The
// signature is the backend's to verify; the client only reads claims to
// know whom to greet and when the session lapses.
func (as *AccountService) SignedIn() (username string, ok bool) {
	token, exists, err := as.tr.LoadToken()
	if err != nil || !exists {
		return
	}
	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		log.Printf("SignedIn: %v", err)
		return
	}
	exp, err := claims.GetExpirationTime()
	if err == nil && exp != nil && exp.Before(as.now()) {
		log.Printf("SignedIn: stored session expired")
		return
	}
	if sub, e := claims.GetSubject(); e == nil {
		username = sub
	}
	if name, found := claims["username"].(string); found && name != "" {
		username = name
	}
	ok = true
	return
}

func (as *AccountService) DeviceId() (id string, err error) {
	id, err = as.tr.DeviceId()
	return
}
