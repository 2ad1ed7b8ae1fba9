package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"dalla-server/src/apperr"

	"github.com/dgraph-io/ristretto"
)

// KeySet is the process-wide cache of the identity provider's public keys,
// keyed by kid. It is populated lazily on the first verification and never
// refreshed: after a provider key rotation, verification fails until the
// process restarts.
type KeySet struct {
	url    string
	client *http.Client
	cache  *ristretto.Cache

	mu      sync.Mutex
	fetched bool
}

func NewKeySet(url string) (*KeySet, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100,
		MaxCost:     100,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key cache: %w", err)
	}
	return &KeySet{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
	}, nil
}

// Key returns the public key for kid. A cache miss triggers at most one key-set
// fetch per process lifetime, with a single transparent retry when the fetch
// itself fails.
func (ks *KeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if v, ok := ks.cache.Get(kid); ok {
		return v.(*rsa.PublicKey), nil
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	if v, ok := ks.cache.Get(kid); ok {
		return v.(*rsa.PublicKey), nil
	}

	if !ks.fetched {
		if err := ks.refresh(ctx); err != nil {
			if err = ks.refresh(ctx); err != nil {
				return nil, apperr.Unavailable("failed to fetch key set")
			}
		}
		ks.fetched = true
		ks.cache.Wait()
		if v, ok := ks.cache.Get(kid); ok {
			return v.(*rsa.PublicKey), nil
		}
	}

	return nil, apperr.Unauthenticated("no matching key id")
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (ks *KeySet) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ks.url, nil)
	if err != nil {
		return err
	}
	resp, err := ks.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("key set endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		Keys []jwk `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode key set: %w", err)
	}

	for _, k := range body.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := rsaPublicKey(k)
		if err != nil {
			continue
		}
		ks.cache.Set(k.Kid, pub, 1)
	}
	return nil
}

func rsaPublicKey(k jwk) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("bad modulus: %w", err)
	}
	eb, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("bad exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: int(new(big.Int).SetBytes(eb).Int64()),
	}, nil
}
