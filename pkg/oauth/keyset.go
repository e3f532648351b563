package oauth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"twogether/pkg/redis"
)

const keyCachePrefix = "oidc:jwks:"

// jwk 单个 JSON Web Key，只支持 RSA
type jwk struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

// KeySet 平台公钥集合，原始 JSON 缓存在 Redis 中
type KeySet struct {
	cacheKey string
	url      string
	client   *resty.Client
	cache    redis.Store
	ttl      time.Duration
	mu       sync.Mutex
}

// NewKeySet 创建公钥集合，cacheName 一般为平台名
func NewKeySet(cacheName, url string, client *resty.Client, cache redis.Store, ttl time.Duration) *KeySet {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &KeySet{
		cacheKey: keyCachePrefix + cacheName,
		url:      url,
		client:   client,
		cache:    cache,
		ttl:      ttl,
	}
}

// Key 按 kid 查找公钥，不存在时返回 ErrPublicKeyMismatch
func (k *KeySet) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	raw, err := k.cache.Get(ctx, k.cacheKey)
	switch {
	case errors.Is(err, redis.ErrNil):
		if raw, err = k.fetch(ctx); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("%w: read jwks cache: %v", ErrProviderUnavailable, err)
	}

	set, err := parseJWKS(raw)
	if err != nil {
		return nil, err
	}
	key, ok := set[kid]
	if !ok {
		return nil, fmt.Errorf("%w: kid %q", ErrPublicKeyMismatch, kid)
	}
	return key, nil
}

// Refresh 强制重新拉取公钥
func (k *KeySet) Refresh(ctx context.Context) error {
	_, err := k.fetch(ctx)
	return err
}

func (k *KeySet) fetch(ctx context.Context) (string, error) {
	// 并发请求只需要一个去拉取
	k.mu.Lock()
	defer k.mu.Unlock()

	resp, err := k.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(k.url)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %v", ErrProviderUnavailable, k.url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: fetch %s: status %d", ErrProviderUnavailable, k.url, resp.StatusCode())
	}

	raw := resp.String()
	if _, err := parseJWKS(raw); err != nil {
		return "", err
	}
	if err := k.cache.Set(ctx, k.cacheKey, raw, k.ttl); err != nil {
		return "", fmt.Errorf("%w: cache jwks: %v", ErrProviderUnavailable, err)
	}
	return raw, nil
}

func parseJWKS(raw string) (map[string]*rsa.PublicKey, error) {
	var set jwks
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		return nil, fmt.Errorf("%w: malformed jwks: %v", ErrProviderUnavailable, err)
	}
	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, key := range set.Keys {
		if key.Kty != "RSA" {
			continue
		}
		pub, err := key.rsaPublicKey()
		if err != nil {
			return nil, fmt.Errorf("%w: malformed key %q: %v", ErrProviderUnavailable, key.Kid, err)
		}
		keys[key.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: empty jwks", ErrProviderUnavailable)
	}
	return keys, nil
}

func (key jwk) rsaPublicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, err
	}
	e, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, err
	}
	exponent := new(big.Int).SetBytes(e)
	if !exponent.IsInt64() || exponent.Int64() <= 1 {
		return nil, errors.New("invalid exponent")
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(exponent.Int64()),
	}, nil
}
