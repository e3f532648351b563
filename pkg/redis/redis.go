/*
Package redis 提供 Redis 连接和键值存储

	1. 连接池管理
	2. Store 接口（Get/Set/SetNX/Del/TTL），业务代码只依赖接口
	3. MemoryStore 作为测试和本地开发的替身
*/
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// 关键配置常量
const (
	// DefaultPoolSize Redis 连接池大小
	DefaultPoolSize = 100
	// DefaultTimeout 默认操作超时时间
	DefaultTimeout = 5 * time.Second
	// DefaultMinIdleConns 最小空闲连接数
	DefaultMinIdleConns = 10
	// DefaultMaxRetries 最大重试次数
	DefaultMaxRetries = 3
	// DefaultIdleTimeout 空闲超时
	DefaultIdleTimeout = 5 * time.Minute
)

// ErrNil 键不存在
var ErrNil = errors.New("redis: key not found")

// Store 键值存储，所有操作单键原子
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// SetNX 仅在键不存在时写入，返回是否写入成功
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	// TTL 剩余存活时间，键不存在时返回 ErrNil
	TTL(ctx context.Context, key string) (time.Duration, error)
	Ping(ctx context.Context) error
}

// RedisClient Redis 客户端封装
type RedisClient struct {
	Client *redis.Client
}

var _ Store = (*RedisClient)(nil)

// RedisConfig Redis 配置结构
type RedisConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	Timeout      time.Duration
}

var (
	once  sync.Once
	Redis *RedisClient
)

/* 🔄 连接管理相关方法 */

// ConnectRedis 初始化全局 Redis 连接
func ConnectRedis(address, username, password string, db int) error {
	var err error
	once.Do(func() {
		Redis, err = NewClient(RedisConfig{
			Address:      address,
			Username:     username,
			Password:     password,
			DB:           db,
			PoolSize:     DefaultPoolSize,
			MinIdleConns: DefaultMinIdleConns,
			Timeout:      DefaultTimeout,
		})
	})
	return err
}

// NewClient 创建新的 Redis 客户端并测试连接
func NewClient(config RedisConfig) (*RedisClient, error) {
	rds := &RedisClient{
		Client: redis.NewClient(&redis.Options{
			Addr:         config.Address,
			Username:     config.Username,
			Password:     config.Password,
			DB:           config.DB,
			PoolSize:     config.PoolSize,
			MinIdleConns: config.MinIdleConns,

			// 连接池配置
			PoolTimeout:     config.Timeout,
			ConnMaxIdleTime: DefaultIdleTimeout,
			ConnMaxLifetime: 24 * time.Hour,

			// 读写超时
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,

			// 重试策略
			MaxRetries:      DefaultMaxRetries,
			MinRetryBackoff: 8 * time.Millisecond,
			MaxRetryBackoff: 512 * time.Millisecond,
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	if err := rds.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis connect %s: %w", config.Address, err)
	}
	return rds, nil
}

/* 🔍 健康检查方法 */

// Ping 测试 Redis 连接
func (rds *RedisClient) Ping(ctx context.Context) error {
	return rds.Client.Ping(ctx).Err()
}

/* 📝 数据操作方法 */

// Get 获取键值，键不存在返回 ErrNil
func (rds *RedisClient) Get(ctx context.Context, key string) (string, error) {
	result, err := rds.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNil
	}
	return result, err
}

// Set 存储键值对
func (rds *RedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return rds.Client.Set(ctx, key, value, ttl).Err()
}

// SetNX 仅在键不存在时存储
func (rds *RedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return rds.Client.SetNX(ctx, key, value, ttl).Result()
}

// Del 删除键
func (rds *RedisClient) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rds.Client.Del(ctx, keys...).Err()
}

// TTL 获取剩余存活时间
func (rds *RedisClient) TTL(ctx context.Context, key string) (time.Duration, error) {
	d, err := rds.Client.TTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// -2 表示键不存在，-1 表示没有过期时间
	if d == -2 {
		return 0, ErrNil
	}
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

// Close 关闭连接
func (rds *RedisClient) Close() error {
	return rds.Client.Close()
}
