package fcm

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

const (
	messagingScope = "https://www.googleapis.com/auth/firebase.messaging"
	defaultBaseURL = "https://fcm.googleapis.com"
	// 同一条消息并发发送给多个设备时的并发上限
	multicastConcurrency = 8
)

// Config FCM 客户端配置
type Config struct {
	ProjectID string
	BaseURL   string
	Timeout   time.Duration
	SendRate  float64 // 每秒最多发送条数，<=0 不限制
	Burst     int
}

// Client FCM HTTP v1 客户端
type Client struct {
	projectID string
	client    *resty.Client
	tokens    oauth2.TokenSource
	limiter   *rate.Limiter
}

var _ Sender = (*Client)(nil)

// NewClient 创建客户端
func NewClient(cfg Config, tokens oauth2.TokenSource) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.SendRate > 0 {
		if cfg.Burst <= 0 {
			cfg.Burst = int(cfg.SendRate)
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.SendRate), max(cfg.Burst, 1))
	}

	return &Client{
		projectID: cfg.ProjectID,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetRetryCount(2).
			SetRetryWaitTime(200 * time.Millisecond).
			SetRetryMaxWaitTime(2 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= 500
			}),
		tokens:  tokens,
		limiter: limiter,
	}
}

// NewClientFromCredentialsFile 使用服务账号文件创建客户端，未配置 project id 时取文件中的
func NewClientFromCredentialsFile(ctx context.Context, cfg Config, path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read firebase credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, messagingScope)
	if err != nil {
		return nil, fmt.Errorf("parse firebase credentials: %w", err)
	}
	if cfg.ProjectID == "" {
		cfg.ProjectID = creds.ProjectID
	}
	return NewClient(cfg, creds.TokenSource), nil
}

// Send 发送给单个设备，返回消息 id
func (c *Client) Send(ctx context.Context, message *Message) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	token, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("fcm access token: %w", err)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{"message": message}).
		Post(fmt.Sprintf("/v1/projects/%s/messages:send", c.projectID))
	if err != nil {
		return "", fmt.Errorf("fcm send: %w", err)
	}
	if resp.IsError() {
		return "", parseError(resp.StatusCode(), resp.Body())
	}
	return gjson.GetBytes(resp.Body(), "name").String(), nil
}

// SendMulticast 逐个设备发送，单个失败不影响其他设备
func (c *Client) SendMulticast(ctx context.Context, message *MulticastMessage) (*BatchResponse, error) {
	if len(message.Tokens) == 0 {
		return nil, ErrNoTokens
	}

	responses := make([]SendResponse, len(message.Tokens))
	sem := make(chan struct{}, multicastConcurrency)
	var wg sync.WaitGroup
	for i, token := range message.Tokens {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, token string) {
			defer wg.Done()
			defer func() { <-sem }()
			id, err := c.Send(ctx, &Message{
				Token:        token,
				Notification: message.Notification,
				Data:         message.Data,
			})
			responses[i] = SendResponse{Token: token, MessageID: id, Err: err}
		}(i, token)
	}
	wg.Wait()

	batch := &BatchResponse{Responses: responses}
	for _, r := range responses {
		if r.Success() {
			batch.SuccessCount++
		} else {
			batch.FailureCount++
		}
	}
	return batch, nil
}

// parseError 解析 google.rpc.Status，FcmError 的错误码在 details 中
func parseError(statusCode int, body []byte) *Error {
	parsed := gjson.ParseBytes(body)
	e := &Error{
		StatusCode: statusCode,
		Status:     parsed.Get("error.status").String(),
		Message:    parsed.Get("error.message").String(),
	}
	for _, code := range parsed.Get("error.details.#.errorCode").Array() {
		if code.String() != "" {
			e.ErrorCode = code.String()
			break
		}
	}
	if e.ErrorCode == "" {
		e.ErrorCode = e.Status
	}
	return e
}
