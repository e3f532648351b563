// Package holiday 公共数据门户的法定节假日接口（SpcdeInfoService/getRestDeInfo）
package holiday

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://apis.data.go.kr/B090041/openapi/service/SpcdeInfoService"

// ErrUnavailable 接口不可用或返回了错误结果
var ErrUnavailable = errors.New("holiday: provider unavailable")

// Holiday 一个节假日
type Holiday struct {
	Date      time.Time // 当天 00:00 UTC
	Name      string
	IsHoliday bool
}

// Config 客户端配置
type Config struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
}

// Client 节假日接口客户端
type Client struct {
	serviceKey string
	client     *resty.Client
}

// NewClient 创建客户端
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		serviceKey: cfg.ServiceKey,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetRetryCount(2).
			SetRetryWaitTime(1 * time.Second).
			SetRetryMaxWaitTime(5 * time.Second),
	}
}

// Fetch 查询某年某月的节假日
func (c *Client) Fetch(ctx context.Context, year, month int) ([]Holiday, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ServiceKey": c.serviceKey,
			"solYear":    strconv.Itoa(year),
			"solMonth":   fmt.Sprintf("%02d", month),
			"numOfRows":  "100",
			"_type":      "json",
		}).
		Get("/getRestDeInfo")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}
	return parse(resp.Body())
}

// parse 解析响应，item 在只有一条时是对象，没有数据时 items 是空字符串
func parse(body []byte) ([]Holiday, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: response is not json", ErrUnavailable)
	}
	root := gjson.ParseBytes(body)
	if code := root.Get("response.header.resultCode").String(); code != "" && code != "00" {
		return nil, fmt.Errorf("%w: result %s %s", ErrUnavailable, code, root.Get("response.header.resultMsg").String())
	}

	item := root.Get("response.body.items.item")
	var items []gjson.Result
	switch {
	case !item.Exists():
	case item.IsArray():
		items = item.Array()
	case item.IsObject():
		items = []gjson.Result{item}
	}

	holidays := make([]Holiday, 0, len(items))
	for _, it := range items {
		date, err := time.Parse("20060102", it.Get("locdate").String())
		if err != nil {
			return nil, fmt.Errorf("%w: bad locdate %q", ErrUnavailable, it.Get("locdate").String())
		}
		holidays = append(holidays, Holiday{
			Date:      date,
			Name:      it.Get("dateName").String(),
			IsHoliday: it.Get("isHoliday").String() == "Y",
		})
	}
	return holidays, nil
}
