// Package severity 对接远端字段严重度服务，失败时静默回退到静态表。
// 远端结果只用于「增强」：同步路径永远先由 domain.ResolveSeverity 给出答案。
package severity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/situation_dashboard/internal/conf"
	"github.com/iWorld-y/situation_dashboard/internal/domain"
)

// Client 严重度服务 HTTP 客户端
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     *log.Helper
}

// NewClient 创建客户端；c 为空或未配置 BaseUrl 时返回 nil（纯静态表模式）
func NewClient(c *conf.Severity, logger log.Logger) *Client {
	if c == nil || c.BaseUrl == "" {
		return nil
	}

	timeout := 10 * time.Second
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			timeout = d
		}
	}

	rpm := c.Rpm
	if rpm <= 0 {
		rpm = 60
	}
	qps := int(c.Qps)
	if qps <= 0 {
		qps = 5
	}

	return &Client{
		baseURL: c.BaseUrl,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), qps),
		log:     log.NewHelper(logger),
	}
}

// fieldSeverityReply 严重度服务响应信封
type fieldSeverityReply struct {
	Success bool `json:"success"`
	Data    *struct {
		Severity string `json:"severity"`
	} `json:"data"`
	Error string `json:"error"`
}

// FieldSeverity 向远端查询一个字段的严重度。
// 每次调用只发起一次请求；限流未放行、超时、非 200、success=false、
// 响应体异常等一律返回 ok=false 并仅记 debug 日志，绝不上抛。
func (c *Client) FieldSeverity(ctx context.Context, category domain.Category, field string) (domain.Severity, bool) {
	if !c.limiter.Allow() {
		return domain.SeverityNone, false
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		c.log.Debugf("severity service: invalid base URL: %v", err)
		return domain.SeverityNone, false
	}
	u.Path = "/api/v1/gap-field-severities"
	q := u.Query()
	q.Set("assessmentType", string(category))
	q.Set("fieldName", field)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		c.log.Debugf("severity service: create request failed: %v", err)
		return domain.SeverityNone, false
	}

	res, err := c.client.Do(req)
	if err != nil {
		c.log.Debugf("severity service: request failed for %s/%s: %v", category, field, err)
		return domain.SeverityNone, false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.log.Debugf("severity service: status %d for %s/%s", res.StatusCode, category, field)
		return domain.SeverityNone, false
	}

	var reply fieldSeverityReply
	if err := json.NewDecoder(res.Body).Decode(&reply); err != nil {
		c.log.Debugf("severity service: decode failed: %v", err)
		return domain.SeverityNone, false
	}
	if !reply.Success || reply.Data == nil {
		c.log.Debugf("severity service: unsuccessful reply for %s/%s: %s", category, field, reply.Error)
		return domain.SeverityNone, false
	}

	s, err := domain.ParseSeverity(reply.Data.Severity)
	if err != nil {
		c.log.Debugf("severity service: %v", err)
		return domain.SeverityNone, false
	}
	return s, true
}
