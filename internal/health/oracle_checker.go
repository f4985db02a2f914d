package health

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// OracleChecker probes the oracle's host. Any HTTP answer below 500 counts
// as reachable; chat endpoints typically reject a bare GET, which is fine.
type OracleChecker struct {
	provider string
	endpoint string
	client   *http.Client
}

// NewOracleChecker creates a checker for the oracle at endpoint
func NewOracleChecker(provider, endpoint string, client *http.Client) *OracleChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &OracleChecker{provider: provider, endpoint: endpoint, client: client}
}

func (c *OracleChecker) Name() string {
	return "oracle"
}

// Check issues a GET against the scheme and host of the endpoint.
func (c *OracleChecker) Check(ctx context.Context) *Result {
	u, err := url.Parse(c.endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Unhealthy("invalid oracle endpoint").
			WithDetail("provider", c.provider).
			WithDetail("endpoint", c.endpoint)
	}
	probe := u.Scheme + "://" + u.Host + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probe, nil)
	if err != nil {
		return Unhealthy(err.Error()).WithDetail("provider", c.provider)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Unhealthy("oracle unreachable").
			WithDetail("provider", c.provider).
			WithDetail("error", err.Error())
	}
	resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return Degraded(fmt.Sprintf("oracle answered %d", resp.StatusCode)).
			WithDetail("provider", c.provider)
	}
	return Healthy("oracle reachable").
		WithDetail("provider", c.provider).
		WithDetail("status_code", resp.StatusCode)
}
