package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mkozyrev/gatekeeper/internal/server/bus"
)

// AuthClient is the transport capability the REPL depends on. The NATS
// implementation is used in production; tests substitute a fake.
type AuthClient interface {
	Register(ctx context.Context, email, name, password string) (*bus.Response, error)
	Login(ctx context.Context, email, password string) (*bus.Response, error)
	Verify(ctx context.Context, token string) (*bus.Response, error)
	Close()
}

// NATSClient sends request/reply messages to the auth subjects.
type NATSClient struct {
	nc      *nats.Conn
	timeout time.Duration
}

func Dial(url string, timeout time.Duration) (*NATSClient, error) {
	nc, err := nats.Connect(url, nats.Name("authctl"))
	if err != nil {
		return nil, fmt.Errorf("bus connect error: %w", err)
	}
	return &NATSClient{nc: nc, timeout: timeout}, nil
}

func (c *NATSClient) Close() {
	c.nc.Close()
}

func (c *NATSClient) Register(ctx context.Context, email, name, password string) (*bus.Response, error) {
	return c.request(ctx, bus.SubjectRegister,
		bus.RegisterRequest{Email: email, Name: name, Password: password})
}

func (c *NATSClient) Login(ctx context.Context, email, password string) (*bus.Response, error) {
	return c.request(ctx, bus.SubjectLogin,
		bus.LoginRequest{Email: email, Password: password})
}

func (c *NATSClient) Verify(ctx context.Context, token string) (*bus.Response, error) {
	return c.request(ctx, bus.SubjectVerify, bus.VerifyRequest{Token: token})
}

func (c *NATSClient) request(ctx context.Context, subject string, payload any) (*bus.Response, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.nc.RequestWithContext(ctx, subject, b)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}

	resp := &bus.Response{}
	if err := json.Unmarshal(msg.Data, resp); err != nil {
		return nil, fmt.Errorf("malformed reply: %w", err)
	}
	return resp, nil
}
