// Package bus is the message-bus transport shell: it subscribes to the auth
// subjects on NATS and translates between JSON envelopes and the
// AuthService. All business decisions, including error classification, live
// in the service; this layer only encodes them.
package bus

import (
	"context"

	"github.com/nats-io/nats.go"

	"github.com/mkozyrev/gatekeeper/internal/logging"
	"github.com/mkozyrev/gatekeeper/internal/server/services"
)

type Server struct {
	url    string
	queue  string
	logger logging.Logger
	auth   *services.AuthService
}

func NewServer(url, queue string, l logging.Logger, auth *services.AuthService) *Server {
	return &Server{
		url:    url,
		queue:  queue,
		logger: l.With("module", "bus_server"),
		auth:   auth,
	}
}

// Run connects to the bus, subscribes the queue-group handlers, and blocks
// until ctx is cancelled. On shutdown the connection is drained so replies
// in flight are delivered before the subscriptions close.
func (s *Server) Run(ctx context.Context) error {
	closed := make(chan struct{})

	nc, err := nats.Connect(s.url,
		nats.Name("gatekeeper"),
		nats.ClosedHandler(func(*nats.Conn) { close(closed) }),
	)
	if err != nil {
		return err
	}

	subjects := map[string]func(context.Context, []byte) []byte{
		SubjectRegister: s.handleRegister,
		SubjectLogin:    s.handleLogin,
		SubjectVerify:   s.handleVerify,
	}

	for subject, handler := range subjects {
		h := handler
		_, err := nc.QueueSubscribe(subject, s.queue, func(m *nats.Msg) {
			if reply := h(ctx, m.Data); reply != nil {
				if err := m.Respond(reply); err != nil {
					s.logger.Error(ctx, "reply failed", "subject", m.Subject, "error", err.Error())
				}
			}
		})
		if err != nil {
			nc.Close()
			return err
		}
	}

	s.logger.Info(ctx, "Bus server listening", "url", s.url, "queue", s.queue)

	<-ctx.Done()

	s.logger.Info(ctx, "Stopping bus server...")
	if err := nc.Drain(); err != nil {
		nc.Close()
		return err
	}
	<-closed
	return nil
}
