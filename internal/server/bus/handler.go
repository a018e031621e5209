package bus

import (
	"context"
	"encoding/json"

	"github.com/mkozyrev/gatekeeper/internal/common"
	"github.com/mkozyrev/gatekeeper/internal/server/services"
)

// Handlers take the raw message payload and return the encoded reply.
// Whatever the service fails with, the caller sees a {status, message}
// error payload in the reply envelope.

func (s *Server) handleRegister(ctx context.Context, data []byte) []byte {
	var req RegisterRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return s.encodeError(ctx, common.BadRequest("invalid request payload"))
	}

	s.logger.Info(ctx, "Registration request", "email", req.Email)

	res, err := s.auth.Register(ctx, req.Email, req.Name, req.Password)
	if err != nil {
		return s.encodeError(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "email", req.Email, "id", res.User.ID)
	return s.encodeResult(ctx, res)
}

func (s *Server) handleLogin(ctx context.Context, data []byte) []byte {
	var req LoginRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return s.encodeError(ctx, common.BadRequest("invalid request payload"))
	}

	res, err := s.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return s.encodeError(ctx, err)
	}
	return s.encodeResult(ctx, res)
}

func (s *Server) handleVerify(ctx context.Context, data []byte) []byte {
	token, ok := decodeToken(data)
	if !ok {
		return s.encodeError(ctx, common.Unauthorized())
	}

	res, err := s.auth.VerifyToken(ctx, token)
	if err != nil {
		return s.encodeError(ctx, err)
	}
	return s.encodeResult(ctx, res)
}

// decodeToken accepts both payload spellings: a bare JSON string and a
// {"token": "..."} object.
func decodeToken(data []byte) (string, bool) {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil && raw != "" {
		return raw, true
	}
	var req VerifyRequest
	if err := json.Unmarshal(data, &req); err == nil && req.Token != "" {
		return req.Token, true
	}
	return "", false
}

func (s *Server) encodeResult(ctx context.Context, res *services.Result) []byte {
	user := res.User
	b, err := json.Marshal(Response{User: &user, Token: res.Token})
	if err != nil {
		s.logger.Error(ctx, "reply encoding failed", "error", err.Error())
		return s.encodeError(ctx, common.BadRequest("internal error"))
	}
	return b
}

func (s *Server) encodeError(ctx context.Context, err error) []byte {
	e, ok := common.Classified(err)
	if !ok {
		// The service classifies everything; this is a safety net.
		s.logger.Error(ctx, "unclassified error reached transport", "error", err.Error())
		e = common.BadRequest(err.Error())
	}
	b, mErr := json.Marshal(Response{Error: &ErrorPayload{Status: e.Status(), Message: e.Message}})
	if mErr != nil {
		return []byte(`{"error":{"status":400,"message":"internal error"}}`)
	}
	return b
}
