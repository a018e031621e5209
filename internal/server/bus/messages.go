package bus

import "github.com/mkozyrev/gatekeeper/internal/server/models"

// Subjects the service answers on. Instances join the same queue group, so
// each request is dispatched to exactly one of them.
const (
	SubjectRegister = "auth.register.user"
	SubjectLogin    = "auth.login.user"
	SubjectVerify   = "auth.verify.user"
)

// RegisterRequest is the payload of SubjectRegister. Field shape validation
// happens at the caller's boundary; the service only checks business rules.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the payload of SubjectLogin.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest is the object form of the SubjectVerify payload. A bare
// JSON string is accepted as well.
type VerifyRequest struct {
	Token string `json:"token"`
}

// ErrorPayload is the stable {status, message} failure shape every caller
// receives, regardless of which internal stage failed.
type ErrorPayload struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Response is the reply envelope for all three subjects. Exactly one of
// (User+Token) or Error is set.
type Response struct {
	User  *models.RedactedUser `json:"user,omitempty"`
	Token string               `json:"token,omitempty"`
	Error *ErrorPayload        `json:"error,omitempty"`
}
