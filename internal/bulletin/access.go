package bulletin

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AccessPolicy decides who may trigger a refresh.
//
// The scheduler is recognised by its User-Agent alone. That header is
// client-controlled, so in production anyone who sends the SchedulerAgent
// prefix is admitted without the secret. Leave SchedulerAgent empty to
// require the bearer secret from every caller.
type AccessPolicy struct {
	// Production closes refresh to everyone but the scheduler and secret holders.
	Production bool
	// Secret is compared against "Authorization: Bearer <secret>". Empty never matches.
	Secret string
	// SchedulerAgent is the User-Agent prefix of the trusted scheduler. It is
	// not a credential.
	SchedulerAgent string
}

// Authorize reports whether r may trigger a refresh.
func (p AccessPolicy) Authorize(r *http.Request) bool {
	if !p.Production {
		return true
	}
	if p.SchedulerAgent != "" && strings.HasPrefix(r.UserAgent(), p.SchedulerAgent) {
		return true
	}
	if p.Secret == "" {
		return false
	}
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(p.Secret)) == 1
}

// Authorize applies the orchestrator's access policy to r.
func (o *Orchestrator) Authorize(r *http.Request) bool {
	return o.access.Authorize(r)
}
