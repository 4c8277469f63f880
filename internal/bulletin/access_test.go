package bulletin

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessPolicy_Authorize(t *testing.T) {
	prod := AccessPolicy{Production: true, Secret: "s3cret", SchedulerAgent: "vercel-cron"}

	tests := []struct {
		name   string
		policy AccessPolicy
		ua     string
		auth   string
		want   bool
	}{
		{name: "non-production is open", policy: AccessPolicy{}, want: true},
		{name: "scheduler user agent", policy: prod, ua: "vercel-cron/1.0", want: true},
		{name: "bearer secret", policy: prod, auth: "Bearer s3cret", want: true},
		{name: "wrong secret", policy: prod, auth: "Bearer nope", want: false},
		{name: "missing bearer prefix", policy: prod, auth: "s3cret", want: false},
		{name: "anonymous", policy: prod, ua: "curl/8.0", want: false},
		{name: "empty secret never matches", policy: AccessPolicy{Production: true}, auth: "Bearer ", want: false},
		{name: "scheduler agent not a prefix", policy: prod, ua: "my-vercel-cron", want: false},
		{name: "scheduler agent admits without secret", policy: prod, ua: "vercel-cron/1.0", auth: "Bearer nope", want: true},
		{name: "no scheduler agent requires secret", policy: AccessPolicy{Production: true, Secret: "s3cret"}, ua: "vercel-cron/1.0", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/bulletin/refresh", nil)
			r.Header.Set("User-Agent", tt.ua)
			if tt.auth != "" {
				r.Header.Set("Authorization", tt.auth)
			}
			assert.Equal(t, tt.want, tt.policy.Authorize(r))
		})
	}
}
