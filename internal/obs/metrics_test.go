package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                             "/",
		"/metrics":                     "/metrics",
		"/v1/services":                 "/v1/services",
		"/v1/services?sortBy=image":    "/v1/services",
		"/v1/services/abc":             "/v1/services/:id",
		"/v1/services/abc/deploy":      "/v1/services/:id/deploy",
		"/v1/services/abc/extra":       "/v1/services/abc/extra",
		"/v1/sessions/login":           "/v1/sessions/login",
		"/v1/healthcheck":              "/v1/healthcheck",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
