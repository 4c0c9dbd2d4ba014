//go:build e2e

package e2e_test

import (
	"net/http"
	"os"
	"testing"
	"time"
)

// getenv returns the value of the environment variable k or def if empty.
func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func baseURL() string { return getenv("E2E_BASE_URL", "http://localhost:8000") }

// waitForApp polls /healthz until the server answers or timeout elapses.
func waitForApp(t *testing.T, client *http.Client, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL() + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Skipf("app not reachable at %s within %s", baseURL(), timeout)
}
