package security

import (
	"net/http/httptest"
	"testing"
)

func TestDetectSuspiciousRequest(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name       string
		path       string
		userAgent  string
		suspicious bool
	}{
		{"normal api call", "/api/expenses", "curl/8.0", false},
		{"path traversal", "/api/../../etc/passwd", "", true},
		{"wordpress probe", "/wp-admin/setup.php", "", true},
		{"sql injection in query", "/api/expenses?id=1%20union%20select", "", true},
		{"scanner agent", "/api/expenses", "sqlmap/1.7", true},
		{"browser agent", "/api/calendar", "Mozilla/5.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.path, nil)
			if tt.userAgent != "" {
				r.Header.Set("User-Agent", tt.userAgent)
			}
			if got := d.DetectSuspiciousRequest(r); got != tt.suspicious {
				t.Errorf("DetectSuspiciousRequest = %v, want %v", got, tt.suspicious)
			}
		})
	}
}

func TestExtractClientIP(t *testing.T) {
	d := NewDetector()

	t.Run("direct connection", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "203.0.113.7:4431"
		if got := d.ExtractClientIP(r); got != "203.0.113.7" {
			t.Errorf("got %q, want 203.0.113.7", got)
		}
	})

	t.Run("forwarded header from trusted proxy", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "10.0.0.2:80"
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
		if got := d.ExtractClientIP(r); got != "203.0.113.7" {
			t.Errorf("got %q, want the forwarded client IP", got)
		}
	})

	t.Run("forwarded header from untrusted peer is ignored", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "198.51.100.9:80"
		r.Header.Set("X-Forwarded-For", "203.0.113.7")
		if got := d.ExtractClientIP(r); got != "198.51.100.9" {
			t.Errorf("got %q, want the direct peer IP", got)
		}
	})
}
