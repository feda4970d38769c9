package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{"healthy", http.StatusOK, "Hello, World!", "", false},
		{"custom answer", http.StatusOK, "pong", "pong", false},
		{"wrong body", http.StatusOK, "Hello", "", true},
		{"trailing newline", http.StatusOK, "Hello, World!\n", "", true},
		{"server error", http.StatusInternalServerError, "Hello, World!", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("method = %s, want GET", r.Method)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := &Checker{Client: srv.Client(), URL: srv.URL, Want: tt.want}
			err := c.Check(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := &Checker{URL: url}
	if err := c.Check(context.Background()); err == nil {
		t.Error("Check() against a closed server should fail")
	}
}

func TestCheckContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	c := &Checker{Client: srv.Client(), URL: srv.URL}
	if err := c.Check(ctx); err == nil {
		t.Error("Check() should fail when the context expires")
	}
}
