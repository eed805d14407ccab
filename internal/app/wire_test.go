package app_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/scrypt"

	"spectre/internal/app"
	"spectre/internal/crypto"
	"spectre/internal/domain/types"
	"spectre/internal/protocol/spectre"
	"spectre/internal/worker"
)

type cheapKDF struct{}

func (cheapKDF) Key(secret, salt []byte, _, _, _, keyLen int) ([]byte, error) {
	return scrypt.Key(secret, salt, 16, 1, 1, keyLen)
}

func TestWireServesRequestsAndMetrics(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.DerivationRate = 0
	w, err := app.NewWire(cfg, nil, spectre.New(cheapKDF{}, crypto.HMACSHA256{}))
	if err != nil {
		t.Fatalf("NewWire: %v", err)
	}
	a := &app.App{Config: cfg, Log: app.NewLogger("error", "text", io.Discard), Wire: w}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c := a.Connect(ctx)
	if err := c.Authenticate(ctx, "alice", "secret", types.AlgorithmCurrent); err != nil {
		t.Fatal(err)
	}
	if err := c.Password(ctx, "example.com", types.ResultNone, 0, nil); err != nil {
		t.Fatal(err)
	}
	st, err := c.Wait(ctx, func(s worker.State) bool { return !s.Site.Pending })
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if st.Site.Error != "" {
		t.Fatalf("site: %s", st.Site.Error)
	}

	rec := httptest.NewRecorder()
	a.MetricsHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	for _, name := range []string{
		"spectre_session_derivations_total",
		"spectre_session_derivation_seconds",
		"spectre_session_cached_results 1",
	} {
		if !strings.Contains(body, name) {
			t.Fatalf("metrics missing %s", name)
		}
	}
}

func TestNewWireRejectsInvalidConfig(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.AlgorithmVersion = types.AlgorithmLast + 1
	if _, err := app.NewWire(cfg, nil, nil); err == nil {
		t.Fatal("expected error for unsupported version")
	}
}
