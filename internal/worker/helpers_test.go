package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/scrypt"

	"spectre/internal/crypto"
	"spectre/internal/domain/types"
	"spectre/internal/protocol/spectre"
	"spectre/internal/services/session"
	"spectre/internal/worker"
)

// cheapKDF keeps the salt framing but replaces the cost parameters.
type cheapKDF struct{}

func (cheapKDF) Key(secret, salt []byte, _, _, _, keyLen int) ([]byte, error) {
	return scrypt.Key(secret, salt, 16, 1, 1, keyLen)
}

func cheapEngine() *spectre.Engine {
	return spectre.New(cheapKDF{}, crypto.HMACSHA256{})
}

func newWorker(t *testing.T, alg *spectre.Engine) (*worker.Worker, *session.Service) {
	t.Helper()
	sess := session.New(alg, nil, nil)
	return worker.New(sess, worker.WithDerivationLimit(0, 0)), sess
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// handle runs one request to completion and returns its responses by operation.
func handle(t *testing.T, w *worker.Worker, req types.Request) map[types.Operation]types.Response {
	t.Helper()
	var (
		mu   sync.Mutex
		resp = make(map[types.Operation]types.Response)
	)
	wait := w.Handle(testContext(t), req, func(r types.Response) {
		mu.Lock()
		defer mu.Unlock()
		if _, dup := resp[r.Operation]; dup {
			t.Errorf("duplicate %s response", r.Operation)
		}
		resp[r.Operation] = r
	})
	wait()
	return resp
}

// expected derives a result directly through the engine.
func expected(t *testing.T, e *spectre.Engine, userName, secret string, p types.SiteParams) string {
	t.Helper()
	key, err := e.UserKey(userName, []byte(secret), types.AlgorithmCurrent)
	if err != nil {
		t.Fatalf("UserKey: %v", err)
	}
	res, err := e.SiteResult(key, p.WithDefaults())
	if err != nil {
		t.Fatalf("SiteResult: %v", err)
	}
	return res
}

func version(v types.AlgorithmVersion) *types.AlgorithmVersion { return &v }

func newSession() *session.Service {
	return session.New(cheapEngine(), nil, nil)
}
