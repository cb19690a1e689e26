package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agbru/fibscroll/internal/logging"
	"github.com/agbru/fibscroll/internal/sequence"
)

func TestServer_ServeWithGenerator(t *testing.T) {
	gen := sequence.New()
	defer gen.Close()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := New(gen, DefaultConfig(ln.Addr().String()), nil, logging.Nop())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/v1/fib?n=91")
	if err != nil {
		cancel()
		t.Fatalf("GET: %v", err)
	}
	var body valueResponse
	err = json.NewDecoder(resp.Body).Decode(&body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Index != 91 || body.Value != 7540113804746346429 {
		t.Errorf("body = %+v", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v after shutdown, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServer_ListenAndServeBadAddr(t *testing.T) {
	gen := sequence.New()
	defer gen.Close()
	s := New(gen, DefaultConfig("256.0.0.1:bad"), nil, nil)
	if err := s.ListenAndServe(context.Background()); err == nil {
		t.Error("expected listen error")
	}
}

func TestHandleSequence_HugeFrom(t *testing.T) {
	gen := sequence.New()
	defer gen.Close()
	s := New(gen, DefaultConfig(":0"), nil, logging.Nop())

	for _, from := range []string{"1000", "9223372036854775807", "9223372036854775800"} {
		t.Run(from, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sequence?from="+from+"&count=5", http.NoBody))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			var body sequenceResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !body.Overflow || len(body.Values) != 0 {
				t.Errorf("body = %+v, want no values and overflow", body)
			}
		})
	}
}
