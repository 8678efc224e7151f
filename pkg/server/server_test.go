package server

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/suppserve/suppserve/pkg/autocomplete"
	"github.com/suppserve/suppserve/pkg/config"
)

func testService(t *testing.T) (*autocomplete.Service, *config.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Data.Dir = filepath.Join(t.TempDir(), "autocomplete")
	svc := autocomplete.New(cfg, nil)
	svc.Init()
	return svc, cfg
}

// run feeds the encoded requests through a server session and returns a
// decoder positioned after the ready message.
func run(t *testing.T, requests ...Request) *msgpack.Decoder {
	t.Helper()
	svc, cfg := testService(t)

	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}

	srv := NewServerIO(svc, cfg, &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil || ready.Status != "ready" {
		t.Fatalf("missing ready signal: %v %+v", err, ready)
	}
	return dec
}

func TestComplete(t *testing.T) {
	dec := run(t, Request{ID: "r1", Command: "complete", Category: "products", Prefix: "whey", Limit: 10})

	var resp CompletionResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != "r1" {
		t.Errorf("ID = %q, want r1", resp.ID)
	}
	if resp.Count == 0 || resp.Count != len(resp.Suggestions) {
		t.Errorf("Count = %d with %d suggestions", resp.Count, len(resp.Suggestions))
	}
	for _, sg := range resp.Suggestions {
		if len(sg.Word) < 4 || sg.Word[:4] != "whey" {
			t.Errorf("suggestion %q does not match prefix", sg.Word)
		}
	}
}

func TestCompleteValidation(t *testing.T) {
	testCases := []struct {
		name   string
		req    Request
		status int
	}{
		{"missing prefix", Request{ID: "v1", Command: "complete", Category: "products"}, 400},
		{"oversized prefix", Request{ID: "v2", Command: "complete", Category: "products",
			Prefix: string(make([]byte, 100))}, 400},
		{"unknown command", Request{ID: "v3", Command: "explode"}, 400},
	}

	for _, tc := range testCases {
		dec := run(t, tc.req)
		var resp ErrorResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("%s: decoding error response: %v", tc.name, err)
		}
		if resp.Status != tc.status || resp.Error == "" {
			t.Errorf("%s: response = %+v, want status %d", tc.name, resp, tc.status)
		}
	}
}

func TestAddAndComplete(t *testing.T) {
	dec := run(t,
		Request{ID: "a1", Command: "add", Category: "products", Words: []string{"yohimbine hcl"}},
		Request{ID: "a2", Command: "complete", Category: "products", Prefix: "yohim"},
	)

	var ack AckResponse
	if err := dec.Decode(&ack); err != nil || !ack.OK {
		t.Fatalf("add not acknowledged: %v %+v", err, ack)
	}
	var resp CompletionResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 || resp.Suggestions[0].Word != "yohimbine hcl" {
		t.Errorf("completion after add = %+v", resp)
	}
}

func TestReloadAck(t *testing.T) {
	dec := run(t, Request{ID: "rel1", Command: "reload", Category: "brands",
		Words: []string{"transparent labs", "legion athletics"}})

	var resp ReloadResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != "rel1" || !resp.Accepted {
		t.Errorf("reload response = %+v, want accepted", resp)
	}
}

func TestStats(t *testing.T) {
	dec := run(t, Request{ID: "st1", Command: "stats", Category: "brands"})

	var resp StatsResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Entries == 0 {
		t.Error("Entries = 0, want seeded brand count")
	}
	if resp.DataDir == "" {
		t.Error("DataDir empty, want configured directory")
	}
}

func TestStatsUnknownCategory(t *testing.T) {
	dec := run(t, Request{ID: "st2", Command: "stats", Category: "flavors"})

	var resp ErrorResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Status != 404 {
		t.Errorf("status = %d, want 404", resp.Status)
	}
}

func TestHealth(t *testing.T) {
	dec := run(t, Request{ID: "h1", Command: "health"})

	var resp StatusResponse
	if err := dec.Decode(&resp); err != nil || resp.Status != "ok" {
		t.Errorf("health response = %+v (%v), want ok", resp, err)
	}
}

func TestCompleteTiming(t *testing.T) {
	dec := run(t, Request{ID: "t1", Command: "complete", Category: "products", Prefix: "creatine"})

	var resp CompletionResponse
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TimeTaken < 0 || resp.TimeTaken > time.Minute.Microseconds() {
		t.Errorf("TimeTaken = %d µs, implausible", resp.TimeTaken)
	}
}
