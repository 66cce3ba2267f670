/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestEventSentWhenOptedIn(t *testing.T) {
	var mu sync.Mutex
	var got []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var m map[string]any
		_ = json.NewDecoder(r.Body).Decode(&m)
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(Config{OptIn: true, EventsURL: srv.URL, Timeout: time.Second})
	defer c.Close()

	c.Event("app_start", map[string]any{"books": 3})
	c.Flush(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n > 0 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0]["name"] != "app_start" {
		t.Fatalf("event name = %v", got[0]["name"])
	}
	if _, ok := got[0]["version"]; !ok {
		t.Fatalf("event missing version attr: %v", got[0])
	}
}

func TestEventDroppedWithoutOptIn(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := New(Config{OptIn: false, EventsURL: srv.URL, Timeout: time.Second})
	defer c.Close()

	c.Event("app_start", nil)
	c.Flush(context.Background())
	time.Sleep(50 * time.Millisecond)

	if hits != 0 {
		t.Fatalf("event sent despite opt-out")
	}
	if c.Enabled() {
		t.Fatalf("client should be disabled")
	}
}

func TestNoEndpointMeansNoOp(t *testing.T) {
	c := New(Config{OptIn: true, Timeout: time.Second})
	defer c.Close()
	if c.Enabled() {
		t.Fatalf("enabled without endpoint")
	}
	// Must not panic or block.
	c.Event("x", nil)
	c.UploadCrash([]byte("report"))
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GLB_TELEMETRY_OPT_IN", "yes")
	t.Setenv("GLB_TELEMETRY_URL", "http://localhost:1/events")
	t.Setenv("GLB_TELEMETRY_TIMEOUT_MS", "250")

	cfg := FromEnv()
	if !cfg.OptIn || cfg.EventsURL != "http://localhost:1/events" {
		t.Fatalf("FromEnv mismatch: %+v", cfg)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Fatalf("timeout = %v, want 250ms", cfg.Timeout)
	}
}
