package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/revue-dev/revue/internal/fact"
	"github.com/revue-dev/revue/internal/model"
	"github.com/revue-dev/revue/internal/report"
	"github.com/revue-dev/revue/internal/rule"
)

const testSource = `const params = new URLSearchParams(location.search)
element.innerHTML = params.get("banner")
const apiKey = "sk_live_abcdef123456"
eval(payload)
`

func newTestServer(t *testing.T, opts rule.Options) *Server {
	t.Helper()
	reg, err := rule.NewRegistry(opts)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return New(":0", reg)
}

func postJSON(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func hasFinding(rep *report.Report, id string) bool {
	for _, f := range rep.Findings {
		if f.RuleID == id {
			return true
		}
	}
	return false
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, rule.Options{})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
}

func TestReviewSource(t *testing.T) {
	srv := newTestServer(t, rule.Options{})

	w := postJSON(t, srv, "/api/review", reviewRequest{Path: "src/banner.ts", Source: testSource})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var rep report.Report
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("json decode: %v", err)
	}

	if rep.Tool != report.Tool {
		t.Errorf("expected tool %q, got %q", report.Tool, rep.Tool)
	}
	if rep.Unit != "src/banner.ts" {
		t.Errorf("expected unit src/banner.ts, got %q", rep.Unit)
	}
	if rep.Total() != 3 {
		t.Errorf("expected 3 findings, got %d", rep.Total())
	}
	if !rep.HasBlockers() {
		t.Error("expected blockers")
	}
	for _, id := range []string{"dom-xss-sink", "no-eval", "hardcoded-secrets"} {
		if !hasFinding(&rep, id) {
			t.Errorf("missing finding %s", id)
		}
	}
}

func TestReviewFacts(t *testing.T) {
	srv := newTestServer(t, rule.Options{})

	body := map[string]any{
		"facts": map[string]any{
			fact.FilePath:  "src/big.ts",
			fact.FileLines: 500,
		},
	}
	w := postJSON(t, srv, "/api/review", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var rep report.Report
	if err := json.Unmarshal(w.Body.Bytes(), &rep); err != nil {
		t.Fatalf("json decode: %v", err)
	}

	if rep.Unit != "src/big.ts" {
		t.Errorf("expected unit from filePath fact, got %q", rep.Unit)
	}
	if !hasFinding(&rep, "file-too-long") {
		t.Error("expected file-too-long finding")
	}
	if rep.Counts.Suggestions != 1 {
		t.Errorf("expected 1 suggestion, got %d", rep.Counts.Suggestions)
	}
}

func TestReviewRequiresInput(t *testing.T) {
	srv := newTestServer(t, rule.Options{})

	w := postJSON(t, srv, "/api/review", reviewRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "facts or source") {
		t.Errorf("unexpected error body: %s", w.Body.String())
	}
}

func TestReviewSourceRequiresPath(t *testing.T) {
	srv := newTestServer(t, rule.Options{})

	w := postJSON(t, srv, "/api/review", reviewRequest{Source: "eval(x)"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReviewInvalidJSON(t *testing.T) {
	srv := newTestServer(t, rule.Options{})

	req := httptest.NewRequest(http.MethodPost, "/api/review", strings.NewReader("{bad json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRulesEndpoint(t *testing.T) {
	srv := newTestServer(t, rule.Options{})

	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp rulesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}

	if resp.Count != srv.registry.Len() {
		t.Errorf("expected %d rules, got %d", srv.registry.Len(), resp.Count)
	}
	if len(resp.Rules) == 0 {
		t.Fatal("expected rules in response")
	}
	if resp.Rules[0].ID != "file-too-long" {
		t.Errorf("expected registration order starting with file-too-long, got %s", resp.Rules[0].ID)
	}
	for _, rl := range resp.Rules {
		if !rl.Enabled {
			t.Errorf("expected rule %s enabled by default", rl.ID)
		}
	}
}

func TestRulesEnabledFlags(t *testing.T) {
	srv := newTestServer(t, rule.Options{
		EnabledDimensions: []model.Dimension{model.Security},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/rules", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	var resp rulesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}

	for _, rl := range resp.Rules {
		want := rl.Dimension == "security"
		if rl.Enabled != want {
			t.Errorf("rule %s: enabled = %v, want %v", rl.ID, rl.Enabled, want)
		}
	}
}

func TestWebSocketReviewSession(t *testing.T) {
	srv := newTestServer(t, rule.Options{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	defer conn.Close()

	reqData, _ := json.Marshal(reviewRequest{Path: "src/banner.ts", Source: testSource})
	if err := conn.WriteJSON(wsMessage{Type: wsMsgReview, Data: reqData}); err != nil {
		t.Fatalf("ws write: %v", err)
	}

	// One progress event per dimension, canonical order, then the report.
	var events []wsDimensionEvent
	var rep report.Report
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ws read: %v", err)
		}
		if msg.Type == wsMsgReport {
			if err := json.Unmarshal(msg.Data, &rep); err != nil {
				t.Fatalf("unmarshal report: %v", err)
			}
			break
		}
		if msg.Type != wsMsgDimension {
			t.Fatalf("expected dimension event, got %q", msg.Type)
		}
		var ev wsDimensionEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			t.Fatalf("unmarshal dimension event: %v", err)
		}
		events = append(events, ev)
	}

	order := model.CanonicalOrder()
	if len(events) != len(order) {
		t.Fatalf("expected %d dimension events, got %d", len(order), len(events))
	}
	for i, ev := range events {
		if ev.Dimension != order[i].String() {
			t.Errorf("event %d: dimension = %q, want %q", i, ev.Dimension, order[i])
		}
	}
	if events[0].Dimension != "security" || events[0].Findings != 3 {
		t.Errorf("expected 3 security findings first, got %+v", events[0])
	}

	if rep.Unit != "src/banner.ts" {
		t.Errorf("expected unit src/banner.ts, got %q", rep.Unit)
	}
	if rep.Counts.Blockers != 3 {
		t.Errorf("expected 3 blockers, got %d", rep.Counts.Blockers)
	}
}

func TestWebSocketUnknownMessage(t *testing.T) {
	srv := newTestServer(t, rule.Options{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsMessage{Type: "bogus"}); err != nil {
		t.Fatalf("ws write: %v", err)
	}

	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ws read: %v", err)
	}
	if msg.Type != wsMsgError {
		t.Errorf("expected error message, got %q", msg.Type)
	}
	if !strings.Contains(string(msg.Data), "unknown message type") {
		t.Errorf("unexpected error payload: %s", msg.Data)
	}
}

func TestWebSocketInvalidReviewPayload(t *testing.T) {
	srv := newTestServer(t, rule.Options{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsMessage{Type: wsMsgReview}); err != nil {
		t.Fatalf("ws write: %v", err)
	}

	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ws read: %v", err)
	}
	if msg.Type != wsMsgError {
		t.Errorf("expected error message, got %q", msg.Type)
	}
}
