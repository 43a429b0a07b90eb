//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(os.Getenv("E2E_BASE_URL"), "/")
	if baseURL == "" {
		t.Skip("E2E_BASE_URL not set")
	}
	client := &http.Client{Timeout: 20 * time.Second}

	sessionKey := "remote-e2e-" + time.Now().UTC().Format("20060102150405")

	t.Run("recommend requires session key", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/craft/recommend", map[string]any{
			"snapshot": snapshotPayload(),
		})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	t.Run("profile lifecycle", func(t *testing.T) {
		putReq := map[string]any{
			"config": map[string]any{"depth": 4, "beam_width": 6, "time_budget_ms": 200},
		}
		status, body := mustJSON(t, client, http.MethodPut, baseURL+"/api/craft/profiles/remote-e2e-fast", putReq)
		if status != http.StatusOK {
			t.Fatalf("put profile status=%d body=%s", status, string(body))
		}

		status, body = mustJSON(t, client, http.MethodGet, baseURL+"/api/craft/profiles/remote-e2e-fast", nil)
		if status != http.StatusOK {
			t.Fatalf("get profile status=%d body=%s", status, string(body))
		}
		var prof map[string]any
		if err := json.Unmarshal(body, &prof); err != nil {
			t.Fatalf("unmarshal profile: %v body=%s", err, string(body))
		}
		cfg := asMap(asMap(prof["profile"])["config"])
		if cfg["depth"] != float64(4) {
			t.Fatalf("expected depth 4 after put, got=%v", prof)
		}

		status, body, err := doRequest(client, http.MethodGet, baseURL+"/api/craft/profiles", nil)
		if err != nil {
			t.Fatalf("list profiles request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("list profiles status=%d body=%s", status, string(body))
		}
	})

	t.Run("recommend raw history kpi", func(t *testing.T) {
		recReq := map[string]any{
			"session_key": sessionKey,
			"profile":     "remote-e2e-fast",
			"snapshot":    snapshotPayload(),
		}
		status, recBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/craft/recommend", recReq)
		if status != http.StatusOK {
			t.Fatalf("recommend status=%d body=%s", status, string(recBody))
		}
		var rec map[string]any
		if err := json.Unmarshal(recBody, &rec); err != nil {
			t.Fatalf("unmarshal recommend response: %v body=%s", err, string(recBody))
		}
		if id, _ := asMap(rec["best"])["action_id"].(string); id == "" {
			t.Fatalf("expected best.action_id in recommend response, got=%v", rec)
		}
		if n, _ := asMap(rec["stats"])["nodes"].(float64); n == 0 {
			t.Fatalf("expected nonzero nodes in stats, got=%v", rec)
		}

		rawReq := map[string]any{
			"session_key": sessionKey,
			"profile":     "remote-e2e-fast",
			"dump": map[string]any{
				"recipe": map[string]any{
					"completionTarget": 100,
					"control":          10,
					"intensity":        10,
					"actions": []map[string]any{
						{"id": "infuse", "category": "fusion", "poolCost": 10, "completion": 2},
					},
				},
				"state": map[string]any{
					"resourcePool": 80, "poolCap": 80,
					"stability": 50, "stabilityCapBase": 50,
				},
			},
		}
		status, rawBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/craft/recommend/raw", rawReq)
		if status != http.StatusOK {
			t.Fatalf("recommend raw status=%d body=%s", status, string(rawBody))
		}
		var raw map[string]any
		if err := json.Unmarshal(rawBody, &raw); err != nil {
			t.Fatalf("unmarshal raw response: %v body=%s", err, string(rawBody))
		}
		if asMap(raw["best"])["action_id"] != "infuse" {
			t.Fatalf("expected infuse pick from dump, got=%v", raw)
		}

		historyURL := baseURL + "/api/craft/history?session_key=" + sessionKey + "&limit=10"
		status, histBody, err := doRequest(client, http.MethodGet, historyURL, nil)
		if err != nil {
			t.Fatalf("history request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("history status=%d body=%s", status, string(histBody))
		}
		var hist map[string]any
		if err := json.Unmarshal(histBody, &hist); err != nil {
			t.Fatalf("unmarshal history response: %v body=%s", err, string(histBody))
		}
		if len(asSlice(hist["records"])) < 2 {
			t.Fatalf("expected both recommendations in history, got=%s", string(histBody))
		}

		status, kpiBody, err := doRequest(client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if err != nil {
			t.Fatalf("kpi request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(kpiBody))
		}
		var kpi map[string]any
		if err := json.Unmarshal(kpiBody, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(kpiBody))
		}
		if _, ok := kpi["search_total"]; !ok {
			t.Fatalf("expected search_total in kpi response")
		}
	})
}

func snapshotPayload() map[string]any {
	return map[string]any{
		"recipe": map[string]any{
			"name":              "remote-e2e-clarity-pill",
			"completion_target": 120,
			"control":           50,
			"intensity":         40,
			"actions": []map[string]any{
				{"id": "infuse", "category": "fusion", "pool_cost": 20, "completion": map[string]any{"value": 3}},
				{"id": "steady", "category": "stabilize", "pool_cost": 10, "stability_gain": map[string]any{"value": 2}},
			},
		},
		"state": map[string]any{
			"pool": 200, "pool_cap": 200,
			"stability": 50, "stability_cap_base": 50,
		},
	}
}

func mustJSON(t *testing.T, client *http.Client, method, url string, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
