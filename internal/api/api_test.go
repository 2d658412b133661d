package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fairpitch/matchcore/internal/engine"
	"github.com/fairpitch/matchcore/internal/suspension"
	"github.com/fairpitch/matchcore/internal/validate"
)

func newTestServer(t *testing.T) (*httptest.Server, *suspension.Store) {
	t.Helper()

	store := suspension.NewStore(nil)
	srv := NewServer(nil, store, validate.New(validate.DefaultConfig()), nil)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, store
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if v := resp.Header.Get("X-Matchcore-Version"); v != Version {
		t.Errorf("expected version header %s, got %s", Version, v)
	}
}

func TestValidateEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	req := ValidateRequest{
		Record: validate.MatchRecord{
			MatchID:         "m1",
			HomeTeam:        "north",
			AwayTeam:        "south",
			HomeScore:       2,
			AwayScore:       1,
			Result:          "home_win",
			PlayerID:        "p1",
			PlayerTeam:      "home",
			PlayerGoals:     1,
			PlayerAssists:   1,
			DurationMinutes: 90,
			PlayedAt:        time.Now().UTC().Add(-time.Hour),
		},
	}

	resp := postJSON(t, ts.URL+"/api/v1/validate", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out ValidateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Result.IsValid || out.Result.Score < 90 {
		t.Errorf("baseline match should validate cleanly: %+v", out.Result)
	}
	if out.Report == "" {
		t.Error("response should include the rendered report")
	}
}

func TestValidateRejectsMissingMatchID(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/validate", ValidateRequest{})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestVerifyReplayEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	hash := engine.HashLines([]string{"p1|0|pass|0.5"})

	resp := postJSON(t, ts.URL+"/api/v1/replay/verify", VerifyReplayRequest{
		RecordedHash: hash,
		ComputedHash: hash,
	})
	defer resp.Body.Close()

	var v engine.ReplayVerification
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !v.Match {
		t.Error("identical hashes should verify")
	}

	// A mismatch is still a 200: it is a result, not an API error.
	resp = postJSON(t, ts.URL+"/api/v1/replay/verify", VerifyReplayRequest{
		RecordedHash: hash,
		ComputedHash: engine.HashLines([]string{"tampered"}),
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("mismatch should be 200, got %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Match {
		t.Error("tampered hash must not verify")
	}
}

func TestEligibilityAndAppealFlow(t *testing.T) {
	ts, store := newTestServer(t)

	sus, err := store.Create("p1", "violent_conduct", "card-1", 3)
	if err != nil {
		t.Fatalf("create suspension: %v", err)
	}

	resp, err := http.Get(ts.URL + "/api/v1/players/p1/eligibility?match_id=m2")
	if err != nil {
		t.Fatalf("get eligibility: %v", err)
	}
	defer resp.Body.Close()

	var el suspension.Eligibility
	if err := json.NewDecoder(resp.Body).Decode(&el); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if el.Allowed {
		t.Error("suspended player should be denied")
	}

	// Appeal it.
	resp = postJSON(t, ts.URL+"/api/v1/suspensions/"+sus.ID+"/appeal", AppealRequest{EvidenceRef: "ipfs://x"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("appeal should succeed, got %d", resp.StatusCode)
	}

	// Duplicate appeal conflicts.
	resp = postJSON(t, ts.URL+"/api/v1/suspensions/"+sus.ID+"/appeal", AppealRequest{EvidenceRef: "ipfs://y"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate appeal should conflict, got %d", resp.StatusCode)
	}

	// Overturn restores eligibility.
	resp = postJSON(t, ts.URL+"/api/v1/appeals/"+sus.ID+"/resolve", ResolveRequest{Verdict: suspension.VerdictOverturned})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resolve should succeed, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/v1/players/p1/eligibility?match_id=m3")
	if err != nil {
		t.Fatalf("get eligibility: %v", err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&el); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !el.Allowed {
		t.Error("player should be eligible after an overturned appeal")
	}
}

func TestAppealUnknownSuspension(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/v1/suspensions/missing/appeal", AppealRequest{})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
