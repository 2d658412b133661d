package suspension

import (
	"errors"
	"testing"
)

func TestCreateAndEligibility(t *testing.T) {
	st := NewStore(nil)

	s, err := st.Create("p1", "violent_conduct", "card-1", 3)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !s.IsActive || s.MatchesRemaining != 3 || s.TotalMatches != 3 {
		t.Errorf("unexpected new suspension: %+v", s)
	}
	if s.AppealStatus != AppealNotAppealed {
		t.Errorf("new suspension should be not_appealed, got %s", s.AppealStatus)
	}

	el := st.CanParticipate("p1", "m1")
	if el.Allowed {
		t.Error("suspended player should be denied")
	}
	if el.Suspension == nil || el.Suspension.ID != s.ID {
		t.Error("denial should carry the blocking suspension")
	}

	if el := st.CanParticipate("p2", "m1"); !el.Allowed {
		t.Error("unsuspended player should be allowed")
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	st := NewStore(nil)

	if _, err := st.Create("", "reason", "card", 1); err == nil {
		t.Error("empty player id should be rejected")
	}
	if _, err := st.Create("p1", "reason", "card", 0); err == nil {
		t.Error("zero-length suspension should be rejected")
	}
}

func TestDecrementMonotonic(t *testing.T) {
	st := NewStore(nil)
	s, err := st.Create("p1", "spitting", "card-1", 2)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	prev := s.MatchesRemaining
	for i, matchID := range []string{"m1", "m2", "m3"} {
		if err := st.RecordMatchPlayed("p1", matchID); err != nil {
			t.Fatalf("decrement %d failed: %v", i, err)
		}
		got, err := st.Get(s.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.MatchesRemaining > prev {
			t.Errorf("matchesRemaining increased: %d -> %d", prev, got.MatchesRemaining)
		}
		if got.MatchesRemaining < 0 {
			t.Errorf("matchesRemaining went negative: %d", got.MatchesRemaining)
		}
		if got.IsActive != (got.MatchesRemaining > 0) {
			t.Errorf("isActive=%v inconsistent with remaining=%d", got.IsActive, got.MatchesRemaining)
		}
		prev = got.MatchesRemaining
	}

	final, _ := st.Get(s.ID)
	if final.MatchesRemaining != 0 || final.IsActive || final.MatchesServed != 2 {
		t.Errorf("suspension should be fully served: %+v", final)
	}
	if el := st.CanParticipate("p1", "m4"); !el.Allowed {
		t.Error("player should be eligible after serving the ban")
	}
}

func TestDuplicateDecrementRejected(t *testing.T) {
	st := NewStore(nil)
	if _, err := st.Create("p1", "biting", "card-1", 4); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := st.RecordMatchPlayed("p1", "m1"); err != nil {
		t.Fatalf("first decrement failed: %v", err)
	}
	err := st.RecordMatchPlayed("p1", "m1")
	if !errors.Is(err, ErrDuplicateDecrement) {
		t.Fatalf("expected ErrDuplicateDecrement, got %v", err)
	}

	got, _ := st.Get(mustOnly(t, st, "p1"))
	if got.MatchesRemaining != 3 {
		t.Errorf("duplicate signal must not mutate: remaining=%d", got.MatchesRemaining)
	}
}

func TestAppealWorkflow(t *testing.T) {
	st := NewStore(nil)
	s, err := st.Create("p1", "serious_foul_play", "card-1", 3)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := st.SubmitAppeal(s.ID, "ipfs://evidence-1"); err != nil {
		t.Fatalf("submit appeal failed: %v", err)
	}
	if err := st.SubmitAppeal(s.ID, "ipfs://evidence-2"); !errors.Is(err, ErrAppealAlreadySubmitted) {
		t.Fatalf("expected ErrAppealAlreadySubmitted, got %v", err)
	}

	got, _ := st.Get(s.ID)
	if got.AppealStatus != AppealPending || got.AppealEvidenceRef != "ipfs://evidence-1" {
		t.Errorf("duplicate submission must not mutate: %+v", got)
	}

	if err := st.ResolveAppeal(s.ID, VerdictOverturned); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	got, _ = st.Get(s.ID)
	if got.MatchesRemaining != 0 || got.IsActive || got.AppealStatus != AppealOverturned {
		t.Errorf("overturned appeal should zero the ban: %+v", got)
	}
	if el := st.CanParticipate("p1", "m1"); !el.Allowed {
		t.Error("player should be eligible after an overturned appeal")
	}
}

func TestAppealUpheldKeepsCountdown(t *testing.T) {
	st := NewStore(nil)
	s, _ := st.Create("p1", "assault", "card-1", 5)

	if err := st.SubmitAppeal(s.ID, "ref"); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := st.ResolveAppeal(s.ID, VerdictUpheld); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	got, _ := st.Get(s.ID)
	if got.AppealStatus != AppealUpheld {
		t.Errorf("expected upheld status, got %s", got.AppealStatus)
	}
	if got.MatchesRemaining != 5 || !got.IsActive {
		t.Errorf("upheld appeal must not touch the countdown: %+v", got)
	}
}

func TestResolveWithoutPendingAppeal(t *testing.T) {
	st := NewStore(nil)
	s, _ := st.Create("p1", "second_yellow", "card-1", 1)

	if err := st.ResolveAppeal(s.ID, VerdictUpheld); !errors.Is(err, ErrAppealNotPending) {
		t.Errorf("expected ErrAppealNotPending, got %v", err)
	}
	if err := st.ResolveAppeal("missing", VerdictUpheld); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func mustOnly(t *testing.T, st *Store, playerID string) string {
	t.Helper()
	all := st.ForPlayer(playerID)
	if len(all) != 1 {
		t.Fatalf("expected exactly one suspension for %s, got %d", playerID, len(all))
	}
	return all[0].ID
}
