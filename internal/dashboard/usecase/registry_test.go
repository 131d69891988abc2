package usecase

import "testing"

func TestRegistryObserveNotifiesAfterStore(t *testing.T) {
	r := NewRegistry()

	var seen []string
	r.Subscribe(func(acct string) {
		if r.Observed() != acct {
			t.Fatalf("listener saw %q before store of %q", r.Observed(), acct)
		}
		seen = append(seen, acct)
	})

	if !r.Observe("A-1002") {
		t.Fatal("expected change")
	}
	if r.Observe("A-1002") {
		t.Fatal("expected no change for same account")
	}
	if !r.Observe("") {
		t.Fatal("expected change when clearing")
	}

	if len(seen) != 2 || seen[0] != "A-1002" || seen[1] != "" {
		t.Fatalf("unexpected notifications: %v", seen)
	}
}
