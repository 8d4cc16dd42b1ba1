package domain

import "testing"

func TestStatusForwardChain(t *testing.T) {
	chain := []Status{StatusCreated, StatusConfirmed, StatusPacked, StatusOutForDelivery, StatusCompleted}
	for i := 0; i < len(chain)-1; i++ {
		if !chain[i].CanTransitionTo(chain[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", chain[i], chain[i+1])
		}
	}
}

func TestStatusNoSkipping(t *testing.T) {
	cases := []struct {
		from, to Status
	}{
		{StatusCreated, StatusPacked},
		{StatusCreated, StatusOutForDelivery},
		{StatusCreated, StatusCompleted},
		{StatusConfirmed, StatusOutForDelivery},
		{StatusConfirmed, StatusCompleted},
		{StatusPacked, StatusCompleted},
	}
	for _, c := range cases {
		if c.from.CanTransitionTo(c.to) {
			t.Fatalf("expected %s -> %s to be rejected", c.from, c.to)
		}
	}
}

func TestStatusNoBackwardMoves(t *testing.T) {
	chain := []Status{StatusCreated, StatusConfirmed, StatusPacked, StatusOutForDelivery, StatusCompleted}
	for i := 1; i < len(chain); i++ {
		for j := 0; j < i; j++ {
			if chain[i].CanTransitionTo(chain[j]) {
				t.Fatalf("expected %s -> %s to be rejected", chain[i], chain[j])
			}
		}
	}
}

func TestStatusCancellable(t *testing.T) {
	if !StatusCreated.Cancellable() {
		t.Fatalf("CREATED should be cancellable")
	}
	if !StatusConfirmed.Cancellable() {
		t.Fatalf("CONFIRMED should be cancellable")
	}
	for _, s := range []Status{StatusPacked, StatusOutForDelivery, StatusCompleted, StatusCancelled} {
		if s.Cancellable() {
			t.Fatalf("%s should not be cancellable", s)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusCreated, StatusConfirmed, StatusPacked, StatusOutForDelivery} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusOutForDelivery.Valid() {
		t.Fatalf("OUT_FOR_DELIVERY should be valid")
	}
	if Status("SHIPPED").Valid() {
		t.Fatalf("unknown status should be invalid")
	}
}
