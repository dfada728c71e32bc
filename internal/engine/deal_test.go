package engine

import "testing"

func TestDealDeterministic(t *testing.T) {
	r := StandardPreset()
	g1 := NewGame(r, 42)
	g2 := NewGame(r, 42)

	DealRound(&g1)
	DealRound(&g2)

	for i := 0; i < r.Seats; i++ {
		if len(g1.Players[i].Hand) != r.CardsPerHand {
			t.Fatalf("hand size: got %d", len(g1.Players[i].Hand))
		}
		for c := range g1.Players[i].Hand {
			if g1.Players[i].Hand[c] != g2.Players[i].Hand[c] {
				t.Fatalf("determinism mismatch at seat %d card %d", i, c)
			}
		}
	}
}

func TestDealExhaustsDeck(t *testing.T) {
	r := StandardPreset()
	g := NewGame(r, 1)
	DealRound(&g)

	seen := map[Card]bool{}
	for _, p := range g.Players {
		for _, c := range p.Hand {
			if seen[c] {
				t.Fatalf("duplicate card: %v", c)
			}
			seen[c] = true
		}
	}
	if len(seen) != 52 {
		t.Fatalf("deck not exhausted: got %d", len(seen))
	}
}

func TestShufflePreservesDeck(t *testing.T) {
	deck := BuildDeck()
	for seed := int64(1); seed <= 50; seed++ {
		shuffled := Shuffle(deck, seed)
		if len(shuffled) != len(deck) {
			t.Fatalf("seed %d: length changed: %d", seed, len(shuffled))
		}
		seen := map[Card]bool{}
		for _, c := range shuffled {
			if seen[c] {
				t.Fatalf("seed %d: duplicate %v", seed, c)
			}
			seen[c] = true
		}
	}
}

func TestDealStartsBiddingLeftOfDealer(t *testing.T) {
	r := StandardPreset()
	g := NewGame(r, 7)
	g.Round.Dealer = SeatSouth
	DealRound(&g)

	if g.Round.Phase != PhaseBidding {
		t.Fatalf("expected bidding phase, got %v", g.Round.Phase)
	}
	if g.Round.BidTurn != SeatWest {
		t.Fatalf("expected west to open bidding, got %v", g.Round.BidTurn)
	}
	if g.Round.BidWinner != NoSeat || g.Round.BidValue != 0 {
		t.Fatalf("bid state not reset")
	}
}

func TestDealPanicsWhenDeckTooSmall(t *testing.T) {
	r := StandardPreset()
	r.CardsPerHand = 14
	g := NewGame(r, 1)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for oversized deal")
		}
	}()
	DealRound(&g)
}
