package engine

import "math/rand"

// BuildDeck returns the full 52-card deck, one of each (suit, rank) pair.
func BuildDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle returns a Fisher-Yates permutation of deck seeded for
// reproducible deals. The input is not modified.
func Shuffle(deck []Card, seed int64) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// DealRound deals CardsPerHand cards to each seat round-robin starting left
// of the dealer, then opens bidding. Deterministic for a given seed.
func DealRound(g *GameState) {
	deck := Shuffle(BuildDeck(), g.Seed)
	seats := g.Rules.Seats
	perHand := g.Rules.CardsPerHand

	if perHand*seats > len(deck) {
		panic("invalid deal configuration: deck exhausted")
	}

	first := g.Round.Dealer.Next(seats)
	for i := range g.Players {
		g.Players[i].Hand = make([]Card, 0, perHand)
	}
	for i := 0; i < perHand*seats; i++ {
		seat := Seat((int(first) + i) % seats)
		g.Players[seat].Hand = append(g.Players[seat].Hand, deck[i])
	}

	g.Round.HandsDealt = true
	g.Round.Phase = PhaseBidding
	g.Round.Bids = make(map[Seat]int)
	g.Round.Passed = make(map[Seat]bool)
	g.Round.BidTurn = first
	g.Round.BidWinner = NoSeat
	g.Round.BidValue = 0
}
