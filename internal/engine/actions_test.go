package engine

import (
	"errors"
	"reflect"
	"testing"
)

func suitOf(s Suit) *Suit { return &s }

func cardOf(s Suit, r Rank) *Card { return &Card{Suit: s, Rank: r} }

func TestBidValidation(t *testing.T) {
	r := StandardPreset()
	g := NewGame(r, 1)
	DealRound(&g)

	seat := g.Round.BidTurn
	if err := ApplyAction(&g, seat, Action{Type: ActionBid, Bid: r.BidMin - 5}); !errors.Is(err, ErrIllegalBid) {
		t.Fatalf("expected ErrIllegalBid below minimum, got %v", err)
	}
	if err := ApplyAction(&g, seat, Action{Type: ActionBid, Bid: 173}); !errors.Is(err, ErrIllegalBid) {
		t.Fatalf("expected ErrIllegalBid off-step, got %v", err)
	}
	if err := ApplyAction(&g, seat, Action{Type: ActionBid, Bid: r.BidMax + 5}); !errors.Is(err, ErrIllegalBid) {
		t.Fatalf("expected ErrIllegalBid above maximum, got %v", err)
	}
	if err := ApplyAction(&g, seat, Action{Type: ActionBid, Bid: r.BidMin}); err != nil {
		t.Fatalf("valid minimum bid rejected: %v", err)
	}

	seat = g.Round.BidTurn
	if err := ApplyAction(&g, seat, Action{Type: ActionBid, Bid: r.BidMin}); !errors.Is(err, ErrIllegalBid) {
		t.Fatalf("expected ErrIllegalBid for non-raising bid, got %v", err)
	}
	if err := ApplyAction(&g, seat, Action{Type: ActionBid, Bid: r.BidMin + r.BidStep}); err != nil {
		t.Fatalf("valid raise rejected: %v", err)
	}
	if g.Round.BidValue != r.BidMin+r.BidStep {
		t.Fatalf("highest bid not updated: %d", g.Round.BidValue)
	}
}

func TestBidOutOfTurnRejected(t *testing.T) {
	g := NewGame(StandardPreset(), 1)
	DealRound(&g)

	other := g.Round.BidTurn.Next(g.Rules.Seats)
	if err := ApplyAction(&g, other, Action{Type: ActionPass}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
}

func TestForcedBidRejectsFourthPass(t *testing.T) {
	g := NewGame(StandardPreset(), 1)
	DealRound(&g)

	for i := 0; i < 3; i++ {
		seat := g.Round.BidTurn
		if err := ApplyAction(&g, seat, Action{Type: ActionPass}); err != nil {
			t.Fatalf("pass %d rejected: %v", i, err)
		}
	}
	last := g.Round.BidTurn
	if err := ApplyAction(&g, last, Action{Type: ActionPass}); !errors.Is(err, ErrForcedBid) {
		t.Fatalf("expected ErrForcedBid, got %v", err)
	}
	for _, a := range LegalActions(g, last) {
		if a.Type == ActionPass {
			t.Fatalf("pass listed as legal for forced bidder")
		}
	}
	if err := ApplyAction(&g, last, Action{Type: ActionBid, Bid: g.Rules.BidMin}); err != nil {
		t.Fatalf("forced minimum bid rejected: %v", err)
	}
	if g.Round.Phase != PhaseTrumpSelect {
		t.Fatalf("expected bidding to conclude, got %v", g.Round.Phase)
	}
	if g.Round.BidWinner != last || g.Round.BidValue != g.Rules.BidMin {
		t.Fatalf("wrong conclusion: winner=%v value=%d", g.Round.BidWinner, g.Round.BidValue)
	}
}

func TestBiddingConcludesWithHighestBidder(t *testing.T) {
	g := NewGame(StandardPreset(), 1)
	DealRound(&g)

	bidder := g.Round.BidTurn
	if err := ApplyAction(&g, bidder, Action{Type: ActionBid, Bid: 180}); err != nil {
		t.Fatalf("bid rejected: %v", err)
	}
	for g.Round.Phase == PhaseBidding {
		seat := g.Round.BidTurn
		if err := ApplyAction(&g, seat, Action{Type: ActionPass}); err != nil {
			t.Fatalf("pass rejected: %v", err)
		}
	}
	if g.Round.BidWinner != bidder || g.Round.BidValue != 180 {
		t.Fatalf("wrong winner: %v at %d", g.Round.BidWinner, g.Round.BidValue)
	}
	if g.Round.Phase != PhaseTrumpSelect {
		t.Fatalf("expected trump selection, got %v", g.Round.Phase)
	}
}

func TestPassedSeatsAreSkippedAndStayPassed(t *testing.T) {
	g := NewGame(StandardPreset(), 1)
	DealRound(&g)

	first := g.Round.BidTurn
	if err := ApplyAction(&g, first, Action{Type: ActionPass}); err != nil {
		t.Fatalf("pass rejected: %v", err)
	}
	second := g.Round.BidTurn
	if second == first {
		t.Fatalf("turn did not advance past passed seat")
	}
	if err := ApplyAction(&g, second, Action{Type: ActionBid, Bid: 175}); err != nil {
		t.Fatalf("bid rejected: %v", err)
	}
	// A new high bid does not resurrect passed seats.
	if !g.Round.Passed[first] {
		t.Fatalf("pass state reset by new bid")
	}
	if err := ApplyAction(&g, first, Action{Type: ActionPass}); !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected passed seat to stay out, got %v", err)
	}
}

// declared fast-forwards a fresh game through bidding and declarations so
// trick-play tests start from a known state.
func declared(t *testing.T, seed int64, trump Suit) GameState {
	t.Helper()
	g := NewGame(StandardPreset(), seed)
	DealRound(&g)

	bidder := g.Round.BidTurn
	if err := ApplyAction(&g, bidder, Action{Type: ActionBid, Bid: 200}); err != nil {
		t.Fatalf("bid: %v", err)
	}
	for g.Round.Phase == PhaseBidding {
		if err := ApplyAction(&g, g.Round.BidTurn, Action{Type: ActionPass}); err != nil {
			t.Fatalf("pass: %v", err)
		}
	}
	if err := ApplyAction(&g, bidder, Action{Type: ActionChooseTrump, Suit: suitOf(trump)}); err != nil {
		t.Fatalf("trump: %v", err)
	}

	// Pick a partner card outside the bidder's hand so no solo flow triggers.
	for _, c := range BuildDeck() {
		if containsCard(g.Players[bidder].Hand, c) {
			continue
		}
		if err := ApplyAction(&g, bidder, Action{Type: ActionChoosePartner, Card: &c}); err != nil {
			t.Fatalf("partner: %v", err)
		}
		break
	}
	if g.Round.Phase != PhasePlayTricks {
		t.Fatalf("expected trick play, got %v", g.Round.Phase)
	}
	return g
}

func TestDeclarationFlow(t *testing.T) {
	g := declared(t, 3, SuitHearts)

	if g.Round.Trump == nil || *g.Round.Trump != SuitHearts {
		t.Fatalf("trump not set")
	}
	if g.Round.PartnerCard == nil || g.Round.PartnerSeat == NoSeat {
		t.Fatalf("partner not resolved")
	}
	if g.Round.PartnerRevealed {
		t.Fatalf("partner revealed before the card was played")
	}
	if g.Round.Leader != g.Round.BidWinner {
		t.Fatalf("bid winner should lead the first trick")
	}
}

func TestSoloConfirmFlow(t *testing.T) {
	g := NewGame(StandardPreset(), 5)
	DealRound(&g)

	bidder := g.Round.BidTurn
	if err := ApplyAction(&g, bidder, Action{Type: ActionBid, Bid: 175}); err != nil {
		t.Fatalf("bid: %v", err)
	}
	for g.Round.Phase == PhaseBidding {
		if err := ApplyAction(&g, g.Round.BidTurn, Action{Type: ActionPass}); err != nil {
			t.Fatalf("pass: %v", err)
		}
	}
	if err := ApplyAction(&g, bidder, Action{Type: ActionChooseTrump, Suit: suitOf(SuitClubs)}); err != nil {
		t.Fatalf("trump: %v", err)
	}

	own := g.Players[bidder].Hand[0]
	if err := ApplyAction(&g, bidder, Action{Type: ActionChoosePartner, Card: &own}); err != nil {
		t.Fatalf("partner: %v", err)
	}
	if g.Round.Phase != PhaseSoloConfirm {
		t.Fatalf("expected solo confirmation, got %v", g.Round.Phase)
	}

	// Cancel goes back to partner selection with the declaration cleared.
	if err := ApplyAction(&g, bidder, Action{Type: ActionCancelSolo}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if g.Round.Phase != PhasePartnerSelect || g.Round.PartnerCard != nil {
		t.Fatalf("cancel did not reset declaration")
	}

	// Confirm locks the one-seat team and reveals immediately.
	if err := ApplyAction(&g, bidder, Action{Type: ActionChoosePartner, Card: &own}); err != nil {
		t.Fatalf("partner again: %v", err)
	}
	if err := ApplyAction(&g, bidder, Action{Type: ActionConfirmSolo}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !g.Round.Solo || !g.Round.PartnerRevealed {
		t.Fatalf("solo state not set")
	}
	if g.Round.Phase != PhasePlayTricks {
		t.Fatalf("expected trick play after confirm, got %v", g.Round.Phase)
	}
	if team := BidTeam(g); len(team) != 1 || team[0] != bidder {
		t.Fatalf("expected singleton team, got %v", team)
	}
}

func TestFollowSuitEnforced(t *testing.T) {
	r := StandardPreset()
	trump := SuitSpades
	hand := []Card{
		{SuitHearts, Rank9},
		{SuitHearts, Rank2},
		{SuitClubs, RankA},
		{SuitSpades, RankK},
	}
	legal := r.PlayableCards(hand, suitOf(SuitHearts), &trump, false, []Card{{SuitHearts, RankA}})
	if len(legal) != 2 {
		t.Fatalf("expected 2 legal cards, got %v", legal)
	}
	for _, c := range legal {
		if c.Suit != SuitHearts {
			t.Fatalf("non-lead card %v marked legal", c)
		}
	}
}

func TestOverTrumpForcedWhenPossible(t *testing.T) {
	r := StandardPreset()
	trump := SuitSpades
	hand := []Card{
		{SuitSpades, Rank3},
		{SuitSpades, RankQ},
		{SuitClubs, RankA},
	}
	trick := []Card{{SuitHearts, RankA}, {SuitSpades, Rank9}}
	legal := r.PlayableCards(hand, suitOf(SuitHearts), &trump, true, trick)
	if len(legal) != 1 || legal[0] != (Card{SuitSpades, RankQ}) {
		t.Fatalf("expected forced over-trump, got %v", legal)
	}
}

func TestTrumpUnderWhenCannotOverTrump(t *testing.T) {
	r := StandardPreset()
	trump := SuitSpades
	hand := []Card{
		{SuitSpades, Rank3},
		{SuitSpades, Rank5},
		{SuitClubs, RankA},
	}
	trick := []Card{{SuitHearts, RankA}, {SuitSpades, RankK}}
	legal := r.PlayableCards(hand, suitOf(SuitHearts), &trump, true, trick)
	if len(legal) != 2 {
		t.Fatalf("expected both low trumps, got %v", legal)
	}
	for _, c := range legal {
		if c.Suit != SuitSpades {
			t.Fatalf("non-trump %v marked legal under forced trump", c)
		}
	}
}

func TestVoidWithoutTrumpDiscardsFreely(t *testing.T) {
	r := StandardPreset()
	trump := SuitSpades
	hand := []Card{
		{SuitClubs, Rank2},
		{SuitDiamonds, RankA},
	}
	trick := []Card{{SuitHearts, RankA}, {SuitSpades, Rank9}}
	legal := r.PlayableCards(hand, suitOf(SuitHearts), &trump, true, trick)
	if len(legal) != 2 {
		t.Fatalf("expected free discard, got %v", legal)
	}
}

func TestCannotLeadTrumpBeforeBroken(t *testing.T) {
	r := StandardPreset()
	trump := SuitSpades
	hand := []Card{
		{SuitSpades, RankA},
		{SuitHearts, Rank2},
	}
	legal := r.PlayableCards(hand, nil, &trump, false, nil)
	if len(legal) != 1 || legal[0].Suit != SuitHearts {
		t.Fatalf("expected trump lead locked out, got %v", legal)
	}

	legal = r.PlayableCards(hand, nil, &trump, true, nil)
	if len(legal) != 2 {
		t.Fatalf("expected any lead after break, got %v", legal)
	}
}

func TestAllTrumpHandMayLeadTrump(t *testing.T) {
	r := StandardPreset()
	trump := SuitSpades
	hand := []Card{
		{SuitSpades, RankA},
		{SuitSpades, Rank2},
	}
	legal := r.PlayableCards(hand, nil, &trump, false, nil)
	if len(legal) != 2 {
		t.Fatalf("all-trump hand should lead anything, got %v", legal)
	}
}

func TestTrumpBreaksWhenPlayedOffLead(t *testing.T) {
	r := StandardPreset()
	g := NewGame(r, 1)
	trump := SuitSpades
	g.Round.Phase = PhasePlayTricks
	g.Round.Trump = &trump
	g.Round.BidWinner = SeatNorth
	g.Round.BidValue = r.BidMin
	g.Round.PartnerSeat = SeatEast
	g.Round.Leader = SeatNorth
	g.Players[SeatNorth].Hand = []Card{{SuitHearts, RankA}, {SuitHearts, Rank2}}
	g.Players[SeatEast].Hand = []Card{{SuitSpades, Rank3}, {SuitSpades, Rank2}}
	g.Players[SeatSouth].Hand = []Card{{SuitHearts, RankK}, {SuitClubs, Rank2}}
	g.Players[SeatWest].Hand = []Card{{SuitHearts, RankQ}, {SuitClubs, Rank3}}

	play := func(seat Seat, c Card) {
		t.Helper()
		if err := ApplyAction(&g, seat, Action{Type: ActionPlayCard, Card: &c}); err != nil {
			t.Fatalf("play %v by %v: %v", c, seat, err)
		}
	}

	play(SeatNorth, Card{SuitHearts, RankA})
	if g.Round.TrumpBroken {
		t.Fatalf("leading a heart must not break trump")
	}
	// East is void in hearts and trumps in.
	play(SeatEast, Card{SuitSpades, Rank3})
	if !g.Round.TrumpBroken {
		t.Fatalf("off-lead trump should break trump")
	}
	play(SeatSouth, Card{SuitHearts, RankK})
	play(SeatWest, Card{SuitHearts, RankQ})

	// East won on trump and leads the next trick; the flag stays up.
	if g.Round.Leader != SeatEast {
		t.Fatalf("expected east to win the trick, got %v", g.Round.Leader)
	}
	if !g.Round.TrumpBroken {
		t.Fatalf("trump-broken flag reset between tricks")
	}
	legal := legalPlays(g, SeatEast)
	if len(legal) != 1 || legal[0].Card.Suit != SuitSpades {
		t.Fatalf("broken trump should be leadable, got %v", legal)
	}
}

func TestIllegalPlayLeavesStateUntouched(t *testing.T) {
	g := declared(t, 13, SuitDiamonds)

	seat, _ := CurrentPlayer(g)
	wrongSeat := seat.Next(g.Rules.Seats)
	card := g.Players[wrongSeat].Hand[0]

	before := snapshot(g)
	err1 := ApplyAction(&g, wrongSeat, Action{Type: ActionPlayCard, Card: &card})
	mid := snapshot(g)
	err2 := ApplyAction(&g, wrongSeat, Action{Type: ActionPlayCard, Card: &card})
	after := snapshot(g)

	if !errors.Is(err1, ErrNotYourTurn) || !errors.Is(err2, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn twice, got %v / %v", err1, err2)
	}
	if !reflect.DeepEqual(before, mid) || !reflect.DeepEqual(mid, after) {
		t.Fatalf("rejected action mutated state")
	}
	// The trick order is unset until the leader's card is accepted.
	if g.Round.TrickOrder != nil {
		t.Fatalf("rejected play populated the trick order")
	}
}

func TestPlayingNonLegalCardRejected(t *testing.T) {
	g := declared(t, 17, SuitClubs)

	// Walk until a follower holds the lead suit plus an off-suit card, then
	// try the off-suit card.
	for step := 0; step < 200 && g.Round.Phase == PhasePlayTricks; step++ {
		seat, _ := CurrentPlayer(g)
		if len(g.Round.TrickCards) > 0 {
			lead := g.Round.TrickCards[0].Suit
			hand := g.Players[seat].Hand
			if len(filterBySuit(hand, lead)) > 0 {
				if off := filterNotSuit(hand, lead); len(off) > 0 {
					before := snapshot(g)
					err := ApplyAction(&g, seat, Action{Type: ActionPlayCard, Card: &off[0]})
					if !errors.Is(err, ErrIllegalCard) {
						t.Fatalf("expected ErrIllegalCard, got %v", err)
					}
					if !reflect.DeepEqual(before, snapshot(g)) {
						t.Fatalf("rejected card mutated state")
					}
					return
				}
			}
		}
		legal := legalPlays(g, seat)
		if err := ApplyAction(&g, seat, legal[0]); err != nil {
			t.Fatalf("play: %v", err)
		}
	}
	t.Fatalf("never found a follow-suit violation to attempt")
}

func TestPartnerRevealedWhenCardPlayed(t *testing.T) {
	g := declared(t, 19, SuitHearts)
	partnerCard := *g.Round.PartnerCard

	for step := 0; step < 250 && g.Round.Phase == PhasePlayTricks; step++ {
		seat, _ := CurrentPlayer(g)
		legal := legalPlays(g, seat)

		choice := legal[0]
		for _, a := range legal {
			if *a.Card == partnerCard {
				choice = a
				break
			}
		}
		if err := ApplyAction(&g, seat, choice); err != nil {
			t.Fatalf("play: %v", err)
		}
		if *choice.Card == partnerCard {
			if !g.Round.PartnerRevealed {
				t.Fatalf("partner card played but not revealed")
			}
			return
		}
		if g.Round.PartnerRevealed {
			t.Fatalf("partner revealed before the card was played")
		}
	}
	t.Fatalf("partner card never became playable")
}

func snapshot(g GameState) GameState {
	out := g
	out.Players = append([]PlayerState(nil), g.Players...)
	for i := range out.Players {
		out.Players[i].Hand = append([]Card(nil), g.Players[i].Hand...)
	}
	out.Round.TrickCards = append([]Card(nil), g.Round.TrickCards...)
	out.Round.TrickOrder = append([]Seat(nil), g.Round.TrickOrder...)
	return out
}

func TestPartnerCardMustBeDealt(t *testing.T) {
	r := StandardPreset()
	r.CardsPerHand = 5
	g := NewGame(r, 21)
	DealRound(&g)
	g.Round.Phase = PhasePartnerSelect
	g.Round.BidWinner = g.Round.BidTurn
	bidder := g.Round.BidWinner

	for _, c := range BuildDeck() {
		if findHolder(g, c) != NoSeat {
			continue
		}
		err := ApplyAction(&g, bidder, Action{Type: ActionChoosePartner, Card: &c})
		if !errors.Is(err, ErrBadAction) {
			t.Fatalf("expected rejection of an undealt card, got %v", err)
		}
		if g.Round.Phase != PhasePartnerSelect || g.Round.PartnerCard != nil {
			t.Fatalf("rejected declaration mutated state")
		}
		return
	}
	t.Fatalf("short deal left no undealt card")
}
