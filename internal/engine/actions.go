package engine

import "fmt"

type ActionType int

const (
	ActionBid ActionType = iota
	ActionPass
	ActionChooseTrump
	ActionChoosePartner
	ActionConfirmSolo
	ActionCancelSolo
	ActionPlayCard
)

type Action struct {
	Type ActionType
	Bid  int
	Suit *Suit
	Card *Card
}

// LegalActions enumerates what a seat may do right now. Ordering is
// deterministic based on rules, bidding increments, and hand order.
func LegalActions(g GameState, seat Seat) []Action {
	switch g.Round.Phase {
	case PhaseBidding:
		return legalBids(g, seat)
	case PhaseTrumpSelect:
		if seat != g.Round.BidWinner {
			return nil
		}
		out := make([]Action, 0, len(Suits))
		for i := range Suits {
			s := Suits[i]
			out = append(out, Action{Type: ActionChooseTrump, Suit: &s})
		}
		return out
	case PhasePartnerSelect:
		if seat != g.Round.BidWinner {
			return nil
		}
		// 52 combinations; client/bot picks the concrete card.
		return []Action{{Type: ActionChoosePartner}}
	case PhaseSoloConfirm:
		if seat != g.Round.BidWinner {
			return nil
		}
		return []Action{{Type: ActionConfirmSolo}, {Type: ActionCancelSolo}}
	case PhasePlayTricks:
		return legalPlays(g, seat)
	default:
		return nil
	}
}

// CurrentPlayer returns the seat expected to act in the current phase.
func CurrentPlayer(g GameState) (Seat, bool) {
	switch g.Round.Phase {
	case PhaseBidding:
		return g.Round.BidTurn, true
	case PhaseTrumpSelect, PhasePartnerSelect, PhaseSoloConfirm:
		if g.Round.BidWinner != NoSeat {
			return g.Round.BidWinner, true
		}
		return NoSeat, false
	case PhasePlayTricks:
		if len(g.Round.TrickOrder) == 0 {
			return g.Round.Leader, true
		}
		if len(g.Round.TrickCards) >= len(g.Round.TrickOrder) {
			return NoSeat, false
		}
		return g.Round.TrickOrder[len(g.Round.TrickCards)], true
	default:
		return NoSeat, false
	}
}

func ApplyAction(g *GameState, seat Seat, a Action) error {
	switch g.Round.Phase {
	case PhaseBidding:
		return applyBid(g, seat, a)
	case PhaseTrumpSelect:
		return applyChooseTrump(g, seat, a)
	case PhasePartnerSelect:
		return applyChoosePartner(g, seat, a)
	case PhaseSoloConfirm:
		return applySoloConfirm(g, seat, a)
	case PhasePlayTricks:
		return applyPlay(g, seat, a)
	default:
		return ErrWrongPhase
	}
}

func applyBid(g *GameState, seat Seat, a Action) error {
	if seat != g.Round.BidTurn {
		return ErrNotYourTurn
	}
	if g.Round.Passed[seat] {
		return fmt.Errorf("%w: seat already passed", ErrNotYourTurn)
	}

	switch a.Type {
	case ActionPass:
		// Forced-bid rule: with three seats passed and no bid on the table,
		// the last active seat may not pass.
		if g.Round.BidWinner == NoSeat && activeSeats(*g) == 1 {
			return ErrForcedBid
		}
		g.Round.Passed[seat] = true
	case ActionBid:
		if a.Bid < g.Rules.BidMin {
			return fmt.Errorf("%w: below minimum %d", ErrIllegalBid, g.Rules.BidMin)
		}
		if a.Bid > g.Rules.BidMax {
			return fmt.Errorf("%w: above maximum %d", ErrIllegalBid, g.Rules.BidMax)
		}
		if a.Bid%g.Rules.BidStep != 0 {
			return fmt.Errorf("%w: not a multiple of %d", ErrIllegalBid, g.Rules.BidStep)
		}
		if a.Bid <= g.Round.BidValue {
			return fmt.Errorf("%w: not above %d", ErrIllegalBid, g.Round.BidValue)
		}
		g.Round.BidValue = a.Bid
		g.Round.BidWinner = seat
		g.Round.Bids[seat] = a.Bid
	default:
		return fmt.Errorf("%w for bidding", ErrBadAction)
	}

	if activeSeats(*g) == 1 && g.Round.BidWinner != NoSeat {
		g.Round.Phase = PhaseTrumpSelect
		return nil
	}

	g.Round.BidTurn = nextBidTurn(g)
	return nil
}

func applyChooseTrump(g *GameState, seat Seat, a Action) error {
	if seat != g.Round.BidWinner {
		return ErrNotYourTurn
	}
	if a.Type != ActionChooseTrump || a.Suit == nil {
		return fmt.Errorf("%w for trump selection", ErrBadAction)
	}
	// Any suit is legal, including one the winner holds no cards of.
	suit := *a.Suit
	g.Round.Trump = &suit
	g.Round.Phase = PhasePartnerSelect
	return nil
}

func applyChoosePartner(g *GameState, seat Seat, a Action) error {
	if seat != g.Round.BidWinner {
		return ErrNotYourTurn
	}
	if a.Type != ActionChoosePartner || a.Card == nil {
		return fmt.Errorf("%w for partner selection", ErrBadAction)
	}

	card := *a.Card
	holder := findHolder(*g, card)
	if holder == NoSeat {
		// Possible with short deals: the named card was never dealt.
		return fmt.Errorf("%w: partner card %v not in play", ErrBadAction, card)
	}

	g.Round.PartnerCard = &card
	g.Round.PartnerSeat = holder
	g.Round.PartnerRevealed = false
	g.Round.Solo = false

	if holder == seat {
		// Declaring a card from the winner's own hand is very likely a
		// mistake; require explicit confirmation before playing solo.
		g.Round.Phase = PhaseSoloConfirm
		return nil
	}
	startTricks(g)
	return nil
}

func applySoloConfirm(g *GameState, seat Seat, a Action) error {
	if seat != g.Round.BidWinner {
		return ErrNotYourTurn
	}
	switch a.Type {
	case ActionConfirmSolo:
		g.Round.Solo = true
		g.Round.PartnerRevealed = true
		startTricks(g)
		return nil
	case ActionCancelSolo:
		g.Round.PartnerCard = nil
		g.Round.PartnerSeat = NoSeat
		g.Round.Phase = PhasePartnerSelect
		return nil
	default:
		return fmt.Errorf("%w for solo confirmation", ErrBadAction)
	}
}

func startTricks(g *GameState) {
	g.Round.Phase = PhasePlayTricks
	g.Round.Leader = g.Round.BidWinner
	g.Round.TrumpBroken = false
	g.Round.TrickCards = nil
	g.Round.TrickOrder = nil
}

func applyPlay(g *GameState, seat Seat, a Action) error {
	if a.Type != ActionPlayCard || a.Card == nil {
		return fmt.Errorf("%w for trick play", ErrBadAction)
	}
	// Validate against a computed order; the round state is only assigned
	// once the play is accepted, so rejections leave it untouched.
	order := g.Round.TrickOrder
	if len(order) == 0 {
		order = buildTrickOrder(g.Round.Leader, g.Rules.Seats)
	}
	expected := order[len(g.Round.TrickCards)]
	if seat != expected {
		return ErrNotYourTurn
	}
	card := *a.Card
	if !containsCard(playableCards(*g, seat), card) {
		return fmt.Errorf("%w: %v", ErrIllegalCard, card)
	}
	if !removeCard(&g.Players[seat].Hand, card) {
		return fmt.Errorf("%w: %v not in hand", ErrIllegalCard, card)
	}
	g.Round.TrickOrder = order

	if g.Round.Trump != nil && card.Suit == *g.Round.Trump &&
		len(g.Round.TrickCards) > 0 && g.Round.TrickCards[0].Suit != *g.Round.Trump {
		g.Round.TrumpBroken = true
	}
	if g.Round.PartnerCard != nil && card == *g.Round.PartnerCard {
		g.Round.PartnerRevealed = true
	}

	g.Round.TrickCards = append(g.Round.TrickCards, card)
	if len(g.Round.TrickCards) == g.Rules.Seats {
		winner := ResolveTrick(g.Round.TrickOrder, g.Round.TrickCards, g.Round.Trump)
		g.Players[winner].Tricks = append(g.Players[winner].Tricks, append([]Card(nil), g.Round.TrickCards...))
		g.Players[winner].RoundPts += TrickPoints(g.Round.TrickCards)
		g.Round.Leader = winner
		g.Round.TrickCards = nil
		g.Round.TrickOrder = nil

		if len(g.Players[winner].Hand) == 0 {
			g.Round.Phase = PhaseScoreRound
			scoreRound(g)
		}
	}
	return nil
}

func legalBids(g GameState, seat Seat) []Action {
	if seat != g.Round.BidTurn || g.Round.Passed[seat] {
		return nil
	}
	out := []Action{}
	if !(g.Round.BidWinner == NoSeat && activeSeats(g) == 1) {
		out = append(out, Action{Type: ActionPass})
	}
	lo := g.Rules.BidMin
	if g.Round.BidValue >= lo {
		lo = g.Round.BidValue + g.Rules.BidStep
	}
	for bid := lo; bid <= g.Rules.BidMax; bid += g.Rules.BidStep {
		out = append(out, Action{Type: ActionBid, Bid: bid})
	}
	return out
}

func legalPlays(g GameState, seat Seat) []Action {
	if g.Round.Phase != PhasePlayTricks {
		return nil
	}
	order := g.Round.TrickOrder
	if len(order) == 0 {
		order = buildTrickOrder(g.Round.Leader, g.Rules.Seats)
	}
	expected := order[len(g.Round.TrickCards)]
	if seat != expected {
		return nil
	}
	cards := playableCards(g, seat)
	out := make([]Action, 0, len(cards))
	for i := range cards {
		c := cards[i]
		out = append(out, Action{Type: ActionPlayCard, Card: &c})
	}
	return out
}

func playableCards(g GameState, seat Seat) []Card {
	var lead *Suit
	if len(g.Round.TrickCards) > 0 {
		s := g.Round.TrickCards[0].Suit
		lead = &s
	}
	return g.Rules.PlayableCards(g.Players[seat].Hand, lead, g.Round.Trump, g.Round.TrumpBroken, g.Round.TrickCards)
}

// PlayableCards computes the legal subset of a hand for the current trick
// position. Leading: trump may not be led before it is broken unless the
// hand is all trump. Following: follow suit when possible; when void and the
// trick already holds a trump, an over-trump is forced if one exists,
// otherwise any trump must be played; with no trump in hand any card goes.
func (r Rules) PlayableCards(hand []Card, lead *Suit, trump *Suit, trumpBroken bool, trick []Card) []Card {
	if len(hand) == 0 {
		return nil
	}

	if lead == nil {
		if r.LockTrumpLead && trump != nil && !trumpBroken {
			nonTrump := filterNotSuit(hand, *trump)
			if len(nonTrump) > 0 {
				return nonTrump
			}
		}
		return hand
	}

	if r.MustFollowSuit {
		if follow := filterBySuit(hand, *lead); len(follow) > 0 {
			return follow
		}
	}
	if trump == nil || !r.MustOverTrump {
		return hand
	}
	trumps := filterBySuit(hand, *trump)
	if len(trumps) == 0 {
		return hand
	}
	bestTrump := -1
	for _, c := range trick {
		if c.Suit == *trump && RankStrength(c.Rank) > bestTrump {
			bestTrump = RankStrength(c.Rank)
		}
	}
	if bestTrump < 0 {
		// Trick not yet trumped: discard or trump freely.
		return hand
	}
	over := []Card{}
	for _, c := range trumps {
		if RankStrength(c.Rank) > bestTrump {
			over = append(over, c)
		}
	}
	if len(over) > 0 {
		return over
	}
	return trumps
}

func buildTrickOrder(leader Seat, seats int) []Seat {
	order := make([]Seat, 0, seats)
	for i := 0; i < seats; i++ {
		order = append(order, Seat((int(leader)+i)%seats))
	}
	return order
}

func activeSeats(g GameState) int {
	active := 0
	for s := Seat(0); int(s) < g.Rules.Seats; s++ {
		if !g.Round.Passed[s] {
			active++
		}
	}
	return active
}

func nextBidTurn(g *GameState) Seat {
	for i := 1; i <= g.Rules.Seats; i++ {
		n := Seat((int(g.Round.BidTurn) + i) % g.Rules.Seats)
		if !g.Round.Passed[n] {
			return n
		}
	}
	return g.Round.BidTurn
}

func findHolder(g GameState, card Card) Seat {
	for i := range g.Players {
		if containsCard(g.Players[i].Hand, card) {
			return g.Players[i].ID
		}
	}
	return NoSeat
}

func containsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}

func filterBySuit(cards []Card, suit Suit) []Card {
	out := []Card{}
	for _, c := range cards {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}

func filterNotSuit(cards []Card, suit Suit) []Card {
	out := []Card{}
	for _, c := range cards {
		if c.Suit != suit {
			out = append(out, c)
		}
	}
	return out
}

func removeCard(hand *[]Card, card Card) bool {
	for i, c := range *hand {
		if c == card {
			*hand = append((*hand)[:i], (*hand)[i+1:]...)
			return true
		}
	}
	return false
}
