package bots

import (
	"math/rand"
	"sort"

	"blackqueen/internal/engine"
)

type Bot interface {
	ChooseAction(state engine.GameState, seat engine.Seat) engine.Action
}

type EasyBot struct {
	RNG *rand.Rand
}

func NewEasy(seed int64) *EasyBot {
	return &EasyBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *EasyBot) ChooseAction(state engine.GameState, seat engine.Seat) engine.Action {
	switch state.Round.Phase {
	case engine.PhasePartnerSelect:
		dealt := dealtCards(state)
		card := dealt[b.RNG.Intn(len(dealt))]
		return engine.Action{Type: engine.ActionChoosePartner, Card: &card}
	case engine.PhaseSoloConfirm:
		return engine.Action{Type: engine.ActionConfirmSolo}
	default:
		legal := engine.LegalActions(state, seat)
		if len(legal) == 0 {
			return engine.Action{Type: engine.ActionPass}
		}
		return legal[b.RNG.Intn(len(legal))]
	}
}

type NormalBot struct {
	RNG *rand.Rand
}

func NewNormal(seed int64) *NormalBot {
	return &NormalBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *NormalBot) ChooseAction(state engine.GameState, seat engine.Seat) engine.Action {
	switch state.Round.Phase {
	case engine.PhaseBidding:
		a := bidByStrength(state, seat)
		legal := engine.LegalActions(state, seat)
		if a.Type == engine.ActionPass && !containsPass(legal) {
			// Forced bidder: take the lowest bid on the table.
			return lowestBid(legal)
		}
		return a
	case engine.PhaseTrumpSelect:
		return chooseTrump(state, seat)
	case engine.PhasePartnerSelect:
		return choosePartner(state, seat)
	case engine.PhaseSoloConfirm:
		// choosePartner only names an own card on purpose.
		return engine.Action{Type: engine.ActionConfirmSolo}
	case engine.PhasePlayTricks:
		return playHeuristic(state, seat)
	default:
		legal := engine.LegalActions(state, seat)
		if len(legal) == 0 {
			return engine.Action{Type: engine.ActionPass}
		}
		return legal[0]
	}
}

// HandStrength estimates bidding strength: card points plus a bonus for
// long suits (five or more cards) that promise trump control.
func HandStrength(hand []engine.Card) int {
	strength := 0
	suitCounts := map[engine.Suit]int{}
	for _, c := range hand {
		strength += engine.CardPoints(c)
		suitCounts[c.Suit]++
	}
	for _, n := range suitCounts {
		if n >= 5 {
			strength += (n - 4) * 5
		}
	}
	return strength
}

func bidByStrength(state engine.GameState, seat engine.Seat) engine.Action {
	r := state.Rules
	strength := HandStrength(state.Players[seat].Hand)
	cur := state.Round.BidValue

	base := cur + r.BidStep
	if cur == 0 {
		base = r.BidMin
	}

	var want int
	switch {
	case strength >= 100:
		want = maxInt(base, 200)
		want = minInt(want, 240)
	case strength >= 85:
		want = maxInt(base, r.BidMin+10)
		want = minInt(want, 220)
	case strength >= 55:
		want = maxInt(base, r.BidMin)
		want = minInt(want, 200)
	case strength >= 35:
		if cur >= 185 {
			return engine.Action{Type: engine.ActionPass}
		}
		want = maxInt(base, r.BidMin)
		want = minInt(want, 190)
	default:
		return engine.Action{Type: engine.ActionPass}
	}

	if rem := want % r.BidStep; rem != 0 {
		want += r.BidStep - rem
	}
	if want <= cur || want < r.BidMin || want > r.BidMax {
		return engine.Action{Type: engine.ActionPass}
	}
	return engine.Action{Type: engine.ActionBid, Bid: want}
}

// chooseTrump picks the longest suit in hand.
func chooseTrump(state engine.GameState, seat engine.Seat) engine.Action {
	suitCounts := map[engine.Suit]int{}
	for _, c := range state.Players[seat].Hand {
		suitCounts[c.Suit]++
	}
	best := engine.Suits[0]
	for _, s := range engine.Suits[1:] {
		if suitCounts[s] > suitCounts[best] {
			best = s
		}
	}
	return engine.Action{Type: engine.ActionChooseTrump, Suit: &best}
}

// choosePartner prefers an ace held by another seat, then a king; with all
// aces and kings in hand it names its own highest card and plays solo.
func choosePartner(state engine.GameState, seat engine.Seat) engine.Action {
	hand := state.Players[seat].Hand
	heldByOther := func(want engine.Card) bool {
		for i := range state.Players {
			if engine.Seat(i) == seat {
				continue
			}
			for _, c := range state.Players[i].Hand {
				if c == want {
					return true
				}
			}
		}
		return false
	}

	for _, rank := range []engine.Rank{engine.RankA, engine.RankK} {
		for _, s := range engine.Suits {
			if card := (engine.Card{Suit: s, Rank: rank}); heldByOther(card) {
				return engine.Action{Type: engine.ActionChoosePartner, Card: &card}
			}
		}
	}

	highest := hand[0]
	for _, c := range hand[1:] {
		if engine.RankStrength(c.Rank) > engine.RankStrength(highest.Rank) {
			highest = c
		}
	}
	return engine.Action{Type: engine.ActionChoosePartner, Card: &highest}
}

func playHeuristic(state engine.GameState, seat engine.Seat) engine.Action {
	legal := engine.LegalActions(state, seat)
	if len(legal) == 0 {
		return engine.Action{Type: engine.ActionPass}
	}

	if len(state.Round.TrickCards) == 0 {
		return leadChoice(state, seat, legal)
	}

	if winner := currentTrickWinner(state); teammates(state, seat, winner) {
		return cheapest(legal)
	}

	winning := []engine.Action{}
	for _, a := range legal {
		if winsIfPlayed(state, seat, *a.Card) {
			winning = append(winning, a)
		}
	}
	if len(winning) > 0 {
		trickValue := engine.TrickPoints(state.Round.TrickCards)
		lastToAct := len(state.Round.TrickCards) == state.Rules.Seats-1
		if trickValue >= 10 || lastToAct {
			return weakest(winning)
		}
	}
	return cheapest(legal)
}

// leadChoice leads the strongest card of the longest playable suit to draw
// out opposing high cards.
func leadChoice(state engine.GameState, seat engine.Seat, legal []engine.Action) engine.Action {
	suitCounts := map[engine.Suit]int{}
	for _, a := range legal {
		suitCounts[a.Card.Suit]++
	}
	longest := legal[0].Card.Suit
	for _, s := range engine.Suits {
		if suitCounts[s] > suitCounts[longest] {
			longest = s
		}
	}

	best := engine.Action{}
	for _, a := range legal {
		if a.Card.Suit != longest {
			continue
		}
		if best.Card == nil || engine.RankStrength(a.Card.Rank) > engine.RankStrength(best.Card.Rank) {
			best = a
		}
	}
	return best
}

func currentTrickWinner(state engine.GameState) engine.Seat {
	n := len(state.Round.TrickCards)
	if n == 0 || len(state.Round.TrickOrder) < n {
		return engine.NoSeat
	}
	return engine.ResolveTrick(state.Round.TrickOrder[:n], state.Round.TrickCards, state.Round.Trump)
}

// teammates reports whether two seats are on the same known team. Hidden
// partnerships count only once revealed; until then every other seat is
// treated as an opponent.
func teammates(state engine.GameState, a, b engine.Seat) bool {
	if a == engine.NoSeat || b == engine.NoSeat || a == b {
		return false
	}
	if !state.Round.PartnerRevealed {
		return false
	}
	team := engine.BidTeam(state)
	aOn, bOn := false, false
	for _, s := range team {
		if s == a {
			aOn = true
		}
		if s == b {
			bOn = true
		}
	}
	return aOn == bOn
}

func winsIfPlayed(state engine.GameState, seat engine.Seat, card engine.Card) bool {
	cards := append([]engine.Card(nil), state.Round.TrickCards...)
	order := append([]engine.Seat(nil), state.Round.TrickOrder...)
	if len(order) == 0 {
		for i := 0; i < state.Rules.Seats; i++ {
			order = append(order, engine.Seat((int(state.Round.Leader)+i)%state.Rules.Seats))
		}
	}
	cards = append(cards, card)
	order = order[:len(cards)]
	order[len(cards)-1] = seat
	return engine.ResolveTrick(order, cards, state.Round.Trump) == seat
}

// cheapest sheds the lowest-value card; weakest picks the smallest winner.
func cheapest(actions []engine.Action) engine.Action {
	return pickBy(actions, func(c engine.Card) int {
		return engine.CardPoints(c)*100 + engine.RankStrength(c.Rank)
	})
}

func weakest(actions []engine.Action) engine.Action {
	return pickBy(actions, func(c engine.Card) int {
		return engine.RankStrength(c.Rank)
	})
}

func pickBy(actions []engine.Action, score func(engine.Card) int) engine.Action {
	cands := append([]engine.Action(nil), actions...)
	sort.Slice(cands, func(i, j int) bool {
		return score(*cands[i].Card) < score(*cands[j].Card)
	})
	return cands[0]
}

// dealtCards collects every card currently in a hand. With short deals part
// of the deck never enters play and may not be named as a partner card.
func dealtCards(state engine.GameState) []engine.Card {
	out := []engine.Card{}
	for _, p := range state.Players {
		out = append(out, p.Hand...)
	}
	return out
}

func containsPass(actions []engine.Action) bool {
	for _, a := range actions {
		if a.Type == engine.ActionPass {
			return true
		}
	}
	return false
}

func lowestBid(actions []engine.Action) engine.Action {
	best := engine.Action{Type: engine.ActionPass}
	for _, a := range actions {
		if a.Type != engine.ActionBid {
			continue
		}
		if best.Type != engine.ActionBid || a.Bid < best.Bid {
			best = a
		}
	}
	return best
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
