package sim

import (
	"fmt"
	"sort"

	"blackqueen/internal/engine"
)

type ActionRecord struct {
	Round int
	Step  int
	Phase engine.Phase
	Seat  engine.Seat
	A     engine.Action
}

// RunSelfPlayGame drives a full game with a deterministic policy, checking
// engine invariants after every applied action. Seeds ending the declaration
// on the bidder's own card exercise the solo confirmation path.
func RunSelfPlayGame(seed int64, maxSteps int) error {
	rules := engine.StandardPreset()
	state := engine.NewGame(rules, seed)

	records := []ActionRecord{}
	trumpWasBroken := false
	passedCount := 0
	lastRound := state.RoundNum

	for step := 0; step < maxSteps; step++ {
		if state.Round.Phase == engine.PhaseGameOver {
			return nil
		}
		if state.Round.Phase == engine.PhaseDeal {
			state.Seed = seed + int64(state.RoundNum)
			engine.DealRound(&state)
			trumpWasBroken = false
			passedCount = 0
			lastRound = state.RoundNum
		}

		seat, ok := engine.CurrentPlayer(state)
		if !ok {
			return failure(seed, step, state, records, "no current player")
		}
		legal := engine.LegalActions(state, seat)
		if len(legal) == 0 {
			return failure(seed, step, state, records, "no legal actions")
		}
		action := chooseAction(state, seat, legal, seed)
		if err := engine.ApplyAction(&state, seat, action); err != nil {
			return failure(seed, step, state, records, fmt.Sprintf("apply error: %v", err))
		}
		records = append(records, ActionRecord{
			Round: lastRound,
			Step:  step,
			Phase: state.Round.Phase,
			Seat:  seat,
			A:     action,
		})

		if state.RoundNum == lastRound {
			if trumpWasBroken && !state.Round.TrumpBroken {
				return failure(seed, step, state, records, "trump-broken flag reset mid-round")
			}
			trumpWasBroken = state.Round.TrumpBroken

			if n := len(state.Round.Passed); n < passedCount {
				return failure(seed, step, state, records, "passed set shrank mid-round")
			} else {
				passedCount = n
			}
		}

		if err := checkInvariants(state); err != nil {
			return failure(seed, step, state, records, err.Error())
		}
	}
	return failure(seed, maxSteps, state, records, "game did not terminate")
}

func chooseAction(state engine.GameState, seat engine.Seat, legal []engine.Action, seed int64) engine.Action {
	switch state.Round.Phase {
	case engine.PhasePartnerSelect:
		return choosePartner(state, seat, seed)
	case engine.PhaseSoloConfirm:
		return engine.Action{Type: engine.ActionConfirmSolo}
	case engine.PhasePlayTricks:
		return lowestLegalPlay(legal)
	default:
		sort.Slice(legal, func(i, j int) bool {
			return actionKey(legal[i]) < actionKey(legal[j])
		})
		return legal[0]
	}
}

func choosePartner(state engine.GameState, seat engine.Seat, seed int64) engine.Action {
	hand := state.Players[seat].Hand
	if seed%5 == 0 {
		// Deliberately pick an own card so the solo flow gets exercised.
		c := hand[0]
		return engine.Action{Type: engine.ActionChoosePartner, Card: &c}
	}
	for _, c := range engine.BuildDeck() {
		held := false
		for _, h := range hand {
			if h == c {
				held = true
				break
			}
		}
		if !held {
			card := c
			return engine.Action{Type: engine.ActionChoosePartner, Card: &card}
		}
	}
	c := hand[0]
	return engine.Action{Type: engine.ActionChoosePartner, Card: &c}
}

func lowestLegalPlay(legal []engine.Action) engine.Action {
	best := legal[0]
	bestScore := 1<<31 - 1
	for _, a := range legal {
		if a.Type != engine.ActionPlayCard || a.Card == nil {
			continue
		}
		score := engine.CardPoints(*a.Card)*100 + engine.RankStrength(a.Card.Rank)
		if score < bestScore {
			bestScore = score
			best = a
		}
	}
	return best
}

func actionKey(a engine.Action) string {
	switch a.Type {
	case engine.ActionPass:
		return "0_pass"
	case engine.ActionBid:
		return fmt.Sprintf("1_bid_%04d", a.Bid)
	case engine.ActionChooseTrump:
		if a.Suit == nil {
			return "2_trump_?"
		}
		return fmt.Sprintf("2_trump_%d", *a.Suit)
	case engine.ActionChoosePartner:
		return "3_partner"
	case engine.ActionConfirmSolo:
		return "4_solo_confirm"
	case engine.ActionCancelSolo:
		return "5_solo_cancel"
	case engine.ActionPlayCard:
		if a.Card == nil {
			return "6_play_?"
		}
		return fmt.Sprintf("6_play_%d_%d", a.Card.Suit, a.Card.Rank)
	default:
		return "9_unknown"
	}
}

func checkInvariants(state engine.GameState) error {
	if state.Round.Phase == engine.PhaseDeal || state.Round.Phase == engine.PhaseGameOver {
		return nil
	}
	total, dup := countCards(state)
	if total != 52 {
		return fmt.Errorf("card count mismatch: %d", total)
	}
	if dup {
		return fmt.Errorf("duplicate card detected")
	}
	if len(state.Round.TrickCards) >= state.Rules.Seats {
		return fmt.Errorf("invalid trick size: %d", len(state.Round.TrickCards))
	}
	for _, p := range state.Players {
		if len(p.Hand) > state.Rules.CardsPerHand {
			return fmt.Errorf("hand size too large: %d", len(p.Hand))
		}
	}
	if state.Round.BidValue != 0 {
		if state.Round.BidValue%state.Rules.BidStep != 0 ||
			state.Round.BidValue < state.Rules.BidMin ||
			state.Round.BidValue > state.Rules.BidMax {
			return fmt.Errorf("bid value out of range: %d", state.Round.BidValue)
		}
		if state.Round.BidWinner == engine.NoSeat {
			return fmt.Errorf("bid value without bidder")
		}
	}
	if state.Round.Phase == engine.PhasePlayTricks {
		if state.Round.Trump == nil {
			return fmt.Errorf("trick play without trump")
		}
		if state.Round.PartnerSeat == engine.NoSeat {
			return fmt.Errorf("trick play without resolved partner")
		}
	}
	return nil
}

func countCards(state engine.GameState) (int, bool) {
	seen := map[engine.Card]bool{}
	total := 0
	dup := false
	add := func(c engine.Card) {
		total++
		if seen[c] {
			dup = true
		}
		seen[c] = true
	}
	for _, p := range state.Players {
		for _, c := range p.Hand {
			add(c)
		}
		for _, trick := range p.Tricks {
			for _, c := range trick {
				add(c)
			}
		}
	}
	for _, c := range state.Round.TrickCards {
		add(c)
	}
	return total, dup
}

func failure(seed int64, step int, state engine.GameState, records []ActionRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[r%d s%d %v %v] %v\n", r.Round, r.Step, r.Seat, r.Phase, r.A)
	}
	return fmt.Errorf("seed=%d step=%d phase=%v reason=%s\nlast actions:\n%s",
		seed, step, state.Round.Phase, reason, log)
}
