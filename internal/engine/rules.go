package engine

// RankStrength orders ranks for same-category comparison: 2 lowest, ace
// highest. Only meaningful between two trumps or two cards of the lead suit.
func RankStrength(r Rank) int {
	return int(r)
}

// CardPoints returns the point value of a card. The queen of spades is the
// Black Queen and scores 30 instead of the usual 10 for a queen.
func CardPoints(c Card) int {
	switch c.Rank {
	case RankA:
		return 20
	case RankK, RankJ, Rank10:
		return 10
	case RankQ:
		if c.Suit == SuitSpades {
			return 30
		}
		return 10
	case Rank5:
		return 5
	default:
		return 0
	}
}

// TrickPoints sums the point values of all cards in a trick.
func TrickPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += CardPoints(c)
	}
	return total
}

// ResolveTrick returns the seat that wins a trick. Precedence is
// trump > lead suit > everything else; within the same category cards
// compare by rank strength. The lead suit is taken from the first card.
func ResolveTrick(order []Seat, cards []Card, trump *Suit) Seat {
	if len(order) == 0 || len(cards) == 0 {
		return NoSeat
	}
	leadSuit := cards[0].Suit
	bestIdx := 0
	for i := 1; i < len(cards); i++ {
		c := cards[i]
		best := cards[bestIdx]

		if trump != nil {
			if c.Suit == *trump && best.Suit != *trump {
				bestIdx = i
				continue
			}
			if c.Suit != *trump && best.Suit == *trump {
				continue
			}
		}

		if c.Suit == best.Suit {
			if RankStrength(c.Rank) > RankStrength(best.Rank) {
				bestIdx = i
			}
			continue
		}

		if best.Suit != leadSuit && c.Suit == leadSuit {
			bestIdx = i
		}
	}
	return order[bestIdx]
}

// scoreRound settles the finished round between the bid-winning team and
// the opponents, appends the history snapshot, and advances the round
// counter. Past the final round the game ends; otherwise the dealer moves
// and the next round resets for a fresh deal.
func scoreRound(g *GameState) {
	winner := g.Round.BidWinner
	if winner == NoSeat {
		return
	}
	bid := g.Round.BidValue

	teamTotal := 0
	for _, s := range BidTeam(*g) {
		teamTotal += g.Players[s].RoundPts
	}
	success := teamTotal >= bid

	deltas := make(map[Seat]int, g.Rules.Seats)
	for s := Seat(0); int(s) < g.Rules.Seats; s++ {
		deltas[s] = 0
	}
	if success {
		deltas[winner] = 2 * bid
		if !g.Round.Solo && g.Round.PartnerSeat != winner {
			deltas[g.Round.PartnerSeat] = bid
		}
	} else {
		deltas[winner] = -bid
		for _, opp := range OpponentTeam(*g) {
			deltas[opp] = bid
		}
	}

	for s, d := range deltas {
		g.Players[s].GameScore += d
	}
	g.History = append(g.History, RoundResult{
		Round:     g.RoundNum,
		BidWinner: winner,
		BidValue:  bid,
		TeamTotal: teamTotal,
		Success:   success,
		Solo:      g.Round.Solo,
		Deltas:    deltas,
	})

	g.RoundNum++
	if g.RoundNum > g.Rules.TotalRounds {
		g.Round.Phase = PhaseGameOver
		return
	}

	g.Round.Dealer = g.Round.Dealer.Next(g.Rules.Seats)
	g.ResetRound()
}
