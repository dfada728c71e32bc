package server

import "blackqueen/internal/engine"

type PlayerView struct {
	Seat      string    `json:"seat"`
	Hand      []CardDTO `json:"hand,omitempty"`
	HandCount int       `json:"handCount"`
	RoundPts  int       `json:"roundPts"`
	GameScore int       `json:"gameScore"`
	Tricks    int       `json:"tricks"`
}

type RoundView struct {
	Phase           string          `json:"phase"`
	Dealer          string          `json:"dealer"`
	Leader          string          `json:"leader"`
	Trump           *string         `json:"trump,omitempty"`
	BidTurn         string          `json:"bidTurn"`
	BidWinner       string          `json:"bidWinner,omitempty"`
	BidValue        int             `json:"bidValue"`
	Bids            map[string]int  `json:"bids"`
	Passed          map[string]bool `json:"passed"`
	PartnerCard     *CardDTO        `json:"partnerCard,omitempty"`
	PartnerSeat     string          `json:"partnerSeat,omitempty"`
	PartnerRevealed bool            `json:"partnerRevealed"`
	Solo            bool            `json:"solo"`
	TrumpBroken     bool            `json:"trumpBroken"`
	TrickCards      []CardDTO       `json:"trickCards"`
	TrickOrder      []string        `json:"trickOrder"`
}

type ResultView struct {
	Round     int            `json:"round"`
	BidWinner string         `json:"bidWinner"`
	BidValue  int            `json:"bidValue"`
	TeamTotal int            `json:"teamTotal"`
	Success   bool           `json:"success"`
	Solo      bool           `json:"solo"`
	Deltas    map[string]int `json:"deltas"`
}

type RulesView struct {
	CardsPerHand int `json:"cardsPerHand"`
	BidMin       int `json:"bidMin"`
	BidMax       int `json:"bidMax"`
	BidStep      int `json:"bidStep"`
	TotalRounds  int `json:"totalRounds"`
}

type GameView struct {
	SessionID    string       `json:"sessionId"`
	RoundNum     int          `json:"roundNum"`
	Players      []PlayerView `json:"players"`
	Round        RoundView    `json:"round"`
	Rules        RulesView    `json:"rules"`
	History      []ResultView `json:"history"`
	LegalActions []ActionDTO  `json:"legalActions"`
}

// BuildGameView renders the state as seen from one seat. Other hands are
// reduced to counts; the declared partner card is public but the seat that
// holds it stays hidden until the card hits the table.
func BuildGameView(g engine.GameState, viewer engine.Seat, sessionID string) *GameView {
	players := make([]PlayerView, 0, len(g.Players))
	for i, p := range g.Players {
		view := PlayerView{
			Seat:      seatToString(p.ID),
			HandCount: len(p.Hand),
			RoundPts:  p.RoundPts,
			GameScore: p.GameScore,
			Tricks:    len(p.Tricks),
		}
		if engine.Seat(i) == viewer {
			for _, c := range p.Hand {
				view.Hand = append(view.Hand, *cardToDTO(c))
			}
		}
		players = append(players, view)
	}

	var trump *string
	if g.Round.Trump != nil {
		s := suitToString(*g.Round.Trump)
		trump = &s
	}
	var partnerCard *CardDTO
	if g.Round.PartnerCard != nil {
		partnerCard = cardToDTO(*g.Round.PartnerCard)
	}
	partnerSeat := ""
	if g.Round.PartnerRevealed {
		partnerSeat = seatToString(g.Round.PartnerSeat)
	}

	bids := map[string]int{}
	for seat, bid := range g.Round.Bids {
		bids[seatToString(seat)] = bid
	}
	passed := map[string]bool{}
	for seat, p := range g.Round.Passed {
		passed[seatToString(seat)] = p
	}

	trickCards := make([]CardDTO, 0, len(g.Round.TrickCards))
	for _, c := range g.Round.TrickCards {
		trickCards = append(trickCards, *cardToDTO(c))
	}
	trickOrder := make([]string, 0, len(g.Round.TrickOrder))
	for _, s := range g.Round.TrickOrder {
		trickOrder = append(trickOrder, seatToString(s))
	}

	history := make([]ResultView, 0, len(g.History))
	for _, r := range g.History {
		deltas := map[string]int{}
		for seat, d := range r.Deltas {
			deltas[seatToString(seat)] = d
		}
		history = append(history, ResultView{
			Round:     r.Round,
			BidWinner: seatToString(r.BidWinner),
			BidValue:  r.BidValue,
			TeamTotal: r.TeamTotal,
			Success:   r.Success,
			Solo:      r.Solo,
			Deltas:    deltas,
		})
	}

	legal := []ActionDTO{}
	for _, a := range engine.LegalActions(g, viewer) {
		legal = append(legal, ActionFromEngine(a))
	}

	return &GameView{
		SessionID: sessionID,
		RoundNum:  g.RoundNum,
		Players:   players,
		Round: RoundView{
			Phase:           phaseToString(g.Round.Phase),
			Dealer:          seatToString(g.Round.Dealer),
			Leader:          seatToString(g.Round.Leader),
			Trump:           trump,
			BidTurn:         seatToString(g.Round.BidTurn),
			BidWinner:       seatToString(g.Round.BidWinner),
			BidValue:        g.Round.BidValue,
			Bids:            bids,
			Passed:          passed,
			PartnerCard:     partnerCard,
			PartnerSeat:     partnerSeat,
			PartnerRevealed: g.Round.PartnerRevealed,
			Solo:            g.Round.Solo,
			TrumpBroken:     g.Round.TrumpBroken,
			TrickCards:      trickCards,
			TrickOrder:      trickOrder,
		},
		Rules: RulesView{
			CardsPerHand: g.Rules.CardsPerHand,
			BidMin:       g.Rules.BidMin,
			BidMax:       g.Rules.BidMax,
			BidStep:      g.Rules.BidStep,
			TotalRounds:  g.Rules.TotalRounds,
		},
		History:      history,
		LegalActions: legal,
	}
}

func phaseToString(p engine.Phase) string {
	switch p {
	case engine.PhaseLobby:
		return "Lobby"
	case engine.PhaseDeal:
		return "Deal"
	case engine.PhaseBidding:
		return "Bidding"
	case engine.PhaseTrumpSelect:
		return "TrumpSelect"
	case engine.PhasePartnerSelect:
		return "PartnerSelect"
	case engine.PhaseSoloConfirm:
		return "SoloConfirm"
	case engine.PhasePlayTricks:
		return "PlayTricks"
	case engine.PhaseScoreRound:
		return "ScoreRound"
	case engine.PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}
