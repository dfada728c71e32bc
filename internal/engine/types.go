package engine

import "fmt"

type Suit int

type Rank int

const (
	SuitHearts Suit = iota
	SuitDiamonds
	SuitClubs
	SuitSpades
)

const (
	Rank2 Rank = iota
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
	Rank9
	Rank10
	RankJ
	RankQ
	RankK
	RankA
)

var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

var Ranks = []Rank{
	Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8,
	Rank9, Rank10, RankJ, RankQ, RankK, RankA,
}

func (s Suit) String() string {
	switch s {
	case SuitHearts:
		return "H"
	case SuitDiamonds:
		return "D"
	case SuitClubs:
		return "C"
	case SuitSpades:
		return "S"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch r {
	case RankJ:
		return "J"
	case RankQ:
		return "Q"
	case RankK:
		return "K"
	case RankA:
		return "A"
	default:
		if r >= Rank2 && r <= Rank10 {
			return fmt.Sprintf("%d", int(r)+2)
		}
		return "?"
	}
}

type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank.String(), c.Suit.String())
}

// BlackQueen is the namesake scoring card, worth 30 points to whichever
// seat wins the trick containing it.
var BlackQueen = Card{Suit: SuitSpades, Rank: RankQ}

// Seat identifies one of the four fixed positions in clockwise order.
type Seat int

const (
	SeatNorth Seat = iota
	SeatEast
	SeatSouth
	SeatWest
)

// NoSeat marks an unresolved seat field (no bid winner yet, partner unknown).
const NoSeat Seat = -1

func (s Seat) String() string {
	switch s {
	case SeatNorth:
		return "north"
	case SeatEast:
		return "east"
	case SeatSouth:
		return "south"
	case SeatWest:
		return "west"
	default:
		return "?"
	}
}

// Next returns the seat clockwise of s.
func (s Seat) Next(seats int) Seat {
	return Seat((int(s) + 1) % seats)
}

type Phase int

const (
	PhaseLobby Phase = iota
	PhaseDeal
	PhaseBidding
	PhaseTrumpSelect
	PhasePartnerSelect
	PhaseSoloConfirm
	PhasePlayTricks
	PhaseScoreRound
	PhaseGameOver
)

type Rules struct {
	Seats          int
	CardsPerHand   int
	BidMin         int
	BidMax         int
	BidStep        int
	TotalRounds    int
	MustFollowSuit bool
	MustOverTrump  bool
	LockTrumpLead  bool
}

func StandardPreset() Rules {
	return Rules{
		Seats:          4,
		CardsPerHand:   13,
		BidMin:         170,
		BidMax:         280,
		BidStep:        5,
		TotalRounds:    4,
		MustFollowSuit: true,
		MustOverTrump:  true,
		LockTrumpLead:  true,
	}
}

type PlayerState struct {
	ID        Seat
	Hand      []Card
	Tricks    [][]Card
	RoundPts  int
	GameScore int
}

type RoundState struct {
	Phase      Phase
	Dealer     Seat
	Leader     Seat
	HandsDealt bool

	BidTurn   Seat
	Bids      map[Seat]int
	Passed    map[Seat]bool
	BidWinner Seat
	BidValue  int

	Trump           *Suit
	PartnerCard     *Card
	PartnerSeat     Seat
	PartnerRevealed bool
	Solo            bool

	TrumpBroken bool
	TrickCards  []Card
	TrickOrder  []Seat
}

// RoundResult is one append-only settlement snapshot for the score table.
type RoundResult struct {
	Round     int
	BidWinner Seat
	BidValue  int
	TeamTotal int
	Success   bool
	Solo      bool
	Deltas    map[Seat]int
}

type GameState struct {
	Rules    Rules
	Seed     int64
	RoundNum int
	Round    RoundState
	Players  []PlayerState
	History  []RoundResult
}

func NewGame(r Rules, seed int64) GameState {
	players := make([]PlayerState, r.Seats)
	for i := 0; i < r.Seats; i++ {
		players[i] = PlayerState{ID: Seat(i)}
	}

	return GameState{
		Rules:    r,
		Seed:     seed,
		RoundNum: 1,
		Round: RoundState{
			Phase:       PhaseDeal,
			Dealer:      SeatNorth,
			BidWinner:   NoSeat,
			PartnerSeat: NoSeat,
		},
		Players: players,
	}
}

// ResetRound clears all round-scoped state (bids, declarations, tricks,
// the trump-broken flag, round points) while keeping game totals.
func (g *GameState) ResetRound() {
	g.Round = RoundState{
		Phase:       PhaseDeal,
		Dealer:      g.Round.Dealer,
		BidWinner:   NoSeat,
		PartnerSeat: NoSeat,
	}
	for i := range g.Players {
		g.Players[i].Hand = nil
		g.Players[i].Tricks = nil
		g.Players[i].RoundPts = 0
	}
}

// BidTeam returns the bid-winning team: the bid winner alone in solo mode,
// otherwise the bid winner plus the resolved partner seat.
func BidTeam(g GameState) []Seat {
	if g.Round.BidWinner == NoSeat {
		return nil
	}
	if g.Round.Solo || g.Round.PartnerSeat == NoSeat || g.Round.PartnerSeat == g.Round.BidWinner {
		return []Seat{g.Round.BidWinner}
	}
	return []Seat{g.Round.BidWinner, g.Round.PartnerSeat}
}

// OpponentTeam returns every seat not on the bid-winning team.
func OpponentTeam(g GameState) []Seat {
	team := BidTeam(g)
	out := make([]Seat, 0, g.Rules.Seats)
	for s := Seat(0); int(s) < g.Rules.Seats; s++ {
		onTeam := false
		for _, t := range team {
			if t == s {
				onTeam = true
			}
		}
		if !onTeam {
			out = append(out, s)
		}
	}
	return out
}

// Winner returns the seat with the highest game total. Ties break toward
// the lower seat index.
func Winner(g GameState) Seat {
	best := Seat(0)
	for s := Seat(1); int(s) < g.Rules.Seats; s++ {
		if g.Players[s].GameScore > g.Players[best].GameScore {
			best = s
		}
	}
	return best
}
