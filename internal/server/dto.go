package server

import (
	"errors"

	"blackqueen/internal/engine"
)

type CardDTO struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

type ActionDTO struct {
	Type string   `json:"type"`
	Bid  int      `json:"bid,omitempty"`
	Suit string   `json:"suit,omitempty"`
	Card *CardDTO `json:"card,omitempty"`
}

func (a *ActionDTO) ToEngine() (engine.Action, error) {
	if a == nil {
		return engine.Action{}, errors.New("action missing")
	}
	switch a.Type {
	case "bid":
		return engine.Action{Type: engine.ActionBid, Bid: a.Bid}, nil
	case "pass":
		return engine.Action{Type: engine.ActionPass}, nil
	case "choose_trump":
		s, err := parseSuit(a.Suit)
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Action{Type: engine.ActionChooseTrump, Suit: &s}, nil
	case "choose_partner":
		if a.Card == nil {
			return engine.Action{}, errors.New("partner card required")
		}
		card, err := a.Card.toEngine()
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Action{Type: engine.ActionChoosePartner, Card: &card}, nil
	case "confirm_solo":
		return engine.Action{Type: engine.ActionConfirmSolo}, nil
	case "cancel_solo":
		return engine.Action{Type: engine.ActionCancelSolo}, nil
	case "play_card":
		if a.Card == nil {
			return engine.Action{}, errors.New("card required")
		}
		card, err := a.Card.toEngine()
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Action{Type: engine.ActionPlayCard, Card: &card}, nil
	default:
		return engine.Action{}, errors.New("unknown action type")
	}
}

func ActionFromEngine(a engine.Action) ActionDTO {
	switch a.Type {
	case engine.ActionBid:
		return ActionDTO{Type: "bid", Bid: a.Bid}
	case engine.ActionPass:
		return ActionDTO{Type: "pass"}
	case engine.ActionChooseTrump:
		if a.Suit == nil {
			return ActionDTO{Type: "choose_trump"}
		}
		return ActionDTO{Type: "choose_trump", Suit: suitToString(*a.Suit)}
	case engine.ActionChoosePartner:
		if a.Card == nil {
			return ActionDTO{Type: "choose_partner"}
		}
		return ActionDTO{Type: "choose_partner", Card: cardToDTO(*a.Card)}
	case engine.ActionConfirmSolo:
		return ActionDTO{Type: "confirm_solo"}
	case engine.ActionCancelSolo:
		return ActionDTO{Type: "cancel_solo"}
	case engine.ActionPlayCard:
		if a.Card == nil {
			return ActionDTO{Type: "play_card"}
		}
		return ActionDTO{Type: "play_card", Card: cardToDTO(*a.Card)}
	default:
		return ActionDTO{Type: "unknown"}
	}
}

func (c CardDTO) toEngine() (engine.Card, error) {
	s, err := parseSuit(c.Suit)
	if err != nil {
		return engine.Card{}, err
	}
	r, err := parseRank(c.Rank)
	if err != nil {
		return engine.Card{}, err
	}
	return engine.Card{Suit: s, Rank: r}, nil
}

func cardToDTO(c engine.Card) *CardDTO {
	return &CardDTO{Suit: suitToString(c.Suit), Rank: rankToString(c.Rank)}
}

func parseSuit(s string) (engine.Suit, error) {
	switch s {
	case "H":
		return engine.SuitHearts, nil
	case "D":
		return engine.SuitDiamonds, nil
	case "C":
		return engine.SuitClubs, nil
	case "S":
		return engine.SuitSpades, nil
	default:
		return engine.SuitHearts, errors.New("invalid suit")
	}
}

func suitToString(s engine.Suit) string {
	switch s {
	case engine.SuitHearts:
		return "H"
	case engine.SuitDiamonds:
		return "D"
	case engine.SuitClubs:
		return "C"
	case engine.SuitSpades:
		return "S"
	default:
		return "?"
	}
}

func parseRank(r string) (engine.Rank, error) {
	switch r {
	case "2":
		return engine.Rank2, nil
	case "3":
		return engine.Rank3, nil
	case "4":
		return engine.Rank4, nil
	case "5":
		return engine.Rank5, nil
	case "6":
		return engine.Rank6, nil
	case "7":
		return engine.Rank7, nil
	case "8":
		return engine.Rank8, nil
	case "9":
		return engine.Rank9, nil
	case "10":
		return engine.Rank10, nil
	case "J":
		return engine.RankJ, nil
	case "Q":
		return engine.RankQ, nil
	case "K":
		return engine.RankK, nil
	case "A":
		return engine.RankA, nil
	default:
		return engine.Rank2, errors.New("invalid rank")
	}
}

func rankToString(r engine.Rank) string {
	switch r {
	case engine.Rank2:
		return "2"
	case engine.Rank3:
		return "3"
	case engine.Rank4:
		return "4"
	case engine.Rank5:
		return "5"
	case engine.Rank6:
		return "6"
	case engine.Rank7:
		return "7"
	case engine.Rank8:
		return "8"
	case engine.Rank9:
		return "9"
	case engine.Rank10:
		return "10"
	case engine.RankJ:
		return "J"
	case engine.RankQ:
		return "Q"
	case engine.RankK:
		return "K"
	case engine.RankA:
		return "A"
	default:
		return "?"
	}
}

func seatToString(s engine.Seat) string {
	if s == engine.NoSeat {
		return ""
	}
	return s.String()
}
