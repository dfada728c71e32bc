package server

import "blackqueen/internal/engine"

type EventPayload struct {
	Seat   string         `json:"seat,omitempty"`
	Bid    int            `json:"bid,omitempty"`
	Suit   string         `json:"suit,omitempty"`
	Card   *CardDTO       `json:"card,omitempty"`
	Points int            `json:"points,omitempty"`
	Deltas map[string]int `json:"deltas,omitempty"`
	Winner string         `json:"winner,omitempty"`
}

func buildEvents(prev engine.GameState, next engine.GameState, seat engine.Seat, action engine.Action) []Event {
	events := []Event{}
	actor := seatToString(seat)

	switch action.Type {
	case engine.ActionBid:
		events = append(events, Event{Type: "bid_made", Data: EventPayload{Seat: actor, Bid: action.Bid}})
	case engine.ActionPass:
		events = append(events, Event{Type: "bid_passed", Data: EventPayload{Seat: actor}})
	case engine.ActionChooseTrump:
		if action.Suit != nil {
			events = append(events, Event{Type: "trump_chosen", Data: EventPayload{Seat: actor, Suit: suitToString(*action.Suit)}})
		}
	case engine.ActionChoosePartner:
		if action.Card != nil {
			events = append(events, Event{Type: "partner_chosen", Data: EventPayload{Seat: actor, Card: cardToDTO(*action.Card)}})
		}
	case engine.ActionConfirmSolo:
		events = append(events, Event{Type: "solo_confirmed", Data: EventPayload{Seat: actor}})
	case engine.ActionPlayCard:
		if action.Card != nil {
			events = append(events, Event{Type: "card_played", Data: EventPayload{Seat: actor, Card: cardToDTO(*action.Card)}})
		}
	}

	if !prev.Round.TrumpBroken && next.Round.TrumpBroken {
		events = append(events, Event{Type: "trump_broken", Data: EventPayload{Seat: actor}})
	}
	if !prev.Round.PartnerRevealed && next.Round.PartnerRevealed && action.Type == engine.ActionPlayCard {
		events = append(events, Event{Type: "partner_revealed", Data: EventPayload{Seat: seatToString(next.Round.PartnerSeat)}})
	}

	for i := range next.Players {
		if len(next.Players[i].Tricks) > len(prev.Players[i].Tricks) {
			trick := next.Players[i].Tricks[len(next.Players[i].Tricks)-1]
			events = append(events, Event{Type: "trick_won", Data: EventPayload{
				Seat:   seatToString(engine.Seat(i)),
				Points: engine.TrickPoints(trick),
			}})
		}
	}

	if len(next.History) > len(prev.History) {
		last := next.History[len(next.History)-1]
		deltas := map[string]int{}
		for s, d := range last.Deltas {
			deltas[seatToString(s)] = d
		}
		events = append(events, Event{Type: "round_scored", Data: EventPayload{
			Seat:   seatToString(last.BidWinner),
			Bid:    last.BidValue,
			Points: last.TeamTotal,
			Deltas: deltas,
		}})
	}
	if prev.Round.Phase != engine.PhaseGameOver && next.Round.Phase == engine.PhaseGameOver {
		events = append(events, Event{Type: "game_over", Data: EventPayload{
			Winner: seatToString(engine.Winner(next)),
		}})
	}
	return events
}
