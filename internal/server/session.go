package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"blackqueen/internal/bots"
	"blackqueen/internal/config"
	"blackqueen/internal/engine"
)

// The human always sits south; north, east and west are bots.
const humanSeat = engine.SeatSouth

func generateSessionID() string {
	return time.Now().Format("20060102150405")
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Session struct {
	mu         sync.Mutex
	id         string
	cfg        config.Config
	state      engine.GameState
	started    bool
	actionIds  map[string]bool
	conn       *websocket.Conn
	botPlayers map[engine.Seat]bots.Bot
}

var (
	sessionOnce sync.Once
	sessionInst *Session
)

func GetSession() *Session {
	sessionOnce.Do(func() {
		sessionInst = &Session{
			id:         generateSessionID(),
			cfg:        config.Default(),
			actionIds:  map[string]bool{},
			botPlayers: map[engine.Seat]bots.Bot{},
		}
	})
	return sessionInst
}

func (s *Session) Configure(cfg config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *Session) HandleConnection(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("bad_request", "invalid json")
			continue
		}
		s.handleMessage(msg)
	}
}

type ClientMessage struct {
	Type     string     `json:"type"`
	ActionId string     `json:"actionId,omitempty"`
	Action   *ActionDTO `json:"action,omitempty"`
}

type ServerMessage struct {
	Type   string     `json:"type"`
	State  *GameView  `json:"state,omitempty"`
	Events []Event    `json:"events,omitempty"`
	Error  *ErrorView `json:"error,omitempty"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

func (s *Session) handleMessage(msg ClientMessage) {
	switch msg.Type {
	case "join_session":
		s.sendState(nil)
	case "start_game":
		s.startGame()
	case "request_state":
		s.sendState(nil)
	case "player_action":
		s.applyAction(msg.ActionId, msg.Action)
	default:
		s.sendError("unknown_type", "unknown message type")
	}
}

func (s *Session) startGame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := s.cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.state = engine.NewGame(s.cfg.Rules(), seed)
	engine.DealRound(&s.state)
	s.started = true
	s.actionIds = map[string]bool{}
	s.botPlayers = map[engine.Seat]bots.Bot{
		engine.SeatNorth: newBot(s.cfg.Bots.North, seed+1),
		engine.SeatEast:  newBot(s.cfg.Bots.East, seed+2),
		engine.SeatWest:  newBot(s.cfg.Bots.West, seed+3),
	}
	s.sendStateLocked(nil)
	s.botAutoPlayLocked()
}

func newBot(level string, seed int64) bots.Bot {
	if level == "easy" {
		return bots.NewEasy(seed)
	}
	return bots.NewNormal(seed)
}

func (s *Session) applyAction(actionId string, dto *ActionDTO) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		s.sendError("not_started", "game not started")
		return
	}
	if actionId == "" {
		s.sendError("missing_action_id", "actionId required")
		return
	}
	if s.actionIds[actionId] {
		s.sendStateLocked(nil)
		return
	}
	s.actionIds[actionId] = true

	prev := s.state
	action, err := dto.ToEngine()
	if err != nil {
		s.sendError("bad_action", err.Error())
		return
	}
	if err := engine.ApplyAction(&s.state, humanSeat, action); err != nil {
		s.sendError("apply_failed", err.Error())
		return
	}
	s.ensureDealLocked()
	events := buildEvents(prev, s.state, humanSeat, action)
	s.sendStateLocked(events)
	s.botAutoPlayLocked()
}

func (s *Session) botAutoPlayLocked() {
	for {
		seat, ok := engine.CurrentPlayer(s.state)
		if !ok {
			return
		}
		bot, isBot := s.botPlayers[seat]
		if !isBot {
			return
		}
		prev := s.state
		action := bot.ChooseAction(s.state, seat)
		if err := engine.ApplyAction(&s.state, seat, action); err != nil {
			log.Printf("bot %v action rejected: %v", seat, err)
			action = fallbackAction(s.state, seat, engine.LegalActions(s.state, seat))
			if err := engine.ApplyAction(&s.state, seat, action); err != nil {
				log.Printf("bot %v fallback rejected: %v", seat, err)
				return
			}
		}
		s.ensureDealLocked()
		events := buildEvents(prev, s.state, seat, action)
		s.sendStateLocked(events)
	}
}

// fallbackAction picks a safe legal action when a bot misbehaves: pass if
// allowed, else the lowest bid, the cheapest card, or the first option.
func fallbackAction(g engine.GameState, seat engine.Seat, legal []engine.Action) engine.Action {
	if g.Round.Phase == engine.PhasePartnerSelect {
		for i := range g.Players {
			if engine.Seat(i) == seat || len(g.Players[i].Hand) == 0 {
				continue
			}
			card := g.Players[i].Hand[0]
			return engine.Action{Type: engine.ActionChoosePartner, Card: &card}
		}
		card := g.Players[seat].Hand[0]
		return engine.Action{Type: engine.ActionChoosePartner, Card: &card}
	}
	if len(legal) == 0 {
		return engine.Action{Type: engine.ActionPass}
	}
	for _, a := range legal {
		if a.Type == engine.ActionPass {
			return a
		}
	}
	best := legal[0]
	for _, a := range legal[1:] {
		switch {
		case a.Type == engine.ActionBid && best.Type == engine.ActionBid:
			if a.Bid < best.Bid {
				best = a
			}
		case a.Type == engine.ActionPlayCard && best.Type == engine.ActionPlayCard:
			if a.Card != nil && best.Card != nil && cardCost(*a.Card) < cardCost(*best.Card) {
				best = a
			}
		}
	}
	return best
}

func cardCost(c engine.Card) int {
	return engine.CardPoints(c)*100 + engine.RankStrength(c.Rank)
}

// ensureDealLocked advances into the next round after scoring. The seed is
// bumped so every round sees a fresh shuffle.
func (s *Session) ensureDealLocked() {
	if s.state.Round.Phase == engine.PhaseDeal && !s.state.Round.HandsDealt {
		s.state.Seed++
		engine.DealRound(&s.state)
	}
}

func (s *Session) sendState(events []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendStateLocked(events)
}

func (s *Session) sendStateLocked(events []Event) {
	if s.conn == nil {
		return
	}
	if !s.started {
		s.state = engine.NewGame(s.cfg.Rules(), 0)
	}
	msg := ServerMessage{
		Type:   "state",
		State:  BuildGameView(s.state, humanSeat, s.id),
		Events: events,
	}
	_ = s.conn.WriteJSON(msg)
}

func (s *Session) sendError(code, message string) {
	if s.conn == nil {
		return
	}
	msg := ServerMessage{
		Type:  "error",
		Error: &ErrorView{Code: code, Message: message},
	}
	_ = s.conn.WriteJSON(msg)
}
