package game

import (
	"context"
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

// round holds everything scoped to a single PlayRound call.
type round struct {
	id            string
	number        int
	bet           Money
	balanceBefore Money
	players       []*Player
	dealer        *Dealer

	splits, doubles int
	splitInvolved   bool
	doubleInvolved  bool
	book            bool // the human handed the rest of the round to the advisor
	naturalPaid     bool
	forced          bool
	dealerPlayed    bool
	outcomes        []HandOutcome
}

func newRound(id string, number, seats int, bet, balance Money) *round {
	r := &round{
		id:            id,
		number:        number,
		bet:           bet,
		balanceBefore: balance,
		dealer:        &Dealer{Hand: NewHand(0)},
	}
	r.players = append(r.players, newPlayer(0, HumanName, true, bet))
	for seat := 1; seat < seats; seat++ {
		r.players = append(r.players, newPlayer(seat, fmt.Sprintf("Player %d", seat+1), false, 0))
	}
	return r
}

func (r *round) human() *Player {
	return r.players[0]
}

// dealerNeeded reports whether any player hand is still live against the dealer.
func (r *round) dealerNeeded() bool {
	for _, p := range r.players {
		for _, h := range p.Hands {
			switch h.Status {
			case Active, Stood, Doubled:
				return true
			}
		}
	}
	return false
}

func (r *round) result(balance Money) *RoundResult {
	res := &RoundResult{
		RoundID:         r.id,
		Round:           r.number,
		Bet:             r.bet,
		BalanceBefore:   r.balanceBefore,
		BalanceAfter:    balance,
		Net:             balance - r.balanceBefore,
		Hands:           r.outcomes,
		Blackjack:       r.naturalPaid,
		Splits:          r.splits,
		Doubles:         r.doubles,
		SplitInvolved:   r.splitInvolved,
		DoubleInvolved:  r.doubleInvolved,
		BookPlay:        r.book,
		Dealer:          summarize(r.dealer.Hand),
		DealerPlayed:    r.dealerPlayed,
		ForcedReshuffle: r.forced,
	}
	for _, p := range r.players {
		seat := SeatSummary{Name: p.Name, Human: p.Human}
		for _, h := range p.Hands {
			seat.Hands = append(seat.Hands, summarize(h))
		}
		res.Seats = append(res.Seats, seat)
	}
	return res
}

// draw deals the next card, rebuilding the shoe once if it has run dry.
func (e *Engine) draw(r *round, sess *Session) (deck.Card, error) {
	c, err := sess.Shoe.Deal()
	if err == nil {
		return c, nil
	}
	e.logger.Error("Shoe exhausted mid-round, forcing reshuffle", "round", r.number, "decks", sess.Shoe.Decks())
	r.forced = true
	sess.Shoe.Build()
	e.publish(ShoeReshuffleEvent{
		Remaining:   sess.Shoe.Remaining(),
		InitialSize: sess.Shoe.InitialSize(),
		Forced:      true,
		timestamp:   e.clock.Now(),
	})
	c, err = sess.Shoe.Deal()
	if err != nil {
		return deck.Card{}, fmt.Errorf("deal after forced reshuffle: %w", err)
	}
	return c, nil
}

// deal gives every player a card, then the dealer's upcard, then every player
// a second card, then the dealer's hole card.
func (e *Engine) deal(r *round, sess *Session) error {
	for pass := range 2 {
		for _, p := range r.players {
			c, err := e.draw(r, sess)
			if err != nil {
				return err
			}
			h := p.Hands[0]
			h.Add(c)
			e.publish(CardDealtEvent{
				Actor:     p.Name,
				Card:      c,
				Cards:     h.snapshot(),
				Value:     h.Value(),
				timestamp: e.clock.Now(),
			})
		}
		c, err := e.draw(r, sess)
		if err != nil {
			return err
		}
		r.dealer.Hand.Add(c)
		hidden := pass == 1
		event := CardDealtEvent{Actor: DealerName, Card: c, Hidden: hidden, timestamp: e.clock.Now()}
		if !hidden {
			event.Cards = r.dealer.Hand.snapshot()
			event.Value = r.dealer.Hand.Value()
		}
		e.publish(event)
	}
	return nil
}

// resolveHumanNatural pays a human natural immediately. A dealer natural
// turns it into a push. The hand takes no further part in the round.
func (e *Engine) resolveHumanNatural(r *round, sess *Session) {
	h := r.human().Hands[0]
	if !IsNatural(h.Cards) {
		return
	}
	h.Status = Blackjack
	r.naturalPaid = true

	outcome, net := BlackjackWin, BlackjackPayout(h.Bet, e.rules.PayoutNumerator, e.rules.PayoutDenominator)
	if IsNatural(r.dealer.Hand.Cards) {
		outcome, net = Push, 0
	}
	sess.Balance += net
	e.logger.Debug("Human blackjack", "round", r.number, "outcome", outcome, "net", net)

	e.publish(HandResolvedEvent{
		Actor:     HumanName,
		Status:    Blackjack,
		Cards:     h.snapshot(),
		Value:     h.Value(),
		timestamp: e.clock.Now(),
	})
	e.recordOutcome(r, sess, 0, h, outcome, net)
}

// playTurn plays every hand a player holds. Splits append to p.Hands while
// iterating, so the length is re-read on every step.
func (e *Engine) playTurn(ctx context.Context, r *round, sess *Session, p *Player) error {
	first := p.Hands[0]
	if first.Status == Blackjack {
		return nil
	}
	if !p.Human && IsNatural(first.Cards) {
		first.Status = Blackjack
		e.publish(HandResolvedEvent{
			Actor:     p.Name,
			Status:    Blackjack,
			Cards:     first.snapshot(),
			Value:     first.Value(),
			timestamp: e.clock.Now(),
		})
		return nil
	}
	for i := 0; i < len(p.Hands); i++ {
		if err := e.playHand(ctx, r, sess, p, i); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) playHand(ctx context.Context, r *round, sess *Session, p *Player, i int) error {
	h := p.Hands[i]
	rejected := 0
	for h.Status == Active {
		if h.Value() > 21 {
			e.bust(p, i, h)
			return nil
		}

		affordable := !p.Human || sess.CanBet(h.Bet)
		canDouble := len(h.Cards) == 2 && affordable
		canSplit := IsPair(h.Cards) && len(p.Hands) < MaxHands && !h.SplitAce && affordable
		suggested := Recommend(h.Cards, r.dealer.Upcard(), len(p.Hands), canDouble, canSplit)

		action, book := suggested, true
		if p.Human && !sess.Book && !r.book {
			if e.human == nil {
				return ErrNoAgent
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := e.human.Decide(ctx, r.decisionRequest(p, i, sess.Balance, canDouble, canSplit, suggested))
			if err != nil {
				return fmt.Errorf("decide hand %d: %w", i+1, err)
			}
			if d.Book {
				r.book = true
				e.logger.Info("Switching to book play for the rest of the round", "round", r.number)
				continue
			}
			if !allowed(d.Action, canDouble, canSplit) {
				rejected++
				if rejected < maxDecisionAttempts {
					e.logger.Warn("Rejected illegal action", "action", d.Action, "hand", i+1, "attempt", rejected)
					continue
				}
				e.logger.Error("Too many illegal actions, using book play", "action", d.Action, "fallback", suggested, "hand", i+1)
			} else {
				action, book = d.Action, false
			}
		}

		if err := e.apply(r, sess, p, i, action, book); err != nil {
			return err
		}
	}
	return nil
}

func (r *round) decisionRequest(p *Player, i int, balance Money, canDouble, canSplit bool, suggested Action) DecisionRequest {
	req := DecisionRequest{
		Player:       p.Name,
		HandIndex:    i,
		DealerUpcard: r.dealer.Hand.Cards[0],
		Balance:      balance,
		CanDouble:    canDouble,
		CanSplit:     canSplit,
		Suggested:    suggested,
	}
	for _, h := range p.Hands {
		req.Hands = append(req.Hands, HandView{
			Cards:  h.snapshot(),
			Value:  h.Value(),
			Soft:   h.IsSoft(),
			Bet:    h.Bet,
			Status: h.Status,
		})
	}
	return req
}

func (e *Engine) apply(r *round, sess *Session, p *Player, i int, action Action, book bool) error {
	h := p.Hands[i]
	switch action {
	case Stand:
		h.record(Stand)
		h.Status = Stood

	case Hit:
		c, err := e.draw(r, sess)
		if err != nil {
			return err
		}
		h.Add(c)
		h.record(Hit)

	case Double:
		c, err := e.draw(r, sess)
		if err != nil {
			return err
		}
		if p.Human {
			h.Bet *= 2
			r.doubles++
			r.doubleInvolved = true
		}
		h.Add(c)
		h.record(Double)
		h.Status = Doubled

	case Split:
		return e.split(r, sess, p, i, book)

	default:
		return fmt.Errorf("unknown action %d", action)
	}

	e.publishAction(p, i, h, action, book)
	if h.Value() > 21 {
		e.bust(p, i, h)
	}
	return nil
}

// split moves the second card of hand i into a new hand at i+1 and deals one
// card to each, the original first. Split Aces stand on their two cards.
func (e *Engine) split(r *round, sess *Session, p *Player, i int, book bool) error {
	h := p.Hands[i]
	splitAce := h.Cards[0].IsAce()
	moved := h.Cards[1]
	h.Cards = h.Cards[:1]
	h.SplitAce = splitAce
	h.FromSplit = true
	h.record(Split)

	sibling := NewHand(h.Bet, moved)
	sibling.SplitAce = splitAce
	sibling.FromSplit = true
	sibling.record(Split)
	p.insertHand(i, sibling)

	if p.Human {
		r.splits++
		r.splitInvolved = true
	}

	for _, hand := range []*Hand{h, sibling} {
		c, err := e.draw(r, sess)
		if err != nil {
			return err
		}
		hand.Add(c)
		if splitAce {
			hand.Status = Stood
		}
	}

	e.publishAction(p, i, h, Split, book)
	e.publishAction(p, i+1, sibling, Split, book)
	return nil
}

func (e *Engine) bust(p *Player, i int, h *Hand) {
	h.Status = Busted
	e.publish(HandResolvedEvent{
		Actor:     p.Name,
		HandIndex: i,
		Status:    Busted,
		Cards:     h.snapshot(),
		Value:     h.Value(),
		timestamp: e.clock.Now(),
	})
}

func (e *Engine) publishAction(p *Player, i int, h *Hand, action Action, book bool) {
	e.publish(PlayerActionEvent{
		Actor:     p.Name,
		Human:     p.Human,
		HandIndex: i,
		Action:    action,
		Book:      book,
		Cards:     h.snapshot(),
		Value:     h.Value(),
		Bet:       h.Bet,
		Status:    h.Status,
		timestamp: e.clock.Now(),
	})
}

// playDealer reveals the hole card and draws while below 17.
func (e *Engine) playDealer(r *round, sess *Session) error {
	d := r.dealer
	r.dealerPlayed = true
	e.publish(DealerTurnEvent{Cards: d.Hand.snapshot(), Value: d.Hand.Value(), Status: Active, timestamp: e.clock.Now()})

	for d.mustHit() {
		c, err := e.draw(r, sess)
		if err != nil {
			return err
		}
		d.Hand.Add(c)
		e.publish(CardDealtEvent{
			Actor:     DealerName,
			Card:      c,
			Cards:     d.Hand.snapshot(),
			Value:     d.Hand.Value(),
			timestamp: e.clock.Now(),
		})
	}

	if d.Hand.Value() > 21 {
		d.Hand.Status = Busted
	} else {
		d.Hand.Status = Stood
	}
	e.logger.Debug("Dealer finished", "round", r.number, "cards", FormatCards(d.Hand.Cards), "value", d.Hand.Value(), "status", d.Hand.Status)
	e.publish(DealerTurnEvent{Cards: d.Hand.snapshot(), Value: d.Hand.Value(), Status: d.Hand.Status, Final: true, timestamp: e.clock.Now()})
	return nil
}

// settle pays every human hand not already resolved as a natural.
func (e *Engine) settle(r *round, sess *Session) {
	dealer := r.dealer.Hand
	for i, h := range r.human().Hands {
		if h.Status == Blackjack {
			continue
		}
		outcome, net := Settle(h.Value(), h.Bet, h.Status, dealer.Value(), dealer.Status)
		sess.Balance += net
		e.recordOutcome(r, sess, i, h, outcome, net)
	}
}

func (e *Engine) recordOutcome(r *round, sess *Session, i int, h *Hand, outcome Outcome, net Money) {
	r.outcomes = append(r.outcomes, HandOutcome{
		Index:     i,
		Cards:     h.snapshot(),
		Value:     h.Value(),
		Bet:       h.Bet,
		Status:    h.Status,
		Outcome:   outcome,
		Net:       net,
		FromSplit: h.FromSplit,
		Doubled:   doubled(h),
	})
	e.publish(SettlementEvent{
		HandIndex:   i,
		Cards:       h.snapshot(),
		Value:       h.Value(),
		DealerValue: r.dealer.Hand.Value(),
		Bet:         h.Bet,
		Outcome:     outcome,
		Net:         net,
		Balance:     sess.Balance,
		timestamp:   e.clock.Now(),
	})
}
