package game

// HumanName is the display name of the human-controlled seat.
const HumanName = "You"

// Player is one seat at the table. Hands grow as the player splits.
type Player struct {
	Seat  int
	Name  string
	Human bool
	Hands []*Hand
}

// newPlayer seats a player holding one empty hand.
func newPlayer(seat int, name string, human bool, bet Money) *Player {
	return &Player{
		Seat:  seat,
		Name:  name,
		Human: human,
		Hands: []*Hand{NewHand(bet)},
	}
}

// insertHand places h directly after index i.
func (p *Player) insertHand(i int, h *Hand) {
	p.Hands = append(p.Hands, nil)
	copy(p.Hands[i+2:], p.Hands[i+1:])
	p.Hands[i+1] = h
}

// Dealer holds the house hand. It never splits or doubles.
type Dealer struct {
	Hand *Hand
}

// Upcard returns the value of the dealer's first card (Ace = 11).
func (d *Dealer) Upcard() int {
	if len(d.Hand.Cards) == 0 {
		return 0
	}
	return d.Hand.Cards[0].Value()
}

// DealerStandsOn is the total at which the dealer stops drawing, soft or hard.
const DealerStandsOn = 17

// mustHit reports whether the dealer draws another card.
func (d *Dealer) mustHit() bool {
	return d.Hand.Value() < DealerStandsOn
}
