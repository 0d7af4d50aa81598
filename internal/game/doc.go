// Package game implements the blackjack round engine.
//
// The main type is Engine, which plays one round at a time against an
// explicit Session holding the balance, the shoe and the round counter.
//
// # Basic Usage
//
//	rules := game.DefaultRules()
//	sess := game.NewSession(rules, randutil.New(42), true)
//	engine := game.NewEngine(rules, logger)
//	result, err := engine.PlayRound(ctx, sess)
//
// A session with Book set plays the human seat by the strategy advisor. For
// manual play, supply a Bettor and an ActionSource:
//
//	engine := game.NewEngine(rules, logger,
//	    game.WithBettor(bettor),
//	    game.WithActionSource(prompter))
//
// # Deterministic Testing
//
// Use deck.NewStackedShoe to deal a fixed sequence of cards. Cards are dealt
// one to each seat, the dealer's upcard, one more to each seat, then the hole
// card.
//
// # Architecture
//
//   - Value, IsSoft, IsPair: hand evaluation
//   - Recommend: basic strategy tables
//   - Settle, BlackjackPayout: settlement arithmetic
//   - Engine: the round state machine, publishing GameEvents on its EventBus
package game
