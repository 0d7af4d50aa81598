package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command. Empty values keep whatever the
// config file and environment provide.
type Globals struct {
	Config  string `short:"c" default:"blackjack.hcl" help:"Path to an HCL config file (missing file uses defaults)"`
	LogDir  string `help:"Directory for results.log and balance history"`
	Ledger  string `help:"SQLite ledger to append every round to"`
	Seed    int64  `help:"Shuffle seed (0 derives one from the clock)"`
	Debug   bool   `help:"Enable debug logging"`
	NoColor bool   `help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play blackjack at the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Play unattended sessions by the book and report statistics"`
	Chart    ChartCmd         `cmd:"" help:"Print the basic strategy chart"`
	History  HistoryCmd       `cmd:"" help:"List the rounds a run recorded in the ledger"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-player blackjack against a dealer and AI seats"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
