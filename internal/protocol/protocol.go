// Package protocol implements the line-oriented console protocol of the
// engine: position setup, search, and debug commands over stdin/stdout.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Zoidburgh/hexuki/internal/board"
	"github.com/Zoidburgh/hexuki/internal/engine"
)

// Protocol drives one engine session over a reader/writer pair.
type Protocol struct {
	position *board.Position
	config   engine.Config

	in  io.Reader
	out io.Writer
}

// New creates a protocol handler bound to stdin-style input and output.
func New(in io.Reader, out io.Writer, cfg engine.Config) *Protocol {
	return &Protocol{
		position: board.NewPosition(),
		config:   cfg,
		in:       in,
		out:      out,
	}
}

// Run reads commands until EOF or "quit".
//
// Commands:
//
//	position start | position <position-string>
//	go [depth N] [movetime MS]
//	play h<hex>:<tile>
//	moves
//	eval
//	save
//	show
//	newgame
//	quit
func (p *Protocol) Run() error {
	scanner := bufio.NewScanner(p.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "position":
			p.handlePosition(args)
		case "go":
			p.handleGo(args)
		case "play":
			p.handlePlay(args)
		case "moves":
			p.handleMoves()
		case "eval":
			fmt.Fprintf(p.out, "eval %d\n", engine.Evaluate(p.position))
		case "save":
			fmt.Fprintln(p.out, p.position.SavePosition())
		case "show":
			fmt.Fprintln(p.out, p.position.String())
		case "newgame":
			p.position.Reset()
		case "quit":
			return nil
		default:
			fmt.Fprintf(p.out, "unknown command: %s\n", cmd)
		}
	}
	return scanner.Err()
}

func (p *Protocol) handlePosition(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, "usage: position start | position <string>")
		return
	}
	if args[0] == "start" {
		p.position.Reset()
		return
	}
	// Position strings contain no spaces; rejoin defensively anyway.
	p.position.LoadPosition(strings.Join(args, ""))
}

func (p *Protocol) handleGo(args []string) {
	cfg := p.config

	for i := 0; i+1 < len(args); i += 2 {
		switch args[i] {
		case "depth":
			if n, err := strconv.Atoi(args[i+1]); err == nil {
				cfg.MaxDepth = n
			}
		case "movetime":
			if ms, err := strconv.Atoi(args[i+1]); err == nil {
				cfg.TimeLimit = time.Duration(ms) * time.Millisecond
			}
		}
	}

	result := engine.FindBestMove(p.position, cfg)
	if result.BestMove == board.NoMove {
		fmt.Fprintf(p.out, "bestmove none score %d\n", result.Score)
		return
	}
	fmt.Fprintf(p.out, "bestmove %s score %d depth %d nodes %d time %dms timeout %v\n",
		result.BestMove, result.Score, result.Depth, result.Nodes,
		result.Time.Milliseconds(), result.Timeout)
}

func (p *Protocol) handlePlay(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(p.out, "usage: play h<hex>:<tile>")
		return
	}
	m, err := board.ParseMove(args[0])
	if err != nil {
		fmt.Fprintf(p.out, "error: %v\n", err)
		return
	}
	if !p.position.IsValidMove(m) {
		fmt.Fprintf(p.out, "illegal move: %s\n", m)
		return
	}
	p.position.MakeMove(m)
	if p.position.IsGameOver() {
		fmt.Fprintf(p.out, "game over, scores P1=%d P2=%d\n",
			p.position.Score(board.P1), p.position.Score(board.P2))
	}
}

func (p *Protocol) handleMoves() {
	moves := p.position.ValidMoves()
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = m.String()
	}
	fmt.Fprintf(p.out, "%d moves: %s\n", len(moves), strings.Join(strs, " "))
}
