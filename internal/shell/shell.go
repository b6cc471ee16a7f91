// Package shell implements a line-oriented command interpreter around a
// board.Position.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hailam/chesstoolkit/internal/board"
	"github.com/hailam/chesstoolkit/internal/storage"
)

var errQuit = errors.New("quit")

// Shell reads commands from an input and writes results to an output.
type Shell struct {
	in  io.Reader
	out io.Writer

	position *board.Position
	cancel   func()

	store   *storage.Storage
	prefs   *storage.Preferences
	session string
	result  storage.SessionResult

	style    board.NotationStyle
	printer  *message.Printer
	errColor *color.Color
	okColor  *color.Color
}

// Option configures a Shell.
type Option func(*Shell)

// WithStorage enables the perft cache, named positions and preferences.
func WithStorage(st *storage.Storage) Option {
	return func(s *Shell) {
		s.store = st
	}
}

// WithPosition starts the shell on p instead of the initial position.
func WithPosition(p *board.Position) Option {
	return func(s *Shell) {
		if p != nil {
			s.position = p
		}
	}
}

// WithColor turns colored output on or off. By default color is used when
// the process writes to a terminal.
func WithColor(enabled bool) Option {
	return func(s *Shell) {
		if enabled {
			s.errColor.EnableColor()
			s.okColor.EnableColor()
		} else {
			s.errColor.DisableColor()
			s.okColor.DisableColor()
		}
	}
}

// New creates a shell reading from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		in:       in,
		out:      out,
		position: board.NewPosition(),
		prefs:    storage.DefaultPreferences(),
		session:  uuid.NewString(),
		style:    board.Short,
		printer:  message.NewPrinter(language.English),
		errColor: color.New(color.FgRed),
		okColor:  color.New(color.FgGreen),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store != nil {
		if prefs, err := s.store.LoadPreferences(); err == nil {
			s.prefs = prefs
		} else {
			s.errorf("load preferences: %v", err)
		}
	}
	s.applyPreferences()
	s.setPosition(s.position)
	return s
}

// Session returns the id of this shell session.
func (s *Shell) Session() string {
	return s.session
}

// Position returns the current position.
func (s *Shell) Position() *board.Position {
	return s.position
}

// Run processes commands until the input ends or "quit" is read.
func (s *Shell) Run() error {
	scanner := bufio.NewScanner(s.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.Execute(line); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			s.errorf("%v", err)
		}
	}

	if s.store != nil {
		if err := s.store.RecordSession(s.result); err != nil {
			s.errorf("record session: %v", err)
		}
	}
	return scanner.Err()
}

// Execute runs a single command line.
func (s *Shell) Execute(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		s.handleHelp()
	case "new":
		s.setPosition(board.NewPosition())
	case "position":
		return s.handlePosition(args)
	case "move", "m":
		return s.handleMove(args)
	case "undo":
		return s.handleUndo(args)
	case "moves":
		s.handleMoves(false)
	case "captures":
		s.handleMoves(true)
	case "attacks":
		return s.handleAttacks(args)
	case "fen":
		fmt.Fprintln(s.out, s.position.ToFEN())
	case "d":
		fmt.Fprint(s.out, s.position.String())
	case "check":
		s.handleCheck()
	case "history":
		s.handleHistory()
	case "perft":
		return s.handlePerft(args)
	case "divide":
		return s.handleDivide(args)
	case "stats":
		return s.handleStats(args)
	case "promote":
		return s.handlePromote(args)
	case "notation":
		return s.handleNotation(args)
	case "show":
		return s.handleShow(args)
	case "save":
		return s.handleSave(args)
	case "load":
		return s.handleLoad(args)
	case "list":
		return s.handleList()
	case "delete":
		return s.handleDelete(args)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

func (s *Shell) errorf(format string, args ...any) {
	s.errColor.Fprintf(s.out, "error: "+format+"\n", args...)
}

// setPosition replaces the current position and moves the move observer
// over to it.
func (s *Shell) setPosition(p *board.Position) {
	if s.cancel != nil {
		s.cancel()
	}
	s.position = p
	s.cancel = p.Subscribe(board.MoveObserverFunc(s.moveMade))
	s.applyPreferences()
}

func (s *Shell) moveMade(_ *board.Position, m board.Move) {
	s.result.Moves++
	dots := "."
	if m.Piece.Color() == board.Black {
		dots = "..."
	}
	s.okColor.Fprintf(s.out, "%d%s %s\n", m.MoveNumber, dots, m.Notation(s.style))
	if s.prefs.ShowBoard {
		fmt.Fprint(s.out, s.position.String())
	}
}

func (s *Shell) applyPreferences() {
	if s.position == nil || s.prefs == nil {
		return
	}
	if pt, ok := promotionType(s.prefs.PromotionPiece); ok {
		s.position.SetPromotionPiece(board.NewPiece(pt, board.White))
		s.position.SetPromotionPiece(board.NewPiece(pt, board.Black))
	}
	if s.prefs.Notation == "long" {
		s.style = board.Long
	} else {
		s.style = board.Short
	}
}

func (s *Shell) savePreferences() error {
	if s.store == nil {
		return nil
	}
	return s.store.SavePreferences(s.prefs)
}

func promotionType(letter string) (board.PieceType, bool) {
	switch strings.ToLower(letter) {
	case "q", "queen":
		return board.Queen, true
	case "r", "rook":
		return board.Rook, true
	case "b", "bishop":
		return board.Bishop, true
	case "n", "knight":
		return board.Knight, true
	default:
		return board.NoPieceType, false
	}
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (s *Shell) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: position startpos|fen <fen> [moves ...]")
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		var err error
		pos, err = board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			return err
		}
		if err := pos.Validate(); err != nil {
			s.errorf("warning: %v", err)
		}
	default:
		return fmt.Errorf("unknown position type: %s", args[0])
	}
	s.setPosition(pos)

	if movesAt < len(args) {
		return s.handleMove(args[movesAt+1:])
	}
	return nil
}

// handleMove plays moves given in coordinate form (e2e4, e7e8n) or SAN.
func (s *Shell) handleMove(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: move <move> [<move> ...]")
	}
	for _, arg := range args {
		if err := s.playMove(arg); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) playMove(arg string) error {
	p := s.position

	from, to, promo, err := board.ParseCoordinates(arg)
	if err == nil {
		if promo == board.NoPieceType {
			if !p.MakeMove(from, to, true, true) {
				return fmt.Errorf("illegal move: %s", arg)
			}
			return nil
		}
		m := board.BuildMove(p, from, to)
		m.Promotion = board.NewPiece(promo, p.SideToMove())
		if !p.PlayMove(m, true) {
			return fmt.Errorf("illegal move: %s", arg)
		}
		return nil
	}

	m, err := board.ParseSAN(arg, p)
	if err != nil {
		return fmt.Errorf("illegal move: %s", arg)
	}
	if !p.PlayMove(m, true) {
		return fmt.Errorf("illegal move: %s", arg)
	}
	return nil
}

func (s *Shell) handleUndo(args []string) error {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
			return fmt.Errorf("invalid count: %s", args[0])
		}
	}
	played := len(s.position.History())
	switch {
	case played == 0:
		return errors.New("no move to take back")
	case n > played:
		return fmt.Errorf("cannot take back %d moves, only %d played", n, played)
	}
	for i := 0; i < n; i++ {
		s.position.TakeBackMove()
	}
	return nil
}

func (s *Shell) handleMoves(capturesOnly bool) {
	p := s.position
	g := p.MoveGenerator()

	var moves board.MoveList
	if capturesOnly {
		moves = g.GenerateCaptures(p.SideToMove(), true)
	} else {
		moves = g.GenerateMoves(p.SideToMove(), true)
	}
	moves = g.PromotionVariants(moves)

	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = p.SAN(m)
	}
	fmt.Fprintf(s.out, "%d: %s\n", len(names), strings.Join(names, " "))
}

// handleAttacks lists the pieces of a side attacking a square. The side
// defaults to the one not to move.
func (s *Shell) handleAttacks(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: attacks <square> [white|black]")
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	by := s.position.SideToMove().Other()
	if len(args) > 1 {
		switch args[1] {
		case "white", "w":
			by = board.White
		case "black", "b":
			by = board.Black
		default:
			return fmt.Errorf("unknown side: %s", args[1])
		}
	}

	moves := s.position.MoveGenerator().AttackingMoves(sq, by)
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.Notation(board.Long)
	}
	fmt.Fprintf(s.out, "%d: %s\n", len(names), strings.Join(names, " "))
	return nil
}

func (s *Shell) handleCheck() {
	p := s.position
	switch {
	case p.IsCheckmate():
		fmt.Fprintf(s.out, "checkmate, %s wins\n", p.SideToMove().Other())
	case p.IsStalemate():
		fmt.Fprintln(s.out, "stalemate")
	case p.IsInsufficientMaterial():
		fmt.Fprintln(s.out, "draw by insufficient material")
	case p.InCheck():
		fmt.Fprintf(s.out, "%s is in check\n", p.SideToMove())
	default:
		fmt.Fprintln(s.out, "no check")
	}
}

func (s *Shell) handleHistory() {
	var sb strings.Builder
	for i, m := range s.position.History() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if m.Piece.Color() == board.White {
			fmt.Fprintf(&sb, "%d. ", m.MoveNumber)
		} else if i == 0 {
			fmt.Fprintf(&sb, "%d... ", m.MoveNumber)
		}
		sb.WriteString(m.Notation(s.style))
	}
	fmt.Fprintln(s.out, sb.String())
}

func parseDepth(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		return 0, fmt.Errorf("invalid depth: %s", args[0])
	}
	return depth, nil
}

func (s *Shell) handlePerft(args []string) error {
	depth, err := parseDepth(args, 3)
	if err != nil {
		return err
	}
	fen := s.position.ToFEN()

	if s.store != nil {
		rec, found, err := s.store.LoadPerft(fen, depth)
		if err != nil {
			return err
		}
		if found {
			s.result.CacheHits++
			s.printer.Fprintf(s.out, "Nodes: %d (cached)\n", rec.Nodes)
			return nil
		}
	}

	start := time.Now()
	nodes := board.Perft(s.position, depth)
	elapsed := time.Since(start)

	s.result.PerftRuns++
	s.result.PerftNodes += nodes
	s.result.PerftTime += elapsed

	s.printer.Fprintf(s.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(s.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		s.printer.Fprintf(s.out, "NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}

	if s.store != nil {
		return s.store.SavePerft(storage.PerftRecord{FEN: fen, Depth: depth, Nodes: nodes, Elapsed: elapsed})
	}
	return nil
}

func (s *Shell) handleDivide(args []string) error {
	depth, err := parseDepth(args, 2)
	if err != nil {
		return err
	}
	var total uint64
	for _, e := range board.Divide(s.position, depth) {
		s.printer.Fprintf(s.out, "%s: %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	s.printer.Fprintf(s.out, "Total: %d\n", total)
	return nil
}

func (s *Shell) handleStats(args []string) error {
	depth, err := parseDepth(args, 2)
	if err != nil {
		return err
	}
	st := board.PerftDetailed(s.position, depth)
	s.printer.Fprintf(s.out, "d=%d nodes=%d cap=%d enp=%d cas=%d pro=%d chk=%d\n",
		depth, st.Nodes, st.Captures, st.EnPassant, st.Castles, st.Promotions, st.Checks)
	return nil
}

func (s *Shell) handlePromote(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "promotion: %s\n", s.position.PromotionPiece(s.position.SideToMove()).Symbol())
		return nil
	}
	if _, ok := promotionType(args[0]); !ok {
		return fmt.Errorf("cannot promote to %s", args[0])
	}
	s.prefs.PromotionPiece = strings.ToLower(args[0][:1])
	s.applyPreferences()
	return s.savePreferences()
}

func (s *Shell) handleNotation(args []string) error {
	if len(args) == 0 || (args[0] != "short" && args[0] != "long") {
		return errors.New("usage: notation short|long")
	}
	s.prefs.Notation = args[0]
	s.applyPreferences()
	return s.savePreferences()
}

func (s *Shell) handleShow(args []string) error {
	if len(args) == 0 || (args[0] != "on" && args[0] != "off") {
		return errors.New("usage: show on|off")
	}
	s.prefs.ShowBoard = args[0] == "on"
	return s.savePreferences()
}

func (s *Shell) needStore() error {
	if s.store == nil {
		return errors.New("no storage configured")
	}
	return nil
}

func (s *Shell) handleSave(args []string) error {
	if err := s.needStore(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: save <name>")
	}
	return s.store.SavePosition(storage.SavedPosition{
		Name:    args[0],
		FEN:     s.position.ToFEN(),
		Session: s.session,
	})
}

func (s *Shell) handleLoad(args []string) error {
	if err := s.needStore(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: load <name>")
	}
	saved, err := s.store.LoadPosition(args[0])
	if err != nil {
		return err
	}
	pos, err := board.ParseFEN(saved.FEN)
	if err != nil {
		return err
	}
	s.setPosition(pos)
	return nil
}

func (s *Shell) handleList() error {
	if err := s.needStore(); err != nil {
		return err
	}
	list, err := s.store.ListPositions()
	if err != nil {
		return err
	}
	for _, p := range list {
		fmt.Fprintf(s.out, "%s: %s\n", p.Name, p.FEN)
	}
	return nil
}

func (s *Shell) handleDelete(args []string) error {
	if err := s.needStore(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: delete <name>")
	}
	return s.store.DeletePosition(args[0])
}

func (s *Shell) handleHelp() {
	fmt.Fprint(s.out, `commands:
  new                               start position
  position startpos|fen <fen> [moves ...]
  move <move> ...                   e2e4, e7e8n or SAN
  undo [n]                          take back moves
  moves | captures                  legal moves of the side to move
  attacks <square> [white|black]    pieces attacking a square
  fen | d | check | history
  perft [depth] | divide [depth] | stats [depth]
  promote [q|r|b|n]                 default promotion piece
  notation short|long
  show on|off                       print the board after every move
  save <name> | load <name> | list | delete <name>
  quit
`)
}
