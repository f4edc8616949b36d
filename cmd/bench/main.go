// Command bench plays self-play games between this module's AI core and an
// external UCI engine process, reporting win/loss/draw tallies. It is the
// "bench script talks UCI to an external engine, not to this core" boundary
// of spec.md §9: the core never embeds UCI, it only consumes FEN strings and
// UCI-style move tokens across this process boundary.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/brainit-consulting/chess-sub002/internal/ai"
	"github.com/brainit-consulting/chess-sub002/internal/board"
)

// UciClient drives one external engine process through the UCI text
// protocol, grounded on the line-oriented bufio.Scanner shape every UCI
// handler in the corpus uses, run in reverse: here we are the client asking
// questions rather than the server answering them.
type UciClient struct {
	cmd *exec.Cmd
	in  io.WriteCloser
	out *bufio.Scanner
}

// NewUciClient launches path as a subprocess and leaves it ready for Init.
func NewUciClient(path string, args ...string) (*UciClient, error) {
	cmd := exec.Command(path, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("bench: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("bench: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("bench: start %s: %w", path, err)
	}
	return &UciClient{cmd: cmd, in: stdin, out: bufio.NewScanner(stdout)}, nil
}

func (c *UciClient) send(line string) error {
	_, err := io.WriteString(c.in, line+"\n")
	return err
}

func (c *UciClient) readUntil(prefix string) (string, error) {
	for c.out.Scan() {
		line := c.out.Text()
		if strings.HasPrefix(line, prefix) {
			return line, nil
		}
	}
	if err := c.out.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("bench: engine process closed its output before %q", prefix)
}

// Init performs the uci/isready handshake.
func (c *UciClient) Init() error {
	if err := c.send("uci"); err != nil {
		return err
	}
	if _, err := c.readUntil("uciok"); err != nil {
		return err
	}
	if err := c.send("isready"); err != nil {
		return err
	}
	_, err := c.readUntil("readyok")
	return err
}

// BestMove asks the engine to search fen for moveTimeMs and returns its
// chosen move in UCI notation.
func (c *UciClient) BestMove(fen string, moveTimeMs int) (string, error) {
	if err := c.send("position fen " + fen); err != nil {
		return "", err
	}
	if err := c.send(fmt.Sprintf("go movetime %d", moveTimeMs)); err != nil {
		return "", err
	}
	line, err := c.readUntil("bestmove")
	if err != nil {
		return "", err
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", fmt.Errorf("bench: malformed bestmove line %q", line)
	}
	return fields[1], nil
}

// Close sends quit and waits for the process to exit.
func (c *UciClient) Close() error {
	_ = c.send("quit")
	_ = c.in.Close()
	return c.cmd.Wait()
}

func main() {
	enginePath := flag.String("engine", "", "path to an external UCI engine binary")
	games := flag.Int("games", 10, "number of games to play")
	moveTimeMs := flag.Int("movetime", 500, "external engine's time budget per move, ms")
	difficulty := flag.String("difficulty", "hard", "this module's difficulty preset: easy|medium|hard|max")
	maxPlies := flag.Int("maxplies", 300, "per-game ply cap before the game is scored a draw")
	flag.Parse()

	if *enginePath == "" {
		log.Fatal("bench: -engine is required")
	}

	client, err := NewUciClient(*enginePath)
	if err != nil {
		log.Fatalf("bench: %v", err)
	}
	defer client.Close()
	if err := client.Init(); err != nil {
		log.Fatalf("bench: handshake: %v", err)
	}

	wins, losses, draws := 0, 0, 0
	for g := 0; g < *games; g++ {
		ourColor := board.White
		if g%2 == 1 {
			ourColor = board.Black
		}
		result := playGame(client, ai.Difficulty(*difficulty), ourColor, *moveTimeMs, *maxPlies)
		switch {
		case result > 0:
			wins++
		case result < 0:
			losses++
		default:
			draws++
		}
		log.Printf("game %d: ourColor=%v result=%d (w=%d l=%d d=%d)", g+1, ourColor, result, wins, losses, draws)
	}

	fmt.Printf("played %d games: %d wins, %d losses, %d draws\n", *games, wins, losses, draws)
}

// playGame runs one game to a terminal status or the ply cap, returning +1
// if ourColor won, -1 if it lost, 0 for a draw or an unfinished game.
func playGame(client *UciClient, difficulty ai.Difficulty, ourColor board.Color, moveTimeMs, maxPlies int) int {
	gs := board.NewGameState()
	engine := ai.NewEngine(32, "")

	for ply := 0; ply < maxPlies; ply++ {
		status := gs.GameStatus()
		if status == board.StatusCheckmate {
			if gs.Winner() == ourColor {
				return 1
			}
			return -1
		}
		if status.IsDraw() || status == board.StatusStalemate {
			return 0
		}

		var moveStr string
		if gs.SideToMove == ourColor {
			result, ok := engine.ChooseMove(gs, ai.Options{Difficulty: difficulty})
			if !ok {
				return 0
			}
			moveStr = result.Move.String()
		} else {
			var err error
			moveStr, err = client.BestMove(gs.FEN(), moveTimeMs)
			if err != nil {
				log.Printf("bench: external engine error: %v", err)
				return 0
			}
		}

		m, err := board.ParseMove(moveStr, gs)
		if err != nil {
			log.Printf("bench: move parse failed for %q: %v", moveStr, err)
			return 0
		}
		if err := board.ApplyMove(gs, m); err != nil {
			log.Printf("bench: illegal move %q: %v", moveStr, err)
			return 0
		}
	}
	return 0
}
