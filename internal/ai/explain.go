package ai

import (
	"fmt"

	"github.com/brainit-consulting/chess-sub002/internal/board"
)

// ExplainOptions is explain_move's small options set (spec.md §6); the host
// passes play_for_win/recent_positions through unchanged so a future prose
// generator (out of scope here) can describe why a repetition-avoiding move
// was chosen, but this core only ever reports the facts, never prose.
type ExplainOptions struct {
	PlayForWin      bool
	RecentPositions []uint64
}

// Explanation is the pure data contract of spec.md §6: {title, move_label,
// bullets, summary, tags}. Building prose from this is the out-of-scope
// external move-explanation text generator; this only reports rules-engine
// facts about the move.
type Explanation struct {
	Title     string
	MoveLabel string
	Bullets   []string
	Summary   string
	Tags      []string
}

// ExplainMove is a pure function of its inputs over the rules-engine's
// outputs only (spec.md §8's purity property) — no search is run.
func ExplainMove(gs *board.GameState, m board.Move, opts ExplainOptions) Explanation {
	var bullets []string
	var tags []string

	isCapture := m.IsCapture(gs.Board)
	mover := gs.Board.PieceAt(m.From())

	if isCapture {
		victimSq := m.To()
		if m.IsEnPassant() {
			victimSq = board.NewSquare(m.To().File(), m.From().Rank())
		}
		if victim := gs.Board.PieceAt(victimSq); victim != nil {
			bullets = append(bullets, fmt.Sprintf("captures the %s on %s", pieceName(victim.Type), victimSq))
			tags = append(tags, "capture")
		}
	}
	if m.IsEnPassant() {
		bullets = append(bullets, "captures en passant")
		tags = append(tags, "en-passant")
	}
	if m.IsCastling() {
		side := "kingside"
		if m.To().File() < m.From().File() {
			side = "queenside"
		}
		bullets = append(bullets, fmt.Sprintf("castles %s", side))
		tags = append(tags, "castling")
	}
	if m.IsPromotion() {
		bullets = append(bullets, fmt.Sprintf("promotes to %s", pieceName(m.Promotion())))
		tags = append(tags, "promotion")
	}

	undo := gs.MakeMove(m)
	givesCheck := gs.InCheck()
	status := gs.GameStatus()
	gs.UnmakeMove(m, undo)

	switch status {
	case board.StatusCheckmate:
		bullets = append(bullets, "delivers checkmate")
		tags = append(tags, "checkmate")
	case board.StatusStalemate:
		bullets = append(bullets, "results in stalemate")
		tags = append(tags, "stalemate")
	default:
		if givesCheck {
			bullets = append(bullets, "gives check")
			tags = append(tags, "check")
		}
	}

	if opts.PlayForWin && isRecentKeyAfter(gs, m, opts.RecentPositions) {
		bullets = append(bullets, "returns to a recently seen position")
		tags = append(tags, "repetition")
	}

	title := "Move"
	if mover != nil {
		title = fmt.Sprintf("%s %s", pieceName(mover.Type), m)
	}

	summary := bullets0(bullets)

	return Explanation{
		Title:     title,
		MoveLabel: m.String(),
		Bullets:   bullets,
		Summary:   summary,
		Tags:      tags,
	}
}

func bullets0(bullets []string) string {
	if len(bullets) == 0 {
		return "a quiet developing move"
	}
	return bullets[0]
}

func isRecentKeyAfter(gs *board.GameState, m board.Move, recent []uint64) bool {
	if len(recent) == 0 {
		return false
	}
	undo := gs.MakeMove(m)
	key := gs.Hash
	gs.UnmakeMove(m, undo)
	for _, k := range recent {
		if k == key {
			return true
		}
	}
	return false
}

func pieceName(pt board.PieceType) string {
	switch pt {
	case board.Pawn:
		return "pawn"
	case board.Knight:
		return "knight"
	case board.Bishop:
		return "bishop"
	case board.Rook:
		return "rook"
	case board.Queen:
		return "queen"
	case board.King:
		return "king"
	}
	return "piece"
}
