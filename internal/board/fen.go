package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN builds a GameState from Forsyth-Edwards Notation.
func ParseFEN(fen string) (*GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("board: invalid FEN %q: need at least 4 fields", fen)
	}

	b := newEmptyBoard()
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("board: invalid FEN %q: need 8 ranks, got %d", fen, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, c := range []byte(rankStr) {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			pt, color, ok := PieceFromChar(c)
			if !ok {
				return nil, fmt.Errorf("board: invalid FEN %q: bad piece char %q", fen, c)
			}
			if file > 7 {
				return nil, fmt.Errorf("board: invalid FEN %q: rank %d overflows", fen, rank+1)
			}
			b.place(pt, color, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("board: invalid FEN %q: rank %d has %d files", fen, rank+1, file)
		}
	}

	var side Color
	switch fields[1] {
	case "w":
		side = White
	case "b":
		side = Black
	default:
		return nil, fmt.Errorf("board: invalid FEN %q: bad side to move %q", fen, fields[1])
	}

	var rights CastlingRights
	if fields[2] != "-" {
		for _, c := range []byte(fields[2]) {
			switch c {
			case 'K':
				rights |= WhiteKingSide
			case 'Q':
				rights |= WhiteQueenSide
			case 'k':
				rights |= BlackKingSide
			case 'q':
				rights |= BlackQueenSide
			default:
				return nil, fmt.Errorf("board: invalid FEN %q: bad castling field %q", fen, fields[2])
			}
		}
	}
	// Every piece placed above starts with HasMoved false; FEN carries no
	// move history, so castling eligibility rests on CastlingRights alone.

	epSquare := NoSquare
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("board: invalid FEN %q: bad en passant field: %w", fen, err)
		}
		epSquare = sq
	}

	halfMove := 0
	fullMove := 1
	if len(fields) >= 5 {
		n, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("board: invalid FEN %q: bad half-move clock: %w", fen, err)
		}
		halfMove = n
	}
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil {
			return nil, fmt.Errorf("board: invalid FEN %q: bad full-move number: %w", fen, err)
		}
		fullMove = n
	}

	gs := &GameState{
		Board:            b,
		SideToMove:       side,
		CastlingRights:   rights,
		EnPassant:        epSquare,
		HalfMoveClock:    halfMove,
		FullMoveNumber:   fullMove,
		LastMove:         NoMove,
		LastMoveByColor:  [2]Move{NoMove, NoMove},
		RepetitionCounts: make(map[uint64]int, 64),
	}
	gs.Hash = computeHash(gs)
	gs.RepetitionCounts[gs.Hash] = 1
	return gs, nil
}

// computeHash derives the Zobrist hash of gs from scratch; used only at
// construction time, since play thereafter maintains the hash incrementally.
func computeHash(gs *GameState) uint64 {
	var h uint64
	for sq := A1; sq <= H8; sq++ {
		if p := gs.Board.PieceAt(sq); p != nil {
			h ^= ZobristPiece(p.Color, p.Type, sq)
		}
	}
	h ^= ZobristCastling(gs.CastlingRights)
	if gs.EnPassant != NoSquare {
		h ^= ZobristEnPassant(gs.EnPassant.File())
	}
	if gs.SideToMove == Black {
		h ^= ZobristSideToMove()
	}
	return h
}

// FEN renders gs back to Forsyth-Edwards Notation.
func (gs *GameState) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := gs.Board.PieceAt(NewSquare(file, rank))
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.FENChar())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if gs.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(gs.CastlingRights.String())

	sb.WriteByte(' ')
	sb.WriteString(gs.EnPassant.String())

	fmt.Fprintf(&sb, " %d %d", gs.HalfMoveClock, gs.FullMoveNumber)
	return sb.String()
}
