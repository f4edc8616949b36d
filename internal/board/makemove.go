package board

import "fmt"

// MakeMove applies m (assumed pseudo-legal) to gs in place and returns the
// UndoInfo needed to reverse it. The incremental hash update removes the
// old castling-rights and en-passant keys, then applies the capture, the
// piece's own move, promotion, the castling rook's move, the fresh
// castling-rights and en-passant keys, and last the side-to-move key.
// MakeMove never checks legality; callers that need legal
// moves only should use GenerateLegalMoves/ApplyMove.
func (gs *GameState) MakeMove(m Move) UndoInfo {
	from, to := m.From(), m.To()
	mover := gs.Board.PieceAt(from)
	if mover == nil {
		return UndoInfo{Valid: false}
	}

	color := gs.SideToMove
	undo := UndoInfo{
		Valid:            true,
		CapturedID:       NoPieceID,
		CapturedSquare:   NoSquare,
		RookFrom:         NoSquare,
		RookTo:           NoSquare,
		PromotedFrom:     NoPieceType,
		MoverHadMoved:    mover.HasMoved,
		CastlingRights:   gs.CastlingRights,
		EnPassant:        gs.EnPassant,
		HalfMoveClock:    gs.HalfMoveClock,
		FullMoveNumber:   gs.FullMoveNumber,
		SideToMove:       gs.SideToMove,
		Hash:             gs.Hash,
		LastMove:         gs.LastMove,
		LastMoveColor:    gs.LastMoveByColor,
	}

	hash := gs.Hash

	hash ^= ZobristCastling(gs.CastlingRights)

	if gs.EnPassant != NoSquare {
		hash ^= ZobristEnPassant(gs.EnPassant.File())
	}
	gs.EnPassant = NoSquare

	switch {
	case m.IsEnPassant():
		capSq := NewSquare(to.File(), from.Rank())
		captured := gs.Board.PieceAt(capSq)
		hash ^= ZobristPiece(captured.Color, captured.Type, capSq)
		undo.CapturedID = gs.Board.removePiece(capSq)
		undo.CapturedSquare = capSq
		undo.CapturedType = captured.Type
		undo.CapturedColor = captured.Color
		undo.CapturedHasMoved = captured.HasMoved
	case !gs.Board.IsEmpty(to):
		captured := gs.Board.PieceAt(to)
		hash ^= ZobristPiece(captured.Color, captured.Type, to)
		undo.CapturedID = gs.Board.removePiece(to)
		undo.CapturedSquare = to
		undo.CapturedType = captured.Type
		undo.CapturedColor = captured.Color
		undo.CapturedHasMoved = captured.HasMoved
	}

	hash ^= ZobristPiece(color, mover.Type, from)
	gs.Board.movePiece(from, to)
	hash ^= ZobristPiece(color, mover.Type, to)

	if m.IsPromotion() {
		undo.PromotedFrom = mover.Type
		hash ^= ZobristPiece(color, mover.Type, to)
		mover.Type = m.Promotion()
		hash ^= ZobristPiece(color, mover.Type, to)
	}

	if m.IsCastling() {
		rank := from.Rank()
		var rookFrom, rookTo Square
		if to.File() == 6 {
			rookFrom, rookTo = NewSquare(7, rank), NewSquare(5, rank)
		} else {
			rookFrom, rookTo = NewSquare(0, rank), NewSquare(3, rank)
		}
		rook := gs.Board.PieceAt(rookFrom)
		undo.RookFrom, undo.RookTo = rookFrom, rookTo
		undo.RookHadMoved = rook.HasMoved
		hash ^= ZobristPiece(color, Rook, rookFrom)
		gs.Board.movePiece(rookFrom, rookTo)
		hash ^= ZobristPiece(color, Rook, rookTo)
	}

	newRights := gs.CastlingRights
	if mover.Type == King {
		if color == White {
			newRights &^= WhiteKingSide | WhiteQueenSide
		} else {
			newRights &^= BlackKingSide | BlackQueenSide
		}
	}
	clearRightForSquare := func(sq Square) {
		switch sq {
		case A1:
			newRights &^= WhiteQueenSide
		case H1:
			newRights &^= WhiteKingSide
		case A8:
			newRights &^= BlackQueenSide
		case H8:
			newRights &^= BlackKingSide
		}
	}
	clearRightForSquare(from)
	clearRightForSquare(to)
	gs.CastlingRights = newRights
	hash ^= ZobristCastling(newRights)

	if mover.Type == Pawn && absInt(int(to)-int(from)) == 16 {
		epSq := NewSquare(from.File(), (from.Rank()+to.Rank())/2)
		gs.EnPassant = epSq
		hash ^= ZobristEnPassant(epSq.File())
	}

	if mover.Type == Pawn || undo.CapturedID != NoPieceID {
		gs.HalfMoveClock = 0
	} else {
		gs.HalfMoveClock++
	}

	if color == Black {
		gs.FullMoveNumber++
	}

	gs.LastMoveByColor[color] = m
	gs.LastMove = m

	hash ^= ZobristSideToMove()
	gs.SideToMove = color.Other()

	gs.Hash = hash
	gs.RepetitionCounts[hash]++

	return undo
}

// UnmakeMove reverses a move previously applied by MakeMove. undo must be
// the UndoInfo returned by the matching MakeMove call; callers must unmake
// moves in exact LIFO order.
func (gs *GameState) UnmakeMove(m Move, undo UndoInfo) {
	if !undo.Valid {
		return
	}
	from, to := m.From(), m.To()

	gs.RepetitionCounts[gs.Hash]--

	gs.SideToMove = undo.SideToMove
	gs.CastlingRights = undo.CastlingRights
	gs.EnPassant = undo.EnPassant
	gs.HalfMoveClock = undo.HalfMoveClock
	gs.FullMoveNumber = undo.FullMoveNumber
	gs.Hash = undo.Hash
	gs.LastMove = undo.LastMove
	gs.LastMoveByColor = undo.LastMoveColor

	if m.IsCastling() {
		gs.Board.movePiece(undo.RookTo, undo.RookFrom)
		if rook := gs.Board.PieceAt(undo.RookFrom); rook != nil {
			rook.HasMoved = undo.RookHadMoved
		}
	}

	mover := gs.Board.PieceAt(to)
	if mover == nil {
		panic(fmt.Sprintf("board: unmake %s found no piece at %s", m, to))
	}
	if m.IsPromotion() {
		mover.Type = undo.PromotedFrom
	}

	gs.Board.movePiece(to, from)
	mover.HasMoved = undo.MoverHadMoved

	if undo.CapturedID != NoPieceID {
		gs.Board.restorePiece(undo.CapturedID, undo.CapturedType, undo.CapturedColor, undo.CapturedSquare, undo.CapturedHasMoved)
	}
}

// NullUndo carries what MakeNullMove changed, for UnmakeNullMove.
type NullUndo struct {
	EnPassant  Square
	Hash       uint64
	SideToMove Color
}

// MakeNullMove passes the turn without moving a piece, used by the search's
// null-move pruning. It clears any en passant right (it can only be taken on
// the immediately following move) and flips the side to move.
func (gs *GameState) MakeNullMove() NullUndo {
	undo := NullUndo{EnPassant: gs.EnPassant, Hash: gs.Hash, SideToMove: gs.SideToMove}
	hash := gs.Hash
	if gs.EnPassant != NoSquare {
		hash ^= ZobristEnPassant(gs.EnPassant.File())
	}
	gs.EnPassant = NoSquare
	hash ^= ZobristSideToMove()
	gs.SideToMove = gs.SideToMove.Other()
	gs.Hash = hash
	gs.RepetitionCounts[hash]++
	return undo
}

// UnmakeNullMove reverses MakeNullMove.
func (gs *GameState) UnmakeNullMove(undo NullUndo) {
	gs.RepetitionCounts[gs.Hash]--
	gs.EnPassant = undo.EnPassant
	gs.SideToMove = undo.SideToMove
	gs.Hash = undo.Hash
}

// ApplyMove is the public, legality-checked boundary for committing a move:
// it returns an error for an illegal move rather than mutating state
// (spec.md §7's rule that boundary violations are ordinary errors, not
// panics).
func ApplyMove(gs *GameState, m Move) error {
	legal := GenerateLegalMoves(gs)
	if !legal.Contains(m) {
		return fmt.Errorf("board: illegal move %s in this position", m)
	}
	gs.MakeMove(m)
	return nil
}
