package board

// GeneratePseudoMoves generates every pseudo-legal move for color, ignoring
// whether the mover's own king would be left in check.
func GeneratePseudoMoves(gs *GameState, color Color) *MoveList {
	ml := &MoveList{}
	for sq := A1; sq <= H8; sq++ {
		p := gs.Board.PieceAt(sq)
		if p == nil || p.Color != color {
			continue
		}
		switch p.Type {
		case Pawn:
			generatePawnMoves(gs, sq, color, ml)
		case Knight:
			generateKnightMoves(gs, sq, color, ml)
		case Bishop:
			generateSliderMoves(gs, sq, color, bishopDirections, ml)
		case Rook:
			generateSliderMoves(gs, sq, color, rookDirections, ml)
		case Queen:
			generateSliderMoves(gs, sq, color, bishopDirections, ml)
			generateSliderMoves(gs, sq, color, rookDirections, ml)
		case King:
			generateKingMoves(gs, sq, color, ml)
		}
	}
	return ml
}

func addOrCapture(gs *GameState, from, to Square, color Color, ml *MoveList) (stop bool) {
	target := gs.Board.PieceAt(to)
	if target == nil {
		ml.Add(NewMove(from, to))
		return false
	}
	if target.Color != color {
		ml.Add(NewMove(from, to))
	}
	return true
}

func generateSliderMoves(gs *GameState, from Square, color Color, dirs [4][2]int, ml *MoveList) {
	file, rank := from.File(), from.Rank()
	for _, d := range dirs {
		f, r := file+d[0], rank+d[1]
		for OnBoard(f, r) {
			to := NewSquare(f, r)
			if addOrCapture(gs, from, to, color, ml) {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
}

func generateKnightMoves(gs *GameState, from Square, color Color, ml *MoveList) {
	file, rank := from.File(), from.Rank()
	for _, off := range knightOffsets {
		f, r := file+off[0], rank+off[1]
		if OnBoard(f, r) {
			addOrCapture(gs, from, NewSquare(f, r), color, ml)
		}
	}
}

func generateKingMoves(gs *GameState, from Square, color Color, ml *MoveList) {
	file, rank := from.File(), from.Rank()
	for _, off := range kingOffsets {
		f, r := file+off[0], rank+off[1]
		if OnBoard(f, r) {
			addOrCapture(gs, from, NewSquare(f, r), color, ml)
		}
	}
	generateCastlingMoves(gs, from, color, ml)
}

// generateCastlingMoves implements spec.md §4.1's five castling-legality
// clauses: not in check, transit square not attacked, destination not
// attacked (checked here plus re-verified by the generic legality filter),
// king/rook not moved (via CastlingRights), and the squares between empty.
func generateCastlingMoves(gs *GameState, kingSq Square, color Color, ml *MoveList) {
	enemy := color.Other()
	rank := kingSq.Rank()
	if gs.Board.IsSquareAttacked(kingSq, enemy) {
		return // (a) mover in check
	}

	tryCastle := func(kingSide bool) {
		if !gs.CastlingRights.CanCastle(color, kingSide) {
			return
		}
		var rookFile int
		var between []int
		var transitFile, destFile int
		if kingSide {
			rookFile = 7
			between = []int{5, 6}
			transitFile, destFile = 5, 6
		} else {
			rookFile = 0
			between = []int{1, 2, 3}
			transitFile, destFile = 3, 2
		}
		rookSq := NewSquare(rookFile, rank)
		rook := gs.Board.PieceAt(rookSq)
		if rook == nil || rook.Type != Rook || rook.Color != color || rook.HasMoved {
			return
		}
		for _, f := range between {
			if !gs.Board.IsEmpty(NewSquare(f, rank)) {
				return // (e) squares between king and rook must be empty
			}
		}
		if gs.Board.IsSquareAttacked(NewSquare(transitFile, rank), enemy) {
			return // (b) transit square attacked
		}
		if gs.Board.IsSquareAttacked(NewSquare(destFile, rank), enemy) {
			return // (c) destination attacked
		}
		ml.Add(NewCastling(kingSq, NewSquare(destFile, rank)))
	}

	tryCastle(true)
	tryCastle(false)
}

func generatePawnMoves(gs *GameState, from Square, color Color, ml *MoveList) {
	file, rank := from.File(), from.Rank()
	dir := 1
	startRank := 1
	promoRank := 7
	if color == Black {
		dir = -1
		startRank = 6
		promoRank = 0
	}

	addPawnMove := func(to Square) {
		if to.Rank() == promoRank {
			ml.Add(NewPromotion(from, to, Queen))
			ml.Add(NewPromotion(from, to, Rook))
			ml.Add(NewPromotion(from, to, Bishop))
			ml.Add(NewPromotion(from, to, Knight))
		} else {
			ml.Add(NewMove(from, to))
		}
	}

	// Single push.
	if OnBoard(file, rank+dir) {
		oneAhead := NewSquare(file, rank+dir)
		if gs.Board.IsEmpty(oneAhead) {
			addPawnMove(oneAhead)
			// Double push from the starting rank.
			if rank == startRank && OnBoard(file, rank+2*dir) {
				twoAhead := NewSquare(file, rank+2*dir)
				if gs.Board.IsEmpty(twoAhead) {
					ml.Add(NewMove(from, twoAhead))
				}
			}
		}
	}

	// Captures (including en passant).
	for _, df := range [2]int{-1, 1} {
		f, r := file+df, rank+dir
		if !OnBoard(f, r) {
			continue
		}
		to := NewSquare(f, r)
		if target := gs.Board.PieceAt(to); target != nil && target.Color != color {
			addPawnMove(to)
		} else if to == gs.EnPassant && gs.EnPassant != NoSquare {
			ml.Add(NewEnPassant(from, to))
		}
	}
}

// GenerateLegalMoves returns every legal move for the side to move.
func GenerateLegalMoves(gs *GameState) *MoveList {
	return legalMovesForColor(gs, gs.SideToMove)
}

// AllLegalMoves returns every legal move for color, as if it were that
// color's turn to move (per spec.md §6's all_legal_moves(state, color)).
func AllLegalMoves(gs *GameState, color Color) *MoveList {
	return legalMovesForColor(gs, color)
}

func legalMovesForColor(gs *GameState, color Color) *MoveList {
	working := gs
	if color != gs.SideToMove {
		working = gs.Clone()
		working.SideToMove = color
	}
	pseudo := GeneratePseudoMoves(working, color)
	legal := &MoveList{}
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := working.MakeMove(m)
		if !undo.Valid {
			continue
		}
		kingSq := working.Board.KingSquare(color)
		if kingSq == NoSquare || !working.Board.IsSquareAttacked(kingSq, color.Other()) {
			legal.Add(m)
		}
		working.UnmakeMove(m, undo)
	}
	return legal
}

// LegalMovesFrom returns the legal moves originating at sq for the side to move.
func LegalMovesFrom(gs *GameState, sq Square) *MoveList {
	all := GenerateLegalMoves(gs)
	out := &MoveList{}
	for i := 0; i < all.Len(); i++ {
		m := all.Get(i)
		if m.From() == sq {
			out.Add(m)
		}
	}
	return out
}

// GenerateCaptures returns every legal capturing or promoting move for the
// side to move (used by quiescence search).
func GenerateCaptures(gs *GameState) *MoveList {
	all := GenerateLegalMoves(gs)
	out := &MoveList{}
	for i := 0; i < all.Len(); i++ {
		m := all.Get(i)
		if m.IsCapture(gs.Board) || m.IsPromotion() {
			out.Add(m)
		}
	}
	return out
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func HasLegalMoves(gs *GameState) bool {
	color := gs.SideToMove
	pseudo := GeneratePseudoMoves(gs, color)
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		undo := gs.MakeMove(m)
		if !undo.Valid {
			continue
		}
		kingSq := gs.Board.KingSquare(color)
		ok := kingSq != NoSquare && !gs.Board.IsSquareAttacked(kingSq, color.Other())
		gs.UnmakeMove(m, undo)
		if ok {
			return true
		}
	}
	return false
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (gs *GameState) HasLegalMoves() bool {
	return HasLegalMoves(gs)
}
