package board

import "fmt"

// CastlingRights is a bitset of the four castling privileges.
type CastlingRights uint8

const (
	WhiteKingSide CastlingRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// String returns the FEN castling-rights field.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// CanCastle reports whether color c may still castle on the given side.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	switch {
	case c == White && kingSide:
		return cr&WhiteKingSide != 0
	case c == White && !kingSide:
		return cr&WhiteQueenSide != 0
	case c == Black && kingSide:
		return cr&BlackKingSide != 0
	default:
		return cr&BlackQueenSide != 0
	}
}

// Board is an 8x8 grid of optional piece identities, plus the identity-to-
// piece mapping. Every occupied cell's id is present in pieces, and every
// piece in the map occupies exactly one cell (see invariant in spec.md §3).
type Board struct {
	cells  [64]PieceID
	pieces map[PieceID]*Piece
	nextID PieceID
	kingID [2]PieceID
}

func newEmptyBoard() *Board {
	return &Board{
		pieces: make(map[PieceID]*Piece, 32),
		nextID: 1,
	}
}

// PieceAt returns the piece occupying sq, or nil if the square is empty.
func (b *Board) PieceAt(sq Square) *Piece {
	id := b.cells[sq]
	if id == NoPieceID {
		return nil
	}
	return b.pieces[id]
}

// PieceByID returns the piece with the given identity, or nil.
func (b *Board) PieceByID(id PieceID) *Piece {
	if id == NoPieceID {
		return nil
	}
	return b.pieces[id]
}

// SquareOf returns the current square of a piece by id, or NoSquare if it
// is not on the board (captured).
func (b *Board) SquareOf(id PieceID) Square {
	for sq := A1; sq <= H8; sq++ {
		if b.cells[sq] == id {
			return sq
		}
	}
	return NoSquare
}

// IsEmpty reports whether sq has no piece on it.
func (b *Board) IsEmpty(sq Square) bool {
	return b.cells[sq] == NoPieceID
}

// KingSquare returns the square of color c's king.
func (b *Board) KingSquare(c Color) Square {
	id := b.kingID[c]
	for sq := A1; sq <= H8; sq++ {
		if b.cells[sq] == id {
			return sq
		}
	}
	return NoSquare
}

// place creates a new piece of the given type/color at sq and returns its id.
func (b *Board) place(pt PieceType, c Color, sq Square) PieceID {
	id := b.nextID
	b.nextID++
	b.pieces[id] = &Piece{ID: id, Type: pt, Color: c}
	b.cells[sq] = id
	if pt == King {
		b.kingID[c] = id
	}
	return id
}

// removePiece deletes whatever piece sits on sq and returns its id (or
// NoPieceID if the square was already empty).
func (b *Board) removePiece(sq Square) PieceID {
	id := b.cells[sq]
	if id == NoPieceID {
		return NoPieceID
	}
	b.cells[sq] = NoPieceID
	delete(b.pieces, id)
	return id
}

// restorePiece reinserts a piece with a previously-assigned id, used by
// UnmakeMove to put a captured piece back exactly as it was.
func (b *Board) restorePiece(id PieceID, pt PieceType, c Color, sq Square, hasMoved bool) {
	b.pieces[id] = &Piece{ID: id, Type: pt, Color: c, HasMoved: hasMoved}
	b.cells[sq] = id
	if pt == King {
		b.kingID[c] = id
	}
}

// movePiece relocates whatever piece sits on from to the (assumed empty) to
// square, marking it as having moved.
func (b *Board) movePiece(from, to Square) {
	id := b.cells[from]
	b.cells[from] = NoPieceID
	b.cells[to] = id
	if p := b.pieces[id]; p != nil {
		p.HasMoved = true
	}
}

// PiecesOf returns every piece of color c currently on the board, in no
// particular order.
func (b *Board) PiecesOf(c Color) []*Piece {
	out := make([]*Piece, 0, 16)
	for _, p := range b.pieces {
		if p.Color == c {
			out = append(out, p)
		}
	}
	return out
}

// Clone deep-copies the board: a fresh cell grid and fresh Piece values, so
// mutating the clone never touches the original.
func (b *Board) Clone() *Board {
	nb := &Board{
		cells:  b.cells,
		pieces: make(map[PieceID]*Piece, len(b.pieces)),
		nextID: b.nextID,
		kingID: b.kingID,
	}
	for id, p := range b.pieces {
		cp := *p
		nb.pieces[id] = &cp
	}
	return nb
}

// GameState is the complete mutable state of a game in progress: the board,
// whose move it is, castling/en-passant/clock bookkeeping, and repetition
// accounting. It is mutated only by MakeMove/ApplyMove.
type GameState struct {
	Board *Board

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	FullMoveNumber int

	LastMove        Move
	LastMoveByColor [2]Move // most recent move made by each color

	Hash uint64

	// RepetitionCounts maps a position key to the number of times it has
	// occurred; never decremented (forward-only play, per spec.md §3).
	RepetitionCounts map[uint64]int

	// NNUEAcc is an opaque slot the evaluator may use to stash an
	// incrementally-maintained accumulator alongside this state. board
	// itself never reads or writes it (see DESIGN.md for why this avoids an
	// import cycle between board and nnue).
	NNUEAcc interface{}
}

// NewGameState returns the standard chess starting position.
func NewGameState() *GameState {
	gs, err := ParseFEN(StartFEN)
	if err != nil {
		panic(fmt.Sprintf("board: standard FEN failed to parse: %v", err))
	}
	return gs
}

// Clone deep-copies the game state, including the board and repetition map,
// so the clone can be mutated (speculative search play) without affecting
// the original.
func (gs *GameState) Clone() *GameState {
	ngs := &GameState{
		Board:           gs.Board.Clone(),
		SideToMove:      gs.SideToMove,
		CastlingRights:  gs.CastlingRights,
		EnPassant:       gs.EnPassant,
		HalfMoveClock:   gs.HalfMoveClock,
		FullMoveNumber:  gs.FullMoveNumber,
		LastMove:        gs.LastMove,
		LastMoveByColor: gs.LastMoveByColor,
		Hash:            gs.Hash,
	}
	ngs.RepetitionCounts = make(map[uint64]int, len(gs.RepetitionCounts))
	for k, v := range gs.RepetitionCounts {
		ngs.RepetitionCounts[k] = v
	}
	return ngs
}

// PieceAt returns the piece at sq, or nil.
func (gs *GameState) PieceAt(sq Square) *Piece {
	return gs.Board.PieceAt(sq)
}

// IsEmpty reports whether sq is unoccupied.
func (gs *GameState) IsEmpty(sq Square) bool {
	return gs.Board.IsEmpty(sq)
}

// InCheck reports whether the side to move's king is currently attacked.
func (gs *GameState) InCheck() bool {
	ksq := gs.Board.KingSquare(gs.SideToMove)
	if ksq == NoSquare {
		return false
	}
	return gs.Board.IsSquareAttacked(ksq, gs.SideToMove.Other())
}

// RepetitionCount returns how many times the current position's key has
// been recorded (including the current occurrence).
func (gs *GameState) RepetitionCount() int {
	return gs.RepetitionCounts[gs.Hash]
}

// GameStatus is the terminal/ongoing classification of a position.
type GameStatus int

const (
	StatusOngoing GameStatus = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
	StatusDrawThreefold
	StatusDrawInsufficientMaterial
	StatusDrawFiftyMove
)

// String renders the status for logging/diagnostics.
func (s GameStatus) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusDrawThreefold:
		return "draw: threefold repetition"
	case StatusDrawInsufficientMaterial:
		return "draw: insufficient material"
	case StatusDrawFiftyMove:
		return "draw: fifty-move rule"
	default:
		return "unknown"
	}
}

// IsDraw reports whether the status is one of the draw reasons.
func (s GameStatus) IsDraw() bool {
	return s == StatusDrawThreefold || s == StatusDrawInsufficientMaterial || s == StatusDrawFiftyMove
}

// GameStatus classifies the current position following spec.md §4.1's test
// order: threefold -> insufficient material -> no legal moves (mate/stalemate)
// -> fifty-move -> check -> ongoing.
func (gs *GameState) GameStatus() GameStatus {
	if gs.RepetitionCount() >= 3 {
		return StatusDrawThreefold
	}
	if gs.IsInsufficientMaterial() {
		return StatusDrawInsufficientMaterial
	}
	if !gs.HasLegalMoves() {
		if gs.InCheck() {
			return StatusCheckmate
		}
		return StatusStalemate
	}
	if gs.HalfMoveClock >= 100 {
		return StatusDrawFiftyMove
	}
	if gs.InCheck() {
		return StatusCheck
	}
	return StatusOngoing
}

// Winner returns the color that delivered checkmate, valid only when
// GameStatus() == StatusCheckmate.
func (gs *GameState) Winner() Color {
	return gs.SideToMove.Other()
}

// IsInsufficientMaterial implements spec.md §4.1's minimal set: K v K;
// K+minor v K; K+B v K+B with both bishops (any square colors). Anything
// else with a pawn, rook, queen, or more minors is sufficient.
func (gs *GameState) IsInsufficientMaterial() bool {
	var minors [2]int // knights+bishops count per color
	var bishops [2]int
	for _, p := range gs.Board.pieces {
		switch p.Type {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			minors[p.Color]++
		case Bishop:
			minors[p.Color]++
			bishops[p.Color]++
		}
	}
	total := minors[White] + minors[Black]
	switch {
	case total == 0:
		return true // K v K
	case total == 1:
		return true // K+minor v K
	case total == 2 && bishops[White] == 1 && bishops[Black] == 1:
		return true // K+B v K+B
	default:
		return false
	}
}
