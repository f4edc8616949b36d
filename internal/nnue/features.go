// Package nnue implements the optional NNUE-style evaluation mix: a single
// hidden-layer network with an incrementally maintained accumulator, loaded
// from the "SNN1" binary weights format described in spec.md §4.2.
package nnue

import "github.com/brainit-consulting/chess-sub002/internal/board"

const numPieceTypes = 6

// featureIndex computes the input index for a piece of pieceColor/pieceType
// on sq, as seen from perspective: the color offset is 0 for perspective's
// own pieces and 6 for the opponent's, and the square is mirrored vertically
// when perspective is Black (so a black-to-move accumulator always "sees"
// the board from its own side, the way the white accumulator naturally
// does).
func featureIndex(perspective, pieceColor board.Color, pieceType board.PieceType, sq board.Square) int {
	colorOffset := 0
	if pieceColor != perspective {
		colorOffset = numPieceTypes
	}
	viewSq := sq
	if perspective == board.Black {
		viewSq = sq.Mirror()
	}
	return (colorOffset+int(pieceType))*64 + int(viewSq)
}
