// Package engine implements bitboard chess move generation and an
// alpha-beta search on top of it.
//
// Position and move representation follow the classical bitboard design:
// pieces are kept as 64-bit sets (one per figure, one per color), sliding attacks
// are looked up through magic-bitboard perfect hashes, and a position is
// an immutable value — applying a move produces a new Position rather than
// mutating one in place.
package engine

import "fmt"

// Square identifies one of the 64 board cells, rank = index/8, file = index%8.
type Square uint8

// RankFile returns the square at rank r, file f. r and f must be in [0, 8).
func RankFile(r, f int) Square {
	return Square(r*8 + f)
}

// SquareFromString parses a square in standard [a-h][1-8] notation.
func SquareFromString(s string) (Square, error) {
	if len(s) != 2 {
		return SquareA1, fmt.Errorf("invalid square %q", s)
	}
	f, r := -1, -1
	if 'a' <= s[0] && s[0] <= 'h' {
		f = int(s[0] - 'a')
	}
	if '1' <= s[1] && s[1] <= '8' {
		r = int(s[1] - '1')
	}
	if f == -1 || r == -1 {
		return SquareA1, fmt.Errorf("invalid square %q", s)
	}
	return RankFile(r, f), nil
}

// Bitboard returns the single-bit bitboard for sq.
func (sq Square) Bitboard() Bitboard { return 1 << uint(sq) }

// Relative returns the square dr ranks and df files away. Unchecked.
func (sq Square) Relative(dr, df int) Square { return sq + Square(dr*8+df) }

// Rank returns the rank (0-7) of sq.
func (sq Square) Rank() int { return int(sq / 8) }

// File returns the file (0-7) of sq.
func (sq Square) File() int { return int(sq % 8) }

func (sq Square) String() string {
	return string([]byte{uint8(sq.File() + 'a'), uint8(sq.Rank() + '1')})
}

const (
	SquareA1 Square = iota
	SquareB1
	SquareC1
	SquareD1
	SquareE1
	SquareF1
	SquareG1
	SquareH1
	SquareA2
	SquareB2
	SquareC2
	SquareD2
	SquareE2
	SquareF2
	SquareG2
	SquareH2
	SquareA3
	SquareB3
	SquareC3
	SquareD3
	SquareE3
	SquareF3
	SquareG3
	SquareH3
	SquareA4
	SquareB4
	SquareC4
	SquareD4
	SquareE4
	SquareF4
	SquareG4
	SquareH4
	SquareA5
	SquareB5
	SquareC5
	SquareD5
	SquareE5
	SquareF5
	SquareG5
	SquareH5
	SquareA6
	SquareB6
	SquareC6
	SquareD6
	SquareE6
	SquareF6
	SquareG6
	SquareH6
	SquareA7
	SquareB7
	SquareC7
	SquareD7
	SquareE7
	SquareF7
	SquareG7
	SquareH7
	SquareA8
	SquareB8
	SquareC8
	SquareD8
	SquareE8
	SquareF8
	SquareG8
	SquareH8

	SquareArraySize = 64
	SquareMinValue  = SquareA1
	SquareMaxValue  = SquareH8
)

// Figure is a piece kind without color.
type Figure uint

const (
	NoFigure Figure = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King

	FigureArraySize = int(iota)
	FigureMinValue  = Pawn
	FigureMaxValue  = King
)

var figureToSymbol = map[Figure]string{
	Knight: "N", Bishop: "B", Rook: "R", Queen: "Q", King: "K",
}

func (f Figure) String() string {
	switch f {
	case NoFigure:
		return ""
	case Pawn:
		return "P"
	default:
		return figureToSymbol[f]
	}
}

// Color identifies a side.
type Color uint

const (
	NoColor Color = iota
	White
	Black

	ColorArraySize = int(iota)
	ColorMinValue  = White
	ColorMaxValue  = Black
)

var kingHomeRank = [ColorArraySize]int{0, 0, 7}

// Opposite returns the other color. Undefined unless c is White or Black.
func (c Color) Opposite() Color { return White + Black - c }

// KingHomeRank returns the rank (0-7) of c's king's starting square.
func (c Color) KingHomeRank() int { return kingHomeRank[c] }

func (c Color) String() string {
	switch c {
	case White:
		return "w"
	case Black:
		return "b"
	default:
		return "-"
	}
}

// Piece is a figure owned by a side.
type Piece uint8

// ColorFigure builds a Piece from a color and a figure.
func ColorFigure(col Color, fig Figure) Piece {
	return Piece(fig<<2) + Piece(col)
}

// Color returns the piece's color.
func (pi Piece) Color() Color { return Color(pi & 3) }

// Figure returns the piece's figure.
func (pi Piece) Figure() Figure { return Figure(pi >> 2) }

const (
	NoPiece   = Piece(0)
	WhitePawn = Piece(Pawn<<2) + Piece(White)
	BlackPawn = Piece(Pawn<<2) + Piece(Black)

	PieceMinValue = NoPiece
	PieceMaxValue = Piece(King<<2) + Piece(Black)
	PieceArraySize = int(PieceMaxValue) + 1
)

var pieceToSymbol = []string{
	".", "?", "?", "?", "?", "P", "p", "?", "?", "N", "n", "?", "?", "B", "b",
	"?", "?", "R", "r", "?", "?", "Q", "q", "?", "?", "K", "k",
}

func (pi Piece) String() string { return pieceToSymbol[pi] }

// Castle is a bitmask of castling rights.
type Castle uint8

const (
	WhiteOO Castle = 1 << iota
	WhiteOOO
	BlackOO
	BlackOOO

	NoCastle  Castle = 0
	AnyCastle Castle = WhiteOO | WhiteOOO | BlackOO | BlackOOO

	CastleArraySize = int(AnyCastle) + 1
)

var castleToSymbol = map[Castle]byte{
	WhiteOO: 'K', WhiteOOO: 'Q', BlackOO: 'k', BlackOOO: 'q',
}

func (c Castle) String() string {
	if c == 0 {
		return "-"
	}
	var r []byte
	for c > 0 {
		k := c & (-c)
		r = append(r, castleToSymbol[k])
		c -= k
	}
	return string(r)
}

// MoveType classifies a Move for application purposes.
type MoveType uint8

const (
	NoMove MoveType = iota
	Normal
	Promotion
	Castling
	Enpassant
)

// Move is a from/to pair together with enough piece information to apply
// it to a Position without consulting the board. It carries no undo state:
// Position.Apply produces a new Position instead of mutating in place.
type Move struct {
	From, To  Square
	Moved     Piece // the piece that was on From before the move
	Capture   Piece // the piece removed by the move, NoPiece if none
	Promotion Piece // the piece the pawn becomes, NoPiece unless a promotion
	MoveType  MoveType
}

// NullMove is the sentinel "no move" value.
var NullMove = Move{}

// IsQuiet returns true if the move is neither a capture nor a promotion.
func (m Move) IsQuiet() bool {
	return m.Capture == NoPiece && m.MoveType != Promotion
}

// IsViolent returns true if the move is a capture or a promotion.
func (m Move) IsViolent() bool { return !m.IsQuiet() }

// CaptureSquare returns the square of the captured piece.
// Undefined if the move is not a capture.
func (m Move) CaptureSquare() Square {
	if m.MoveType == Enpassant {
		return RankFile(m.From.Rank(), m.To.File())
	}
	return m.To
}

// Piece returns the figure/color that is actually placed on To.
func (m Move) Piece() Piece {
	if m.MoveType == Promotion {
		return m.Promotion
	}
	return m.Moved
}

// UCI formats the move in UCI's four-or-five character notation.
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.MoveType == Promotion {
		s += promotionSymbol[m.Promotion.Figure()]
	}
	return s
}

var promotionSymbol = map[Figure]string{
	Knight: "n", Bishop: "b", Rook: "r", Queen: "q",
}

func (m Move) String() string { return m.UCI() }

// CastlingRook returns the rook piece and its from/to squares for a
// castling move whose king ends on kingEnd.
func CastlingRook(kingEnd Square) (Piece, Square, Square) {
	piece := Piece(Rook<<2) + 1 + Piece(kingEnd>>5)
	rookStart := kingEnd&^3 | (kingEnd & 4 >> 1) | (kingEnd & 4 >> 2)
	rookEnd := kingEnd ^ (kingEnd & 4 >> 1) | 1
	return piece, rookStart, rookEnd
}
