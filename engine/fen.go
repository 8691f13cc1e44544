package engine

import "fmt"

// parsePiecePlacement parses FEN field 1 (the "rnbqkbnr/pppppppp/..." board).
func parsePiecePlacement(field string, pos *Position) error {
	r, f := 7, 0
	for i := 0; i < len(field); i++ {
		c := field[i]
		switch {
		case c == '/':
			if f != 8 {
				return fmt.Errorf("rank has %d files, want 8", f)
			}
			r--
			f = 0
		case '1' <= c && c <= '8':
			f += int(c - '0')
		default:
			if f >= 8 {
				return fmt.Errorf("too many files in rank %d", r+1)
			}
			pi, err := pieceFromSymbol(c)
			if err != nil {
				return err
			}
			pos.put(RankFile(r, f), pi)
			f++
		}
	}
	if r != 0 || f != 8 {
		return fmt.Errorf("piece placement %q does not cover all 8 ranks", field)
	}
	return nil
}

func pieceFromSymbol(c byte) (Piece, error) {
	for pi := PieceMinValue; pi <= PieceMaxValue; pi++ {
		if len(pieceToSymbol[pi]) == 1 && pieceToSymbol[pi][0] == c {
			return pi, nil
		}
	}
	return NoPiece, fmt.Errorf("unknown piece symbol %q", string(c))
}

func parseSideToMove(field string, pos *Position) error {
	switch field {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return fmt.Errorf("invalid side to move %q", field)
	}
	return nil
}

func parseCastlingAbility(field string, pos *Position) error {
	if field == "-" {
		pos.CastleRights = NoCastle
		return nil
	}
	var rights Castle
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case 'K':
			rights |= WhiteOO
		case 'Q':
			rights |= WhiteOOO
		case 'k':
			rights |= BlackOO
		case 'q':
			rights |= BlackOOO
		default:
			return fmt.Errorf("invalid castling ability %q", field)
		}
	}
	pos.CastleRights = rights
	return nil
}

func parseEnpassantSquare(field string, pos *Position) error {
	if field == "-" {
		pos.EnpassantPawn = SquareA1
		return nil
	}
	target, err := SquareFromString(field)
	if err != nil {
		return fmt.Errorf("invalid en passant square %q: %w", field, err)
	}
	if target.Rank() == 2 { // target behind a White pawn that pushed to rank 4
		pos.EnpassantPawn = target.Relative(1, 0)
	} else if target.Rank() == 5 {
		pos.EnpassantPawn = target.Relative(-1, 0)
	} else {
		return fmt.Errorf("en passant square %q is not on rank 3 or 6", field)
	}
	return nil
}

func formatPiecePlacement(pos *Position) string {
	var s []byte
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			pi := pos.Get(RankFile(r, f))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				s = append(s, byte('0'+empty))
				empty = 0
			}
			s = append(s, pieceToSymbol[pi][0])
		}
		if empty > 0 {
			s = append(s, byte('0'+empty))
		}
		if r > 0 {
			s = append(s, '/')
		}
	}
	return string(s)
}

func formatEnpassantSquare(pos *Position) string {
	if pos.EnpassantPawn == SquareA1 {
		return "-"
	}
	return pos.enpassantTargetSquare().String()
}
