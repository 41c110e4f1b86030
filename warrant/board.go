package warrant

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnsupportedBoard is returned when no rule resolves for a price, direction and board.
	ErrUnsupportedBoard = errors.New("unsupported board")
	// ErrInvalidInput is returned for non positive prices or conversion units.
	ErrInvalidInput = errors.New("invalid input")
)

// Direction of a price move limited by a board rule.
type Direction int

const (
	Gain Direction = iota // auto reject upper limit
	Loss                  // auto reject lower limit
)

func (d Direction) String() string {
	switch d {
	case Gain:
		return "gain"
	case Loss:
		return "loss"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Rule is the maximum price move allowed in one direction, on one tier, for
// prices within (From, UpTo], or [From, UpTo] when FromIncluded.
//
// A zero UpTo is unbounded. Fraction is signed: negative for losses.
type Rule struct {
	Tier         int
	Direction    Direction
	From         decimal.Decimal
	FromIncluded bool
	UpTo         decimal.Decimal
	Fraction     decimal.Decimal
}

// Contains reports whether price belongs to the rule's bracket.
func (r Rule) Contains(price decimal.Decimal) bool {
	if c := price.Cmp(r.From); c < 0 || c == 0 && !r.FromIncluded {
		return false
	}
	return r.UpTo.IsZero() || price.LessThanOrEqual(r.UpTo)
}

func num(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// bracketed returns the gain and loss rules of a tier using the price brackets
// [50,200], (200,5000] and above 5000.
func bracketed(tier int, dir Direction, low, mid, high string) []Rule {
	return []Rule{
		{Tier: tier, Direction: dir, From: num("50"), FromIncluded: true, UpTo: num("200"), Fraction: num(low)},
		{Tier: tier, Direction: dir, From: num("200"), UpTo: num("5000"), Fraction: num(mid)},
		{Tier: tier, Direction: dir, From: num("5000"), Fraction: num(high)},
	}
}

// Rules is the board policy table, ordered by tier then direction then
// bracket. Tiers are 1-based: board input b uses tier b+1.
var Rules = concat(
	bracketed(1, Gain, "0.35", "0.25", "0.20"),
	bracketed(2, Gain, "0.35", "0.25", "0.20"),
	bracketed(2, Loss, "-0.35", "-0.25", "-0.20"),
	[]Rule{
		{Tier: 3, Direction: Gain, Fraction: num("0.10")},
		{Tier: 3, Direction: Loss, Fraction: num("-0.10")},
	},
)

func concat(tables ...[]Rule) []Rule {
	var res []Rule
	for _, t := range tables {
		res = append(res, t...)
	}
	return res
}

// Resolve returns the fraction of the rule that applies to price, moving in
// dir, on board.
func Resolve(price decimal.Decimal, dir Direction, board int) (decimal.Decimal, error) {
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("price %s: %w", price, ErrInvalidInput)
	}
	tier := board + 1
	var found []Rule
	for _, r := range Rules {
		if r.Tier == tier && r.Direction == dir && r.Contains(price) {
			found = append(found, r)
		}
	}
	if len(found) != 1 {
		return decimal.Zero, fmt.Errorf("no %s rule for price %s on board %d (%d found): %w", dir, price, board, len(found), ErrUnsupportedBoard)
	}
	return found[0].Fraction, nil
}

// LossPrice returns the lowest price reachable from price on board:
// price·(1+fraction) with the loss fraction of the board.
func LossPrice(price decimal.Decimal, board int) (decimal.Decimal, error) {
	f, err := Resolve(price, Loss, board)
	if err != nil {
		return decimal.Zero, err
	}
	return price.Mul(decimal.NewFromInt(1).Add(f)), nil
}
