package grammar

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
)

var (
	// ErrOverflow is returned when a literal or a sum does not fit in 64 bits.
	ErrOverflow = errors.New("overflow detected")

	// ErrInvalidLiteral is returned for an integer literal that cannot be parsed.
	ErrInvalidLiteral = errors.New("invalid integer literal")
)

// ParseLiteral converts the text of an Integer token to its value.
func ParseLiteral(text string) (uint64, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: empty literal", ErrInvalidLiteral)
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: literal %s does not fit in 64 bits", ErrOverflow, text)
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidLiteral, text)
	}
	return v, nil
}

// CheckedAdd adds two operands, reporting ErrOverflow instead of wrapping.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Eval folds the chain left to right.
func (e *Expr) Eval() (uint64, error) {
	sum, err := e.Head.Eval()
	if err != nil {
		return 0, err
	}
	for _, t := range e.Tail {
		v, err := t.Eval()
		if err != nil {
			return 0, err
		}
		if sum, err = CheckedAdd(sum, v); err != nil {
			return 0, err
		}
	}
	return sum, nil
}

func (t *Term) Eval() (uint64, error) {
	return t.Factor.Eval()
}

func (f *Factor) Eval() (uint64, error) {
	if f.Parens != nil {
		return f.Parens.Eval()
	}
	if f.Integer == nil {
		return 0, fmt.Errorf("%w: missing literal", ErrInvalidLiteral)
	}
	return ParseLiteral(*f.Integer)
}
