package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"gitlab.com/scoreboard.net/internal/static/errs"
)

// ParseScore converts a raw JSON value to a score the way int() would:
// integers as-is, other numbers truncated toward zero, decimal strings with
// optional sign, surrounding whitespace and "_" digit separators, booleans as 1/0.
// The result must fit the 32-bit score column.
func ParseScore(raw json.RawMessage) (int32, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, errs.ErrInvalidScore
	}

	var (
		value int64
		err   error
	)
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, errs.ErrInvalidScore
		}
		value, err = parseIntLiteral(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return 0, errs.ErrInvalidScore
		}
		if b {
			value = 1
		}
	case 'n', '[', '{':
		return 0, errs.ErrInvalidScore
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, errs.ErrInvalidScore
		}
		value, err = parseNumber(n)
	}
	if err != nil {
		return 0, err
	}

	if value < math.MinInt32 || value > math.MaxInt32 {
		return 0, errs.ErrScoreOutOfRange
	}
	return int32(value), nil
}

func parseNumber(n json.Number) (int64, error) {
	if v, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return v, nil
	}

	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errs.ErrScoreOutOfRange
		}
		return 0, errs.ErrInvalidScore
	}
	f = math.Trunc(f)
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, errs.ErrScoreOutOfRange
	}
	return int64(f), nil
}

func parseIntLiteral(s string) (int64, error) {
	s = strings.TrimSpace(s)

	sign, body := "", s
	if body != "" && (body[0] == '+' || body[0] == '-') {
		sign, body = body[:1], body[1:]
	}
	if body == "" || body[0] == '_' || body[len(body)-1] == '_' || strings.Contains(body, "__") {
		return 0, errs.ErrInvalidScore
	}
	for i := 0; i < len(body); i++ {
		if c := body[i]; c != '_' && (c < '0' || c > '9') {
			return 0, errs.ErrInvalidScore
		}
	}

	v, err := strconv.ParseInt(sign+strings.ReplaceAll(body, "_", ""), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errs.ErrScoreOutOfRange
		}
		return 0, errs.ErrInvalidScore
	}
	return v, nil
}
