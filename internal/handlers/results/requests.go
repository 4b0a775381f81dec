package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/go-playground/validator/v10"

	"gitlab.com/scoreboard.net/internal/static/errs"
)

// SubmitResultRequest carries the raw submit fields; a JSON null counts as absent
type SubmitResultRequest struct {
	Name  json.RawMessage `json:"name" validate:"required"`
	Score json.RawMessage `json:"score" validate:"required"`
}

// SubmitResultResponse represents a response to a submit request
type SubmitResultResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// decodeSubmitRequest reads a JSON object body into a request. Anything that is
// not a single object, including an empty body or trailing data, is reported
// as missing fields.
func decodeSubmitRequest(body io.Reader, validate *validator.Validate) (*SubmitResultRequest, error) {
	dec := json.NewDecoder(body)

	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return nil, errs.ErrMissingField
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errs.ErrMissingField
	}

	req := &SubmitResultRequest{
		Name:  nonNull(fields["name"]),
		Score: fields["score"],
	}
	if err := validate.Struct(req); err != nil {
		return nil, errs.ErrMissingField
	}
	return req, nil
}

// Parse converts the raw fields to a name and a score
func (r *SubmitResultRequest) Parse() (string, int32, error) {
	var name string
	if err := json.Unmarshal(r.Name, &name); err != nil {
		return "", 0, errs.ErrInvalidScore
	}

	score, err := ParseScore(r.Score)
	if err != nil {
		return "", 0, err
	}
	return name, score, nil
}

func nonNull(raw json.RawMessage) json.RawMessage {
	if raw == nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}
