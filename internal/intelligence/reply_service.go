package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/varadha/habitd/internal/catalog"
	"github.com/varadha/habitd/internal/llm"
)

// interpretAttempts is the total number of delegate calls per Interpret:
// the initial call plus exactly one retry.
const interpretAttempts = 2

type replyService struct {
	client llm.Client
	cat    *catalog.Catalog
}

// NewReplyInterpreter creates a ReplyInterpreter backed by an LLM client and
// the given habit catalog.
func NewReplyInterpreter(client llm.Client, cat *catalog.Catalog) ReplyInterpreter {
	return &replyService{client: client, cat: cat}
}

func (s *replyService) Interpret(ctx context.Context, text string) (map[string]int, error) {
	systemPrompt := buildParseSystemPrompt(s.cat)

	// Track whether any attempt produced a well-formed structure that just
	// contained nothing recognizable: that distinguishes "no habits in the
	// message" from "delegate output unusable".
	structureSeen := false

	for attempt := 0; attempt < interpretAttempts; attempt++ {
		resp, err := s.client.Generate(ctx, llm.GenerateRequest{
			Task:         llm.TaskParse,
			SystemPrompt: systemPrompt,
			UserPrompt:   text,
		})
		if err != nil {
			continue
		}

		raw, err := decodeHabits(resp.Text)
		if err != nil {
			continue
		}
		structureSeen = true

		validated := s.validate(raw)
		if len(validated) > 0 {
			return validated, nil
		}
	}

	if structureSeen {
		return nil, ErrNoHabitsDetected
	}
	return nil, ErrUnparseableReply
}

// decodeHabits parses the model output into a raw name→value map, accepting
// either a top-level "habits" field or the bare object itself.
func decodeHabits(text string) (map[string]json.Number, error) {
	envelope, err := llm.ExtractJSON[map[string]json.RawMessage](text, nil)
	if err != nil {
		return nil, err
	}

	payload := envelope
	if inner, ok := envelope["habits"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(inner, &nested); err != nil {
			return nil, fmt.Errorf("%w: habits field is not an object: %v", llm.ErrInvalidOutput, err)
		}
		payload = nested
	}

	habits := make(map[string]json.Number, len(payload))
	for name, value := range payload {
		var n json.Number
		if err := json.Unmarshal(value, &n); err != nil {
			// Non-numeric value; validation drops it rather than failing
			// the whole attempt.
			continue
		}
		habits[name] = n
	}
	return habits, nil
}

// validate drops keys outside the catalog and non-numeric or negative
// values, coercing the survivors to whole minutes.
func (s *replyService) validate(raw map[string]json.Number) map[string]int {
	out := make(map[string]int)
	for name, value := range raw {
		if _, known := s.cat.ByName(name); !known {
			continue
		}
		f, err := value.Float64()
		if err != nil {
			continue
		}
		mins := int(math.Round(f))
		if mins < 0 {
			continue
		}
		out[name] = mins
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
