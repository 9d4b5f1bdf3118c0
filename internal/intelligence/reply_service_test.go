package intelligence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varadha/habitd/internal/catalog"
	"github.com/varadha/habitd/internal/llm"
)

// scriptedClient returns canned responses in order, repeating the last one,
// and counts calls.
type scriptedClient struct {
	responses []string
	err       error
	calls     int
}

func (m *scriptedClient) Generate(_ context.Context, _ llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	idx := m.calls - 1
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return &llm.GenerateResponse{Text: m.responses[idx], Model: "gemini-2.0-flash"}, nil
}

func TestInterpret_SimpleReply(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"habits": {"Walking/Running": 45, "Cook Morning": 30}}`,
	}}
	svc := NewReplyInterpreter(client, catalog.Default())

	result, err := svc.Interpret(context.Background(), "walked 45, cooked 30")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Walking/Running": 45, "Cook Morning": 30}, result)
	assert.Equal(t, 1, client.calls)
}

func TestInterpret_BareObjectWithoutHabitsField(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"Sandhi - Morning": 10, "Sandhi - Evening": 5}`,
	}}
	svc := NewReplyInterpreter(client, catalog.Default())

	result, err := svc.Interpret(context.Background(), "sandhi both")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Sandhi - Morning": 10, "Sandhi - Evening": 5}, result)
}

func TestInterpret_MarkdownWrapping(t *testing.T) {
	client := &scriptedClient{responses: []string{
		"```json\n{\"habits\": {\"Walking/Running\": 30}}\n```",
	}}
	svc := NewReplyInterpreter(client, catalog.Default())

	result, err := svc.Interpret(context.Background(), "walked 30")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Walking/Running": 30}, result)
}

func TestInterpret_FiltersUnknownHabitsAndJunkValues(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"habits": {"Walking/Running": 45, "Meditation": 20, "Invalid Habit": 10, "Yoga": "fifteen"}}`,
	}}
	svc := NewReplyInterpreter(client, catalog.Default())

	result, err := svc.Interpret(context.Background(), "walked 45, meditated 20")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Walking/Running": 45}, result)
	assert.NotContains(t, result, "Meditation")
	assert.NotContains(t, result, "Invalid Habit")
	assert.NotContains(t, result, "Yoga")
}

func TestInterpret_CoercesFractionalMinutes(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"habits": {"Walking/Running": 45.6, "Yoga": -5}}`,
	}}
	svc := NewReplyInterpreter(client, catalog.Default())

	result, err := svc.Interpret(context.Background(), "walked for a while")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Walking/Running": 46}, result)
}

func TestInterpret_InvalidResponseRetriesExactlyOnce(t *testing.T) {
	client := &scriptedClient{responses: []string{"not valid json"}}
	svc := NewReplyInterpreter(client, catalog.Default())

	_, err := svc.Interpret(context.Background(), "gibberish input")

	assert.ErrorIs(t, err, ErrUnparseableReply)
	assert.Equal(t, 2, client.calls)
}

func TestInterpret_GenerateErrorRetriesExactlyOnce(t *testing.T) {
	client := &scriptedClient{err: llm.ErrUnavailable}
	svc := NewReplyInterpreter(client, catalog.Default())

	_, err := svc.Interpret(context.Background(), "walked 45")

	assert.ErrorIs(t, err, ErrUnparseableReply)
	assert.Equal(t, 2, client.calls)
}

func TestInterpret_SecondAttemptSucceeds(t *testing.T) {
	client := &scriptedClient{responses: []string{
		"sorry, no JSON here",
		`{"habits": {"Yoga": 15}}`,
	}}
	svc := NewReplyInterpreter(client, catalog.Default())

	result, err := svc.Interpret(context.Background(), "yoga")

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Yoga": 15}, result)
	assert.Equal(t, 2, client.calls)
}

func TestInterpret_RecognizedStructureWithNothingUsable(t *testing.T) {
	client := &scriptedClient{responses: []string{`{"habits": {}}`}}
	svc := NewReplyInterpreter(client, catalog.Default())

	_, err := svc.Interpret(context.Background(), "hello there")

	assert.ErrorIs(t, err, ErrNoHabitsDetected)
	assert.Equal(t, 2, client.calls)
}

func TestInterpret_FullMessage(t *testing.T) {
	client := &scriptedClient{responses: []string{
		`{"habits": {"Walking/Running": 45, "Sandhi - Morning": 10, "Sandhi - Evening": 5,
		"Daily Brief": 20, "Cook Morning": 30, "Utensils": 15, "Clothes": 15, "Audiobooks/Reading": 20}}`,
	}}
	svc := NewReplyInterpreter(client, catalog.Default())

	result, err := svc.Interpret(context.Background(),
		"walked 45, sandhi both, brief 20, cooked, utensils, clothes, read 20")

	require.NoError(t, err)
	assert.Len(t, result, 8)
	assert.Equal(t, 45, result["Walking/Running"])
	assert.Equal(t, 10, result["Sandhi - Morning"])
	assert.Equal(t, 5, result["Sandhi - Evening"])
	assert.Equal(t, 20, result["Audiobooks/Reading"])
}

func TestBuildParseSystemPrompt_ReflectsCatalog(t *testing.T) {
	prompt := buildParseSystemPrompt(catalog.Default())

	assert.Contains(t, prompt, "Walking/Running: 45 min")
	assert.Contains(t, prompt, "aliases: walk, walked")
	assert.Contains(t, prompt, `"sandhi both" means Sandhi - Morning (10) + Sandhi - Evening (5)`)
	assert.Contains(t, prompt, `"household" means Cook Morning (30) + Utensils (15) + Clothes (15)`)
	assert.Contains(t, prompt, `{"habits": {"Habit Name": minutes, ...}}`)
}
