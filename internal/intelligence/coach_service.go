package intelligence

import (
	"context"
	"strings"

	"github.com/varadha/habitd/internal/catalog"
	"github.com/varadha/habitd/internal/llm"
	"github.com/varadha/habitd/internal/stats"
)

// FallbackRecommendations is the static set used when the model cannot
// produce weekly recommendations.
const FallbackRecommendations = "1. Keep up with your most consistent habits\n" +
	"2. Try to add one more habit each day\n" +
	"3. Don't break the streak on your top habits"

type coachService struct {
	client llm.Client
	cat    *catalog.Catalog
}

// NewCoach creates a Coach backed by an LLM client. Generation failures are
// absorbed into the static fallback; callers never see them.
func NewCoach(client llm.Client, cat *catalog.Catalog) Coach {
	return &coachService{client: client, cat: cat}
}

func (s *coachService) Recommend(ctx context.Context, week stats.WeekSummary) string {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskRecommend,
		SystemPrompt: recommendSystemPrompt,
		UserPrompt:   buildWeekPrompt(week, s.cat.DailyTarget()),
	})
	if err != nil {
		return FallbackRecommendations
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return FallbackRecommendations
	}
	return text
}
