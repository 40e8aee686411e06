package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saas_simulator/pkg/core/agent"
	"saas_simulator/pkg/core/llm"
	"saas_simulator/pkg/core/snapshot"
)

// fakeProvider returns canned output and records the prompts it saw.
type fakeProvider struct {
	response   string
	lastPrompt string
	lastOpts   llm.Options
	calls      int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(_ context.Context, prompt, _ string, opts llm.Options) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastOpts = opts
	return f.response, nil
}

func newFakeManager(p llm.Provider) *agent.Manager {
	mgr := agent.NewManager(agent.Config{ActiveProvider: "fake"})
	mgr.Register(p)
	return mgr
}

func TestReviewCleansMarkdownAndRendersHTML(t *testing.T) {
	fake := &fakeProvider{response: "```markdown\n# Healthy\n\nMRR is growing.\n```"}
	a := New(newFakeManager(fake), nil)

	review, err := a.Review(context.Background(), snapshot.Financials{MRR: 1450, ARR: 17400})
	require.NoError(t, err)

	assert.Equal(t, "# Healthy\n\nMRR is growing.", review.Markdown)
	assert.Contains(t, review.HTML, "<h1>")
	assert.Equal(t, "fake", review.Provider)
	assert.False(t, review.Cached)

	// The snapshot figures must reach the provider in the prompt payload.
	assert.Contains(t, fake.lastPrompt, "17400")
}

func TestRecommendRepairsSloppyModelJSON(t *testing.T) {
	// Trailing comma and a code fence: exactly what models emit.
	fake := &fakeProvider{response: "```json\n{\"recommendations\": [" +
		"{\"metric\": \"runway\", \"severity\": \"critical\", \"message\": \"Under 6 months of cash.\"}," +
		"]}\n```"}
	a := New(newFakeManager(fake), nil)

	recs, err := a.Recommend(context.Background(), snapshot.Financials{RunwayMonths: 4.2})
	require.NoError(t, err)
	require.Len(t, recs, 1)

	assert.Equal(t, "runway", recs[0].Metric)
	assert.Equal(t, "critical", recs[0].Severity)
	assert.True(t, fake.lastOpts.JSONMode, "recommendations must request JSON mode")
}

func TestReviewWithoutCacheCallsProviderEachTime(t *testing.T) {
	fake := &fakeProvider{response: "fine"}
	a := New(newFakeManager(fake), nil)

	snap := snapshot.Financials{MRR: 100}
	_, err := a.Review(context.Background(), snap)
	require.NoError(t, err)
	_, err = a.Review(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, 2, fake.calls)
}
