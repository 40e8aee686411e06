// Package advisor turns a financial snapshot into natural-language analyst
// commentary and a structured recommendation list. It sits outside the
// simulation engine: the engine only produces the snapshot object and is
// indifferent to what this package does with it.
package advisor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"saas_simulator/pkg/core/agent"
	"saas_simulator/pkg/core/llm"
	"saas_simulator/pkg/core/prompt"
	"saas_simulator/pkg/core/snapshot"
	"saas_simulator/pkg/core/utils"
)

// Roles used for provider selection in config/models.yaml.
const (
	RoleAdvisor     = "advisor"
	RoleRecommender = "recommender"
)

// Prompt template IDs, loadable from resources/prompts/advisory.
const (
	promptReview         = "advisory.snapshot_review"
	promptRecommendation = "advisory.recommendations"
)

// Review is the advisory prose for one snapshot.
type Review struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
	Provider string `json:"provider"`
	Cached   bool   `json:"cached"`
}

// Recommendation is one structured suggestion parsed from the model's JSON.
type Recommendation struct {
	Metric   string `json:"metric"`
	Severity string `json:"severity"` // "info", "warn", "critical"
	Message  string `json:"message"`
}

// Advisor binds the provider manager and the optional response cache.
type Advisor struct {
	mgr   *agent.Manager
	cache *Cache
}

// New creates an advisor. cache may be nil to disable caching.
func New(mgr *agent.Manager, cache *Cache) *Advisor {
	return &Advisor{mgr: mgr, cache: cache}
}

// Review asks the configured provider for analyst commentary on the
// snapshot. Identical snapshots hit the cache instead of the provider.
func (a *Advisor) Review(ctx context.Context, snap snapshot.Financials) (*Review, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	providerName := a.mgr.ProviderFor(RoleAdvisor).Name()
	key := cacheKey("review", providerName, payload)

	if cached, ok := a.cache.Get(ctx, key); ok {
		return &Review{
			Markdown: cached,
			HTML:     utils.RenderMarkdown(cached),
			Provider: providerName,
			Cached:   true,
		}, nil
	}

	system, user := a.renderReviewPrompt(string(payload))
	raw, err := a.mgr.Generate(ctx, RoleAdvisor, user, system, llm.Options{})
	if err != nil {
		return nil, fmt.Errorf("advisory generation failed: %w", err)
	}

	markdown := utils.CleanMarkdown(raw)
	a.cache.Set(ctx, key, markdown)

	return &Review{
		Markdown: markdown,
		HTML:     utils.RenderMarkdown(markdown),
		Provider: providerName,
	}, nil
}

// Recommend asks for a structured recommendation list in JSON mode and
// repairs whatever the model sends back before decoding it.
func (a *Advisor) Recommend(ctx context.Context, snap snapshot.Financials) ([]Recommendation, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	system, user := a.renderRecommendationPrompt(string(payload))
	raw, err := a.mgr.Generate(ctx, RoleRecommender, user, system, llm.Options{JSONMode: true})
	if err != nil {
		return nil, fmt.Errorf("recommendation generation failed: %w", err)
	}

	var parsed struct {
		Recommendations []Recommendation `json:"recommendations"`
	}
	if err := utils.DecodeModelJSON(raw, &parsed); err != nil {
		return nil, fmt.Errorf("could not parse recommendations: %w", err)
	}
	return parsed.Recommendations, nil
}

func (a *Advisor) renderReviewPrompt(snapshotJSON string) (system, user string) {
	system, user, err := prompt.Get().Render(promptReview, map[string]interface{}{
		"SnapshotJSON": snapshotJSON,
	})
	if err == nil {
		return system, user
	}
	// Hardcoded fallback when the resources directory is missing.
	system = "You are a pragmatic SaaS CFO. Review the unit economics you are given. " +
		"Be direct about weaknesses, note sentinel values (999, 99999) as unbounded ratios, " +
		"and answer in Markdown."
	user = "Here is the current financial snapshot of a SaaS business as JSON:\n\n" +
		snapshotJSON + "\n\nWrite a short review: headline health, the two biggest risks, and what to fix first."
	return system, user
}

func (a *Advisor) renderRecommendationPrompt(snapshotJSON string) (system, user string) {
	system, user, err := prompt.Get().Render(promptRecommendation, map[string]interface{}{
		"SnapshotJSON": snapshotJSON,
	})
	if err == nil {
		return system, user
	}
	system = "You are a SaaS metrics analyst. Respond with a JSON object only."
	user = "Given this snapshot:\n\n" + snapshotJSON + "\n\nReturn {\"recommendations\": [{\"metric\", \"severity\", \"message\"}]} " +
		"with severity one of info/warn/critical, at most five entries."
	return system, user
}

func cacheKey(kind, provider string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return "advisor:" + kind + ":" + provider + ":" + hex.EncodeToString(sum[:])
}
