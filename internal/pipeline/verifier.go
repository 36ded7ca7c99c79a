// Package pipeline turns a free-text claim into a verified-or-unverifiable
// answer by trying ordered upstream providers. Failure of an earlier
// provider never aborts the pipeline; it only removes that provider's
// contribution. Only exhaustion of an entire stage becomes visible to the
// user, and even then as a fixed degraded reply, never as an error.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/myaifactchecker/whatsapp-relay-go/internal/provider"
)

const maxSources = 5

type Verdict struct {
	Text     string
	Sources  []string
	Degraded bool
}

// Attempt records one provider call within a single reply composition.
// Attempts are transient: they are logged and then discarded.
type Attempt struct {
	Provider string
	Outcome  string // success | error
}

type Verifier struct {
	searchers    []provider.SearchProvider
	synthesizers []provider.SynthesisProvider
}

func NewVerifier(searchers []provider.SearchProvider, synthesizers []provider.SynthesisProvider) *Verifier {
	return &Verifier{
		searchers:    searchers,
		synthesizers: synthesizers,
	}
}

// Verify maps a claim to a verdict. It always returns a usable reply:
// provider failures degrade the result, they never propagate.
func (v *Verifier) Verify(ctx context.Context, claim string) Verdict {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return Verdict{Text: emptyClaimMessage}
	}

	// The state machine catches small talk before invoking the pipeline;
	// this second check keeps provider latency off pleasantries even when
	// the pipeline is called directly.
	if IsSmallTalk(claim) {
		return Verdict{Text: SmallTalkReply(claim)}
	}

	evidence, sources, searchDegraded := v.gatherEvidence(ctx, claim)
	text, synthDegraded := v.synthesize(ctx, claim, evidence)

	if synthDegraded {
		// Terminal degradation: fixed apology, no sources.
		return Verdict{Text: apologyMessage, Degraded: true}
	}

	return Verdict{
		Text:     text,
		Sources:  sources,
		Degraded: searchDegraded,
	}
}

// gatherEvidence tries each search provider in order and builds a textual
// context block from the first one that answers. Exhaustion yields an
// explicit no-results context rather than an abort.
func (v *Verifier) gatherEvidence(ctx context.Context, claim string) (string, []string, bool) {
	var attempts []Attempt

	for _, s := range v.searchers {
		results, err := s.Search(ctx, claim)
		if err != nil {
			attempts = append(attempts, Attempt{Provider: s.Name(), Outcome: "error"})
			log.Warn().Err(err).Str("provider", s.Name()).Msg("search provider failed, trying next")
			continue
		}
		attempts = append(attempts, Attempt{Provider: s.Name(), Outcome: "success"})

		block, sources := buildEvidence(results)
		logAttempts("evidence", attempts)
		return block, sources, false
	}

	logAttempts("evidence", attempts)
	return noEvidenceContext, nil, true
}

// synthesize runs the fixed verification prompt through the LLM chain.
// The second return value reports terminal degradation (all providers failed).
func (v *Verifier) synthesize(ctx context.Context, claim, evidence string) (string, bool) {
	userPrompt := fmt.Sprintf("Evidence:\n%s\n\nClaim to verify:\n%s", evidence, claim)

	var attempts []Attempt
	for _, g := range v.synthesizers {
		text, err := g.Generate(ctx, verifierSystemPrompt, userPrompt)
		if err != nil {
			attempts = append(attempts, Attempt{Provider: g.Name(), Outcome: "error"})
			log.Warn().Err(err).Str("provider", g.Name()).Msg("synthesis provider failed, trying next")
			continue
		}
		attempts = append(attempts, Attempt{Provider: g.Name(), Outcome: "success"})
		logAttempts("synthesis", attempts)
		return strings.TrimSpace(text), false
	}

	logAttempts("synthesis", attempts)
	return "", true
}

// buildEvidence caps sources at maxSources, preserving discovery order and
// dropping duplicate URLs.
func buildEvidence(results []provider.SearchResult) (string, []string) {
	if len(results) == 0 {
		return noEvidenceContext, nil
	}

	var b strings.Builder
	seen := make(map[string]bool)
	var sources []string

	for _, r := range results {
		fmt.Fprintf(&b, "- %s: %s\n", r.Title, r.Snippet)
		if r.URL == "" || seen[r.URL] || len(sources) >= maxSources {
			continue
		}
		seen[r.URL] = true
		sources = append(sources, r.URL)
	}

	return b.String(), sources
}

func logAttempts(stage string, attempts []Attempt) {
	for _, a := range attempts {
		log.Debug().
			Str("stage", stage).
			Str("provider", a.Provider).
			Str("outcome", a.Outcome).
			Msg("provider attempt")
	}
}
