package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voiceagent_turns_total",
		Help: "Completed conversation turns by outcome",
	}, []string{"outcome"})

	EmergenciesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voiceagent_emergencies_total",
		Help: "Turns whose utterance flagged an emergency",
	})

	LowConfidenceTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voiceagent_low_confidence_total",
		Help: "Utterances rejected below the recognition confidence floor",
	})

	LLMFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voiceagent_llm_failures_total",
		Help: "Chat-completion failures by error kind",
	}, []string{"kind"})

	SynthFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voiceagent_synth_failures_total",
		Help: "Speech synthesis or audio upload failures",
	})

	FallbackSessionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "voiceagent_fallback_sessions_total",
		Help: "Sessions served from the in-memory fallback store",
	})
)
