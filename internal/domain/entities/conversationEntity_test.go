package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionKeyFallsBackToCallSID(t *testing.T) {
	s := &ConversationSession{BusinessID: "biz", CallSID: "CA1"}
	assert.Equal(t, "biz:CA1", s.Key())

	legacy := &ConversationSession{CallSID: "CA1"}
	assert.Equal(t, "CA1", legacy.Key())
}

func TestMergeSignalIsMonotonic(t *testing.T) {
	s := &ConversationSession{}

	s.MergeSignal(LeadSignal{
		HasEmergency: true,
		ServiceType:  "heating",
		ContactName:  "John Smith",
		Urgency:      UrgencyEmergency,
	})

	// A later bland utterance must not clear anything.
	s.MergeSignal(LeadSignal{Urgency: UrgencyNormal})

	assert.True(t, s.Lead.HasEmergency)
	assert.Equal(t, "heating", s.Lead.ServiceType)
	assert.Equal(t, "John Smith", s.Lead.ContactName)
	assert.Equal(t, UrgencyEmergency, s.Lead.Urgency)
}

func TestMergeSignalKeepsFirstServiceType(t *testing.T) {
	s := &ConversationSession{}

	s.MergeSignal(LeadSignal{ServiceType: "repair"})
	s.MergeSignal(LeadSignal{ServiceType: "installation"})

	assert.Equal(t, "repair", s.Lead.ServiceType)
}

func TestMergeSignalRaisesUrgency(t *testing.T) {
	s := &ConversationSession{}

	s.MergeSignal(LeadSignal{Urgency: UrgencyHigh})
	assert.Equal(t, UrgencyHigh, s.Lead.Urgency)

	s.MergeSignal(LeadSignal{Urgency: UrgencyCritical})
	assert.Equal(t, UrgencyCritical, s.Lead.Urgency)
}

func TestUrgencyOrdering(t *testing.T) {
	assert.Less(t, UrgencyNormal.Rank(), UrgencyHigh.Rank())
	assert.Less(t, UrgencyHigh.Rank(), UrgencyEmergency.Rank())
	assert.Less(t, UrgencyEmergency.Rank(), UrgencyCritical.Rank())

	assert.Equal(t, UrgencyEmergency, MaxUrgency(UrgencyEmergency, UrgencyHigh))
	assert.Equal(t, UrgencyCritical, MaxUrgency(UrgencyHigh, UrgencyCritical))
}
