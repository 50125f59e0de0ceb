package roundtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseValid(t *testing.T) {
	tests := []struct {
		in   Response
		want bool
	}{
		{ResponseAccept, true},
		{ResponseTentative, true},
		{ResponseDecline, true},
		{"MAYBE", false},
		{"accept", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Valid())
		})
	}
}

func TestRoundLookups(t *testing.T) {
	r := &Round{
		State: RoundStateUpcoming,
		Participants: []Participant{
			{MemberID: "u1", Response: ResponseAccept},
			{MemberID: "u2", Response: ResponseDecline},
		},
		Scores: []Score{{MemberID: "u2", Score: 54}},
	}

	assert.True(t, r.IsUpcoming())
	assert.False(t, r.IsInProgress())
	assert.Equal(t, 1, r.FindParticipant("u2"))
	assert.Equal(t, -1, r.FindParticipant("u3"))
	assert.True(t, r.HasScore("u2"))
	assert.False(t, r.HasScore("u1"))
	assert.Equal(t, "42", RoundID(42).String())
}
