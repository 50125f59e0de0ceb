package roundexport

import (
	"bytes"
	"image/png"
	"testing"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func sampleRound() *roundtypes.Round {
	tag := 5
	return &roundtypes.Round{
		ID:       3,
		Title:    "League Night",
		Location: "Riverside",
		Date:     "2026-10-22",
		Time:     "18:00",
		State:    roundtypes.RoundStateInProgress,
		Participants: []roundtypes.Participant{
			{MemberID: "u1", Response: roundtypes.ResponseAccept, TagNumber: &tag},
			{MemberID: "u2", Response: roundtypes.ResponseTentative},
		},
		Scores: []roundtypes.Score{
			{MemberID: "u1", Score: -3},
			{MemberID: "u9", Score: 4},
		},
	}
}

func TestWriteScorecard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScorecard(&buf, sampleRound()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(scorecardSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "League Night", rows[0][0])
	assert.Equal(t, []string{"Member", "Response", "Tag", "Score"}, rows[2])
	assert.Equal(t, []string{"u1", "ACCEPT", "5", "-3"}, rows[3])
	assert.Equal(t, []string{"u2", "TENTATIVE"}, rows[4])
	assert.Equal(t, []string{"u9", "", "", "4"}, rows[5])
}

func TestWriteScoreChart(t *testing.T) {
	t.Run("with scores", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteScoreChart(&buf, sampleRound()))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
	})

	t.Run("no scores renders placeholder", func(t *testing.T) {
		round := sampleRound()
		round.Scores = nil
		var buf bytes.Buffer
		require.NoError(t, WriteScoreChart(&buf, round))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))

		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 400, img.Bounds().Dx())
		assert.Equal(t, 200, img.Bounds().Dy())
	})

	t.Run("single zero score", func(t *testing.T) {
		round := sampleRound()
		round.Scores = []roundtypes.Score{{MemberID: "u1", Score: 0}}
		var buf bytes.Buffer
		require.NoError(t, WriteScoreChart(&buf, round))
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
	})
}
