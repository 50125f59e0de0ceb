package roundexport

import (
	"fmt"
	"io"
	"strconv"

	roundtypes "github.com/Black-And-White-Club/frolf-rounds/app/modules/round/domain/types"
	"github.com/xuri/excelize/v2"
)

const scorecardSheet = "Scorecard"

var scorecardHeader = []any{"Member", "Response", "Tag", "Score"}

// WriteScorecard writes an XLSX workbook listing every participant with their
// response, tag and score. Members who scored without joining are listed after
// the participants.
func WriteScorecard(w io.Writer, round *roundtypes.Round) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scorecardSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(scorecardSheet, "A1", &[]any{round.Title, round.Location, round.Date, round.Time}); err != nil {
		return fmt.Errorf("failed to write title row: %w", err)
	}
	if err := f.SetSheetRow(scorecardSheet, "A3", &scorecardHeader); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	scores := make(map[roundtypes.MemberID]roundtypes.Score, len(round.Scores))
	for _, sc := range round.Scores {
		scores[sc.MemberID] = sc
	}

	row := 4
	for _, p := range round.Participants {
		values := []any{string(p.MemberID), string(p.Response), tagCell(p.TagNumber), ""}
		if sc, ok := scores[p.MemberID]; ok {
			values[3] = sc.Score
			delete(scores, p.MemberID)
		}
		if err := writeRow(f, row, values); err != nil {
			return err
		}
		row++
	}

	for _, sc := range round.Scores {
		if _, pending := scores[sc.MemberID]; !pending {
			continue
		}
		if err := writeRow(f, row, []any{string(sc.MemberID), "", tagCell(sc.TagNumber), sc.Score}); err != nil {
			return err
		}
		row++
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", row, err)
	}
	if err := f.SetSheetRow(scorecardSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func tagCell(tag *int) string {
	if tag == nil {
		return ""
	}
	return strconv.Itoa(*tag)
}
