// Package export writes ranked reports to CSV for spreadsheet review.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"keyword-insights/internal/common/errors"
	"keyword-insights/internal/models"
)

var header = []string{
	"rank", "query", "impressions", "clicks", "ctr", "position",
	"expected_ctr", "ctr_gap",
	"position_score", "volume_score", "ctr_gap_score", "traffic_potential_score",
	"opportunity_score", "opportunity_type", "priority",
	"estimated_additional_clicks", "intent_category",
}

// Write streams the ranked entries as CSV. The intent column is empty for
// channels that do not classify intent.
func Write(w io.Writer, report *models.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return err
	}
	for _, o := range report.Opportunities {
		intentCol := ""
		if o.IntentCategory != nil {
			intentCol = string(*o.IntentCategory)
		}
		row := []string{
			strconv.Itoa(o.Rank),
			o.Query,
			strconv.Itoa(o.Impressions),
			strconv.Itoa(o.Clicks),
			formatFloat(o.CTR),
			formatFloat(o.Position),
			formatFloat(o.ExpectedCTR),
			formatFloat(o.CTRGap),
			formatFloat(o.PositionScore),
			formatFloat(o.VolumeScore),
			formatFloat(o.CTRGapScore),
			formatFloat(o.TrafficPotentialScore),
			formatFloat(o.OpportunityScore),
			string(o.OpportunityType),
			string(o.Priority),
			formatFloat(o.EstimatedAdditionalClicks),
			intentCol,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the report under dir with a channel-and-date stamped
// name, creating dir as needed, and returns the full path.
func WriteFile(dir string, report *models.Report, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.NewExportFailedError(dir, err)
	}

	name := fmt.Sprintf("keyword_opportunities_%s_%s.csv", report.Channel, now.Format("2006-01-02"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.NewExportFailedError(path, err)
	}
	defer f.Close()

	if err := Write(f, report); err != nil {
		return "", errors.NewExportFailedError(path, err)
	}
	return path, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
