package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/klokku/docket/pkg/event"
	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderStats(stats StatsSummary) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderStats writes the category counts followed by the upcoming agenda.
func (t *CsvStatsRendererImpl) RenderStats(stats StatsSummary) (string, error) {
	data := [][]string{
		{"Category", "Scheduled"},
		{event.Hearing.Label(), strconv.Itoa(stats.Counts.Hearings)},
		{event.Deadline.Label(), strconv.Itoa(stats.Counts.Deadlines)},
		{event.Consultation.Label(), strconv.Itoa(stats.Counts.Consultations)},
		{event.Meeting.Label(), strconv.Itoa(stats.Counts.Meetings)},
		{event.Internal.Label(), strconv.Itoa(stats.Counts.Internal)},
		{"Total", strconv.Itoa(stats.Counts.Total)},
		{},
		{"Date", "Start", "End", "Title", "Category", "Case", "Client", "Priority"},
	}
	for _, e := range stats.Upcoming {
		data = append(data, []string{
			e.Date.Format("02/01/2006"),
			e.StartTime,
			e.EndTime,
			e.Title,
			e.Category.Label(),
			e.CaseNumber,
			e.Client,
			string(e.Priority),
		})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
