// Package seed fills the event repository at startup, either with the
// built-in demo calendar or with events read from a YAML fixture.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/klokku/docket/pkg/event"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrInvalidFixture = errors.New("invalid seed fixture")

type Creator interface {
	Create(ctx context.Context, draft event.Draft) event.Event
}

type fixture struct {
	Events []fixtureEvent `yaml:"events"`
}

type fixtureEvent struct {
	Title      string   `yaml:"title"`
	Category   string   `yaml:"category"`
	Date       string   `yaml:"date"`
	StartTime  string   `yaml:"startTime"`
	EndTime    string   `yaml:"endTime"`
	Location   string   `yaml:"location"`
	IsVirtual  bool     `yaml:"isVirtual"`
	CaseNumber string   `yaml:"caseNumber"`
	Client     string   `yaml:"client"`
	Attendees  []string `yaml:"attendees"`
	Status     string   `yaml:"status"`
	Priority   string   `yaml:"priority"`
	Notes      string   `yaml:"notes"`
}

// Parse decodes a fixture document. Missing fields get the usual creation
// defaults on insert; present enumeration values and dates must be valid.
func Parse(data []byte) ([]event.Draft, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}
	drafts := make([]event.Draft, 0, len(f.Events))
	for i, fe := range f.Events {
		draft, err := event.DTOToDraft(event.EventDTO{
			Title:      fe.Title,
			Category:   fe.Category,
			Date:       fe.Date,
			StartTime:  fe.StartTime,
			EndTime:    fe.EndTime,
			Location:   fe.Location,
			IsVirtual:  fe.IsVirtual,
			CaseNumber: fe.CaseNumber,
			Client:     fe.Client,
			Attendees:  fe.Attendees,
			Status:     fe.Status,
			Priority:   fe.Priority,
			Notes:      fe.Notes,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: event #%d: %w", ErrInvalidFixture, i+1, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func LoadFile(path string) ([]event.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed fixture %s: %w", path, err)
	}
	return Parse(data)
}

// Insert creates every draft in order and returns the created events.
func Insert(ctx context.Context, events Creator, drafts []event.Draft) []event.Event {
	created := make([]event.Event, 0, len(drafts))
	for _, d := range drafts {
		created = append(created, events.Create(ctx, d))
	}
	log.Infof("Seeded %d events", len(created))
	return created
}

// Demo returns the drafts of the demo calendar, a week of February 2026.
func Demo() []event.Draft {
	drafts := make([]event.Draft, 0, len(demoEvents))
	for _, e := range demoEvents {
		drafts = append(drafts, event.DraftFrom(e))
	}
	return drafts
}

func feb(day int) time.Time {
	return time.Date(2026, time.February, day, 0, 0, 0, 0, time.Local)
}

var demoEvents = []event.Event{
	{
		Title:     "Initial Consultation - New Estate Planning Client",
		Category:  event.Consultation,
		Date:      feb(5),
		StartTime: "9:00 AM",
		EndTime:   "10:00 AM",
		Location:  "Conference Room A",
		Client:    "Robert Williams",
		Attendees: []string{"Sarah Mitchell", "Alex Rodriguez"},
		Status:    event.Scheduled,
		Priority:  event.High,
		Notes:     "High-value estate, complex family structure",
	},
	{
		Title:      "Court Hearing - Johnson v. State",
		Category:   event.Hearing,
		Date:       feb(5),
		StartTime:  "2:00 PM",
		EndTime:    "4:00 PM",
		Location:   "District Court, Room 403",
		CaseNumber: "CAS-2026-001",
		Client:     "John Johnson",
		Attendees:  []string{"Sarah Mitchell", "Alex Rodriguez", "Judge Thompson"},
		Status:     event.Scheduled,
		Priority:   event.High,
		Notes:      "Final hearing for estate distribution",
	},
	{
		Title:     "Partner Strategy Meeting",
		Category:  event.Internal,
		Date:      feb(5),
		StartTime: "4:30 PM",
		EndTime:   "5:30 PM",
		IsVirtual: true,
		Attendees: []string{"All Partners", "Senior Associates"},
		Status:    event.Scheduled,
		Priority:  event.Medium,
		Notes:     "Q1 review and planning",
	},
	{
		Title:      "Contract Filing Deadline - TechCo Merger",
		Category:   event.Deadline,
		Date:       feb(7),
		StartTime:  "5:00 PM",
		EndTime:    "5:00 PM",
		CaseNumber: "CAS-2026-003",
		Client:     "TechCo Industries",
		Status:     event.Scheduled,
		Priority:   event.High,
		Notes:      "SEC filing deadline - critical",
	},
	{
		Title:      "Client Deposition - Smith Contract Dispute",
		Category:   event.Consultation,
		Date:       feb(8),
		StartTime:  "10:00 AM",
		EndTime:    "1:00 PM",
		Location:   "Main Conference Room",
		CaseNumber: "CAS-2025-087",
		Client:     "Smith LLC",
		Attendees:  []string{"Michael Chen", "Alex Rodriguez", "Opposing Counsel", "Court Reporter"},
		Status:     event.Scheduled,
		Priority:   event.High,
		Notes:      "Key witness testimony",
	},
	{
		Title:      "Team Case Review Meeting",
		Category:   event.Meeting,
		Date:       feb(6),
		StartTime:  "11:00 AM",
		EndTime:    "12:00 PM",
		Location:   "Conference Room B",
		CaseNumber: "CAS-2026-001",
		Attendees:  []string{"Sarah Mitchell", "Alex Rodriguez", "Paralegal Team"},
		Status:     event.Scheduled,
		Priority:   event.Medium,
		Notes:      "Weekly case status update",
	},
	{
		Title:      "Mediation Session - Corporate Dispute",
		Category:   event.Hearing,
		Date:       feb(10),
		StartTime:  "9:00 AM",
		EndTime:    "12:00 PM",
		Location:   "Mediation Center, Suite 200",
		CaseNumber: "CAS-2026-004",
		Client:     "Anderson Corp",
		Attendees:  []string{"Sarah Mitchell", "Mediator", "Opposing Counsel"},
		Status:     event.Scheduled,
		Priority:   event.High,
		Notes:      "Settlement negotiation attempt",
	},
	{
		Title:     "Bar Association Networking Event",
		Category:  event.Internal,
		Date:      feb(12),
		StartTime: "6:00 PM",
		EndTime:   "9:00 PM",
		Location:  "Grand Hotel Ballroom",
		Status:    event.Scheduled,
		Priority:  event.Low,
		Notes:     "Annual mixer and CLE opportunity",
	},
}
