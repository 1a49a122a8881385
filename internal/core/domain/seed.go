package domain

import "time"

// DefaultSlotKey is the durable slot key the portal document lives under.
const DefaultSlotKey = "friesencafe_data_v1"

// SeedDocument returns the document a portal starts with when nothing
// valid is persisted. Dates and timestamps derive from now, so the same
// instant always yields an identical document.
func SeedDocument(now time.Time) PortalDocument {
	today := FormatDate(now)
	ts := FormatTimestamp(now)

	owner := func(name string) *string { return &name }
	notes := "Erster Upload – Platzhalter. Link später ersetzen."

	return PortalDocument{
		SiteTitle:            "Friesen‑Café Statusportal",
		HeroTagline:          "Immer der aktuellste Stand – Dokumente, Beschlüsse, Nächste Schritte.",
		LastUpdatedTimestamp: ts,
		StatusEntries: []StatusEntry{
			{
				Date:   today,
				Title:  "Kickoff der Status‑Site",
				Body:   "Dieses Portal bündelt ab heute alle Updates, Entscheidungen und Anhänge zum Friesen‑Café.",
				Labels: []string{"Info", "Start"},
			},
		},
		NextActions: []ActionItem{
			{Text: "Gesprächsprotokoll 06.10. hochladen", Owner: owner("Sven")},
			{Text: "Behördenrückmeldung dokumentieren", Owner: owner("Katja")},
		},
		Documents: []DocumentRef{
			{
				Date:  today,
				Title: "Protokoll: Gespräch Katja & Merle & Silke (06.10)",
				Type:  DefaultDocumentType,
				URL:   "#",
				Notes: &notes,
			},
		},
		Changelog: []ChangeRecord{
			{Timestamp: ts, Note: "v1 erstellt (Single‑File React)."},
		},
	}
}
