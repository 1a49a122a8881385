package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDocument_Shape(t *testing.T) {
	doc := SeedDocument(testNow)

	assert.Equal(t, "Friesen‑Café Statusportal", doc.SiteTitle)
	assert.NotEmpty(t, doc.HeroTagline)
	assert.Equal(t, "2024-03-05T09:30:15.123Z", doc.LastUpdatedTimestamp)

	require.Len(t, doc.StatusEntries, 1)
	assert.Equal(t, "2024-03-05", doc.StatusEntries[0].Date)
	assert.Equal(t, []string{"Info", "Start"}, doc.StatusEntries[0].Labels)

	require.Len(t, doc.NextActions, 2)
	assert.Equal(t, "Sven", *doc.NextActions[0].Owner)
	assert.Equal(t, "Katja", *doc.NextActions[1].Owner)
	assert.Nil(t, doc.NextActions[0].Due)

	require.Len(t, doc.Documents, 1)
	assert.Equal(t, DefaultDocumentType, doc.Documents[0].Type)
	assert.Equal(t, "#", doc.Documents[0].URL)

	require.Len(t, doc.Changelog, 1)
	assert.Equal(t, doc.LastUpdatedTimestamp, doc.Changelog[0].Timestamp)
}

func TestSeedDocument_Deterministic(t *testing.T) {
	assert.Equal(t, SeedDocument(testNow), SeedDocument(testNow))
}

func TestSeedDocument_IndependentCopies(t *testing.T) {
	a := SeedDocument(testNow)
	b := SeedDocument(testNow)

	*a.NextActions[0].Owner = "Merle"
	a.StatusEntries[0].Labels[0] = "Neu"

	assert.Equal(t, "Sven", *b.NextActions[0].Owner)
	assert.Equal(t, "Info", b.StatusEntries[0].Labels[0])
}
