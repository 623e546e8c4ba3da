package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWasteLogValidate(t *testing.T) {
	valid := WasteLog{UserID: "u1", WasteType: "plastic", Weight: 2.5}
	assert.NoError(t, valid.Validate())

	missingWeight := WasteLog{UserID: "u1", WasteType: "plastic"}
	err := missingWeight.Validate()
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "weight", ve.Field)

	negativeWeight := WasteLog{UserID: "u1", WasteType: "plastic", Weight: -1}
	require.ErrorAs(t, negativeWeight.Validate(), &ve)
	assert.Equal(t, "weight", ve.Field)

	missingType := WasteLog{UserID: "u1", Weight: 1}
	require.ErrorAs(t, missingType.Validate(), &ve)
	assert.Equal(t, "waste_type", ve.Field)

	missingOwner := WasteLog{WasteType: "plastic", Weight: 1}
	require.ErrorAs(t, missingOwner.Validate(), &ve)
	assert.Equal(t, "user_id", ve.Field)

	badStatus := "done"
	invalidStatus := WasteLog{UserID: "u1", WasteType: "plastic", Weight: 1, CollectionStatus: &badStatus}
	require.ErrorAs(t, invalidStatus.Validate(), &ve)
	assert.Equal(t, "collection_status", ve.Field)

	okStatus := CollectionScheduled
	scheduled := WasteLog{UserID: "u1", WasteType: "plastic", Weight: 1, CollectionStatus: &okStatus}
	assert.NoError(t, scheduled.Validate())
}

func TestNormalizeAcceptedTypes(t *testing.T) {
	// Structured list and comma-joined string collapse to one form.
	assert.Equal(t,
		[]string{"plastic", "paper", "glass"},
		NormalizeAcceptedTypes([]string{"Plastic", " paper", "plastic", "glass"}))
	assert.Equal(t,
		[]string{"plastic", "paper"},
		NormalizeAcceptedTypes([]string{"plastic, Paper,plastic"}))
	assert.Empty(t, NormalizeAcceptedTypes([]string{"", " ", ","}))
}

func TestCenterAccepts(t *testing.T) {
	c := RecyclingCenter{AcceptedTypes: []string{"plastic", "paper"}}
	assert.True(t, c.Accepts("plastic"))
	assert.True(t, c.Accepts(" Paper "))
	assert.False(t, c.Accepts("organic"))
}

func TestCenterValidate(t *testing.T) {
	var ve *ValidationError
	missingName := RecyclingCenter{Location: "Nairobi"}
	require.ErrorAs(t, missingName.Validate(), &ve)
	assert.Equal(t, "name", ve.Field)

	missingLocation := RecyclingCenter{Name: "EcoHub"}
	require.ErrorAs(t, missingLocation.Validate(), &ve)
	assert.Equal(t, "location", ve.Field)

	ok := RecyclingCenter{Name: "EcoHub", Location: "Nairobi"}
	assert.NoError(t, ok.Validate())
}

func TestRewardValidate(t *testing.T) {
	var ve *ValidationError
	negative := Reward{UserID: "u1", BadgeName: "Eco Starter", Points: -5}
	require.ErrorAs(t, negative.Validate(), &ve)
	assert.Equal(t, "points", ve.Field)

	ok := Reward{UserID: "u1", BadgeName: "Eco Starter"}
	assert.NoError(t, ok.Validate())
}
