package dto

import (
	"testing"

	"github.com/tuanona/kasir-bot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionRequest_ToAction(t *testing.T) {
	a, err := ActionRequest{Kind: "start"}.ToAction()
	require.NoError(t, err)
	assert.Equal(t, model.Start(), a)

	a, err = ActionRequest{Kind: "text", Text: " Ani "}.ToAction()
	require.NoError(t, err)
	assert.Equal(t, model.ActionText, a.Kind)
	assert.Equal(t, " Ani ", a.Text)

	a, err = ActionRequest{Kind: "signal", Signal: "increment", Item: "A"}.ToAction()
	require.NoError(t, err)
	assert.Equal(t, model.PressItem(model.SignalIncrement, "A"), a)
}

func TestActionRequest_UnknownSignalBecomesNone(t *testing.T) {
	a, err := ActionRequest{Kind: "signal", Signal: "teleport"}.ToAction()
	require.NoError(t, err)
	assert.Equal(t, model.ActionSignal, a.Kind)
	assert.Equal(t, model.SignalNone, a.Signal)
}

func TestActionRequest_UnknownKind(t *testing.T) {
	_, err := ActionRequest{Kind: "dance"}.ToAction()
	assert.Error(t, err)
}
