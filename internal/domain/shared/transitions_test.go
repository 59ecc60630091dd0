package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lightStatus string

var lightTransitions = TransitionTable[lightStatus]{
	"RED":    {"GREEN"},
	"GREEN":  {"YELLOW"},
	"YELLOW": {"RED"},
}

func TestTransitionTable(t *testing.T) {
	assert.True(t, lightTransitions.CanTransition("RED", "GREEN"))
	assert.False(t, lightTransitions.CanTransition("RED", "YELLOW"))
	assert.Equal(t, []lightStatus{"YELLOW"}, lightTransitions.Allowed("GREEN"))
	assert.Empty(t, lightTransitions.Allowed("BLUE"))
	assert.True(t, lightTransitions.Known("RED"))
	assert.False(t, lightTransitions.Known("BLUE"))
}

func TestTransitionTable_Validate(t *testing.T) {
	require.NoError(t, lightTransitions.Validate("RED", "GREEN"))

	err := lightTransitions.Validate("RED", "YELLOW")
	var domainErr *DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	assert.Equal(t, "status", domainErr.Field)

	err = lightTransitions.Validate("RED", "RED")
	require.Error(t, err)
}

func TestTransitionTable_AllowedReturnsCopy(t *testing.T) {
	allowed := lightTransitions.Allowed("RED")
	allowed[0] = "BLUE"
	assert.Equal(t, []lightStatus{"GREEN"}, lightTransitions.Allowed("RED"))
}
