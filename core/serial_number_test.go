package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSerialNumber_Deterministic(t *testing.T) {
	var rho F
	rho.SetInt64(7)

	s1 := NewSerialNumber(rho)
	s2 := NewSerialNumber(rho)
	require.True(t, s1.Equal(s2))
	require.Equal(t, s1.Key(), s2.Key())
}

func TestNewSerialNumber_DifferentNonces(t *testing.T) {
	var rho1, rho2 F
	rho1.SetInt64(1)
	rho2.SetInt64(2)

	s1 := NewSerialNumber(rho1)
	s2 := NewSerialNumber(rho2)
	require.False(t, s1.Equal(s2))
}
