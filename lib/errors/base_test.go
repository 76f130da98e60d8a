package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	require.Equal(t, ProposalNotFound, ProposalNotFound)

	e := ProposalNotFound
	e0 := ProposalNotFound.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e0.SetData("showme", "killme")
		require.NotEqual(t, e.Data, e0.Data)
	}
}

func TestErrorsSerialize(t *testing.T) {
	b, err := AlreadyVoted.Serialize()
	require.Nil(t, err)
	require.Contains(t, string(b), "already voted")
	require.Equal(t, string(b), AlreadyVoted.Error())
}
