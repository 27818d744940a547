package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickJob_Empty(t *testing.T) {
	_, err := PickJob([]string{}, nil)
	assert.Error(t, err)
}

func TestPickJob_Nil(t *testing.T) {
	_, err := PickJob(nil, nil)
	assert.Error(t, err)
}

func TestPickJob_SingleJobSkipsPicker(t *testing.T) {
	name, err := PickJob([]string{"build"}, func(string) string { return "make" })
	require.NoError(t, err)
	assert.Equal(t, "build", name)
}
