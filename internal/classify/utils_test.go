package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputResult(t *testing.T) {
	builder := &strings.Builder{}
	data := [][]float32{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	}
	err := OutputResult(data, nil, builder, 2)
	assert.NoError(t, err)
	assert.Equal(t, "1.00,2.00,3.00\n4.00,5.00,6.00\n7.00,8.00,9.00\n", builder.String())

	builder.Reset()
	err = OutputResult(data[:1], []string{"a", "b", "c"}, builder, 0)
	assert.NoError(t, err)
	assert.Equal(t, "a,b,c\n1,2,3\n", builder.String())
}
