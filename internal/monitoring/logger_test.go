package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	orig := Logf
	defer func() { Logf = orig }()

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("frame %d", 7)
	require.Equal(t, []string{"frame 7"}, got)

	SetLogger(nil)
	Logf("muted")
	require.Len(t, got, 1)
}
