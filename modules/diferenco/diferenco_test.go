package diferenco

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// replay rebuilds b from a using the change regions and verifies the gaps
// between regions are exact matches.
func replay(t *testing.T, a, b []string, changes []Change) {
	t.Helper()
	out := make([]string, 0, len(b))
	i, j := 0, 0
	for _, c := range changes {
		require.GreaterOrEqual(t, c.P1, i, "regions must ascend")
		require.Equal(t, c.P1-i, c.P2-j, "gap must have equal length on both sides")
		for ; i < c.P1; i, j = i+1, j+1 {
			require.Equal(t, a[i], b[j])
			out = append(out, a[i])
		}
		out = append(out, b[c.P2:c.P2+c.Ins]...)
		i += c.Del
		j += c.Ins
	}
	require.Equal(t, len(a)-i, len(b)-j)
	out = append(out, a[i:]...)
	require.Equal(t, b, out)
}

func editCount(changes []Change) int {
	n := 0
	for _, c := range changes {
		n += c.Del + c.Ins
	}
	return n
}

func TestMyersDiffExamples(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want []Change
	}{
		{name: "insert", a: "ABC", b: "ABXC", want: []Change{{P1: 2, P2: 2, Ins: 1}}},
		{name: "delete", a: "AB", b: "A", want: []Change{{P1: 1, P2: 1, Del: 1}}},
		{name: "substitute", a: "CAT", b: "COT", want: []Change{{P1: 1, P2: 1, Del: 1, Ins: 1}}},
		{name: "equal", a: "same", b: "same", want: []Change{}},
		{name: "from empty", a: "", b: "ab", want: []Change{{Ins: 2}}},
		{name: "to empty", a: "ab", b: "", want: []Change{{Del: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiffStrings(context.Background(), tt.a, tt.b, Myers)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAlgorithmsAreMinimal(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	alphabet := []string{"a", "b", "c", "d"}
	gen := func() []string {
		n := r.Intn(24)
		s := make([]string, n)
		for i := range s {
			s[i] = alphabet[r.Intn(len(alphabet))]
		}
		return s
	}
	for range 300 {
		a, b := gen(), gen()
		m, err := MyersDiff(context.Background(), a, b)
		require.NoError(t, err)
		replay(t, a, b, m)
		o, err := OnpDiff(context.Background(), a, b)
		require.NoError(t, err)
		replay(t, a, b, o)
		require.Equal(t, editCount(m), editCount(o), "a=%v b=%v", a, b)
	}
}

func TestDiffCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Diff(ctx, []string{"a", "b"}, []string{"c"}, Myers)
	require.ErrorIs(t, err, context.Canceled)
	_, err = Diff(ctx, []string{"a", "b"}, []string{"c"}, ONP)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAlgorithmFromName(t *testing.T) {
	a, err := AlgorithmFromName("ONP")
	require.NoError(t, err)
	require.Equal(t, ONP, a)
	a, err = AlgorithmFromName("")
	require.NoError(t, err)
	require.Equal(t, Unspecified, a)
	_, err = AlgorithmFromName("histogram")
	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	require.EqualError(t, err, "algorithm 'histogram': unsupported algorithm")
	require.Equal(t, "myers", Myers.String())
}

func TestGraphemes(t *testing.T) {
	// e + combining acute is composed by NFC; the flag stays one cluster.
	require.Equal(t, []string{"\u00e9", "x", "\U0001F1E9\U0001F1EA"}, Graphemes("e\u0301x\U0001F1E9\U0001F1EA"))
}

func TestCachedDiffer(t *testing.T) {
	d, err := NewCachedDiffer(Myers, nil)
	require.NoError(t, err)
	defer d.Close()
	a := []string{"a", "b", "c"}
	b := []string{"a", "x", "c"}
	first, err := d.Diff(context.Background(), a, b)
	require.NoError(t, err)
	d.Wait()
	second, err := d.Diff(context.Background(), a, b)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.NotEqual(t, d.cacheKey([]string{"ab"}, nil), d.cacheKey([]string{"a", "b"}, nil))
}
