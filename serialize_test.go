package squirreljson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTrip(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"a":1}`,
		`{"@t":"2020-03-12T17:08:37Z","Elapsed":3456}`,
		`{"nested":{"a":[1,2,3],"b":"hello world","c":null,"d":true,"e":false}}`,
	}
	for _, in := range inputs {
		d, err := Scan([]byte(in))
		require.NoError(t, err, in)

		archived, err := Serialize(d)
		require.NoError(t, err, in)

		restored, err := Deserialize(archived)
		require.NoError(t, err, in)

		assert.Equal(t, d.Buffer, restored.Buffer, "input %q", in)
		assert.Equal(t, d.Tape.Records, restored.Tape.Records, "input %q", in)
	}
}

func TestSerializeRoundTripLargeDocument(t *testing.T) {
	var sb []byte
	sb = append(sb, '{')
	sb = append(sb, `"items":[`...)
	for i := 0; i < 500; i++ {
		if i > 0 {
			sb = append(sb, ',')
		}
		sb = append(sb, `{"id":`...)
		sb = append(sb, []byte(itoa(i))...)
		sb = append(sb, `,"name":"item-`...)
		sb = append(sb, []byte(itoa(i))...)
		sb = append(sb, `"}`...)
	}
	sb = append(sb, `]}`...)

	d, err := Scan(sb)
	require.NoError(t, err)

	archived, err := Serialize(d)
	require.NoError(t, err)

	restored, err := Deserialize(archived)
	require.NoError(t, err)
	assert.Equal(t, d.Tape.Records, restored.Tape.Records)
	assert.Equal(t, d.Buffer, restored.Buffer)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
