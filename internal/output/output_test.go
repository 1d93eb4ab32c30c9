package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Werneck0live/lista-empresas/internal/models"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"", ColorAuto, false},
		{"auto", ColorAuto, false},
		{"always", ColorAlways, false},
		{"never", ColorNever, false},
		{"rainbow", ColorAuto, true},
	}
	for _, tt := range tests {
		got, err := ParseColorMode(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestResolveColors(t *testing.T) {
	assert.True(t, ResolveColors(ColorAlways, false))
	assert.False(t, ResolveColors(ColorNever, true))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ResolveColors(ColorAuto, true))
}

func TestPrinter_Plain(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false)

	p.Success("发布成功！ %s", "abc")
	p.Error("falhou: %d", 502)
	p.Header("红榜 (推荐)", models.TypeRed)

	assert.Contains(t, out.String(), "[OK] 发布成功！ abc")
	assert.Contains(t, out.String(), "红榜 (推荐)\n")
	assert.Contains(t, errOut.String(), "[ERROR] falhou: 502")
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	tb := NewTable(&buf, []string{"name", "rating"})
	tb.AddRow([]string{"示例科技", "4.5"})
	tb.AddRow([]string{"快运物流", "4.0"})
	require.NoError(t, tb.Render())

	out := buf.String()
	assert.Equal(t, 2, tb.Len())
	assert.True(t, strings.Contains(out, "示例科技"))
	assert.True(t, strings.Contains(out, "快运物流"))
}
