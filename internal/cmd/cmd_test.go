package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/MeKo-Tech/colorengine/internal/colorconv"
	"github.com/MeKo-Tech/colorengine/internal/swatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimalColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    colorconv.Color
		wantErr bool
	}{
		{name: "zero", input: "0", want: 0x000000},
		{name: "max", input: "16777215", want: 0xffffff},
		{name: "wider than 24 bits", input: "33554431", want: 0xffffff},
		{name: "negative wraps", input: "-1", want: 0xffffff},
		{name: "spaces", input: " 3368601 ", want: 0x336699},
		{name: "hex is rejected", input: "ff00ff", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDecimalColor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, colorconv.ErrInvalidColorFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatConversion(t *testing.T) {
	out := formatConversion(0xff0000)

	assert.Contains(t, out, "#ff0000")
	assert.Contains(t, out, "16711680")
	assert.Contains(t, out, "255, 0, 0")
	assert.Contains(t, out, "0, 100.0%, 50.0%")
	assert.Contains(t, out, "#000000")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "hex"))
	assert.True(t, strings.HasPrefix(lines[5], "text"))
}

func TestParseBases(t *testing.T) {
	bases, err := parseBases([]string{"#336699", "336699", "#FF0000"})
	require.NoError(t, err)
	assert.Equal(t, []colorconv.Color{0x336699, 0xff0000}, bases)

	_, err = parseBases([]string{"#336699", "nope"})
	require.Error(t, err)
}

func TestGridTasks(t *testing.T) {
	bases := []colorconv.Color{0x336699, 0xff0000}

	tasks := gridTasks(bases, false, false)
	require.Len(t, tasks, 2)
	assert.Equal(t, "", tasks[0].Suffix)

	tasks = gridTasks(bases, true, true)
	require.Len(t, tasks, 4)
	assert.Equal(t, colorconv.Color(0x336699), tasks[1].Base)
	assert.Equal(t, swatch.HiDPISuffix, tasks[1].Suffix)
	for _, task := range tasks {
		assert.True(t, task.Force)
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestContrastCommand(t *testing.T) {
	out, err := runRoot(t, "contrast", "#000000", "#ffffff")
	require.NoError(t, err)
	assert.Equal(t, "21.00:1\n", out)

	_, err = runRoot(t, "contrast", "#777777", "#888888", "--min", "4.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below 4.50:1")

	_, err = runRoot(t, "contrast", "#777777", "#888888", "--min", "0")
	require.NoError(t, err)
}

func TestPickCommand(t *testing.T) {
	out, err := runRoot(t, "pick", "#ffffff", "#000000", "#ffffff")
	require.NoError(t, err)
	assert.Equal(t, "#000000\n", out)

	_, err = runRoot(t, "pick", "#ffffff", "zzz")
	require.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	out, err := runRoot(t, "convert", "336699")
	require.NoError(t, err)
	assert.Contains(t, out, "#336699")
	assert.Contains(t, out, "3368601")
}
