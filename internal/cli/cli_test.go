package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tipout/internal/models"
)

// run executes the root command against db and returns stdout.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewCommand()
	cmd.Writer = &out
	cmd.ErrWriter = &errOut

	argv := append([]string{"tipout", "--db", db}, args...)
	err := cmd.Run(context.Background(), argv)
	return out.String(), err
}

func TestCalcThenHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tipout.db")

	out, err := run(t, db, "calc", "--total", "100", "--method", "hours",
		"--employee", "Ann:2", "--employee", "Bo:3")
	require.NoError(t, err)
	assert.Contains(t, out, "Tip-Out Results")
	assert.Contains(t, out, "$40.00")
	assert.Contains(t, out, "$60.00")
	assert.Contains(t, out, "Total Distributed: $100.00")

	out, err = run(t, db, "history", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "$100.00 • hours • 2")

	id := strings.SplitN(lines[1], "\t", 2)[0]
	out, err = run(t, db, "history", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "Total Distributed: $100.00")

	out, err = run(t, db, "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "History cleared")

	out, err = run(t, db, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No calculations yet")
}

func TestCalcEmployeeWithComma(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tipout.db")

	out, err := run(t, db, "calc", "--total", "100", "--method", "hours",
		"--employee", "Smith, John:2", "--employee", "Bo:3")
	require.NoError(t, err)
	assert.Contains(t, out, "Smith, John")
	assert.Contains(t, out, "$40.00")
	assert.Contains(t, out, "$60.00")

	out, err = run(t, db, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "• hours • 2")
}

func TestCalcDecimalCommaIsIneligible(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tipout.db")

	// "2,5" stays one value and is not a decimal, so nobody has valid hours.
	_, err := run(t, db, "calc", "--total", "100", "--method", "hours",
		"--employee", "Ann:2,5", "--employee", "Bo:2,5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid hours")
}

func TestCalcValidationError(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tipout.db")

	_, err := run(t, db, "calc", "--total", "0", "--employee", "Ann")
	require.Error(t, err)

	out, err := run(t, db, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No calculations yet")
}

func TestLangPersists(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tipout.db")

	_, err := run(t, db, "lang", "es")
	require.NoError(t, err)

	out, err := run(t, db, "lang")
	require.NoError(t, err)
	assert.Equal(t, "es", strings.TrimSpace(out))

	out, err = run(t, db, "calc", "--total", "50", "--employee", "Ana", "--employee", "Luis")
	require.NoError(t, err)
	assert.Contains(t, out, "Resultados de Propinas")

	_, err = run(t, db, "lang", "fr")
	require.Error(t, err)
}

func TestParseEmployee(t *testing.T) {
	tests := []struct {
		raw    string
		method models.Method
		want   models.Participant
	}{
		{"Ann", models.MethodEqual, models.Participant{Name: "Ann"}},
		{"Ann:4.5", models.MethodHours, models.Participant{Name: "Ann", Hours: "4.5"}},
		{"Ann:60", models.MethodPercentage, models.Participant{Name: "Ann", Percentage: "60"}},
		{"Dr: Who:8", models.MethodHours, models.Participant{Name: "Dr: Who", Hours: "8"}},
		{":8", models.MethodHours, models.Participant{Hours: "8"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseEmployee(tt.raw, tt.method))
		})
	}
}
