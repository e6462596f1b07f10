package db

import (
	"bufio"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idColumn = regexp.MustCompile(`^\s*(id|\w+_id)\s+(\w+)`)

// Path ids are parsed as int64, so every key column must hold the full int64 range.
func TestMigrations_KeyColumnsAreBigint(t *testing.T) {
	f, err := embedMigrations.Open("migrations/00001_create_tables.sql")
	require.NoError(t, err)
	defer f.Close()

	var seen int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := idColumn.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		seen++
		typ := strings.ToUpper(m[2])
		assert.Contains(t, []string{"BIGSERIAL", "BIGINT"}, typ, "column %s", m[1])
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, 18, seen)
}
