package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_String(t *testing.T) {
	out := NewTable("ID", "NAME").
		Row("api", "API Backend").
		Row("ui", "UI Package").
		String()

	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "API Backend")
	assert.Contains(t, out, "UI Package")
}
