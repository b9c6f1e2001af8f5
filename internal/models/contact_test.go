package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_Prepare(t *testing.T) {
	c := &Contact{FirstName: "  Ada ", LastName: "Lovelace\n", Email: " ada@example.com "}
	c.Prepare()

	assert.Equal(t, "Ada", c.FirstName)
	assert.Equal(t, "Lovelace", c.LastName)
	assert.Equal(t, "ada@example.com", c.Email)
}

func TestContact_JSONKeys(t *testing.T) {
	raw, err := json.Marshal(Contact{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":7,"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com"}`, string(raw))
}
