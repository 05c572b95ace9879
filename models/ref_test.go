package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRefMarshalJSON(t *testing.T) {
	id := primitive.NewObjectID()

	ref := NewRef[Shop](id)
	out, err := json.Marshal(ref)
	require.NoError(t, err)
	assert.JSONEq(t, `"`+id.Hex()+`"`, string(out))
	assert.False(t, ref.Resolved())

	ref.Resolve(&Shop{ID: id, Name: "Corner Store"})
	out, err = json.Marshal(ref)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"name":"Corner Store"`)
	assert.True(t, ref.Resolved())

	missing := NewRef[Shop](id)
	missing.Resolve(nil)
	out, err = json.Marshal(missing)
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
	assert.True(t, missing.Resolved())
}

func TestProductViewShopJSON(t *testing.T) {
	view := ProductView{Product: Product{Name: "Lamp"}}
	out, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `"shop"`)
	assert.False(t, view.ShopJoined())

	view.AttachShop(&Shop{Name: "Lights Co"})
	out, err = json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"shop":{`)
	assert.True(t, view.ShopJoined())
}
