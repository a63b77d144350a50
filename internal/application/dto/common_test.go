package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-vision/internal/application/dto"
)

func TestOptional_AusenteNullValor(t *testing.T) {
	var absent dto.UpdateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"product_name":"Queso"}`), &absent))
	assert.False(t, absent.ExpirationDate.Set)
	assert.False(t, absent.InvoiceNumber.Set)
	require.NotNil(t, absent.ProductName)

	var null dto.UpdateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"expiration_date":null,"invoice_number":null}`), &null))
	assert.True(t, null.ExpirationDate.Set)
	assert.Nil(t, null.ExpirationDate.Value)
	assert.True(t, null.InvoiceNumber.Set)
	assert.Nil(t, null.InvoiceNumber.Value)

	var value dto.UpdateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"expiration_date":"2026-05-01"}`), &value))
	assert.True(t, value.ExpirationDate.Set)
	require.NotNil(t, value.ExpirationDate.Value)
	assert.Equal(t, "2026-05-01", *value.ExpirationDate.Value)
}

func TestOptional_TipoInvalido(t *testing.T) {
	var req dto.UpdateItemRequest
	assert.Error(t, json.Unmarshal([]byte(`{"expiration_date":42}`), &req))
}

func TestNewList_NuncaNull(t *testing.T) {
	out, err := json.Marshal(dto.NewList[dto.ProductMatchResponse](nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"total":0}`, string(out))
}
