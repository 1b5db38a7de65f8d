package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=99"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func TestValidate_Success(t *testing.T) {
	req := addItemRequest{ProductID: "wine-001", Quantity: 2}
	err := Validate(req)
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	req := addItemRequest{Quantity: 1}
	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "product_id")
	assert.Equal(t, "is required", fields["product_id"])
}

func TestValidate_FieldsUseJSONNames(t *testing.T) {
	req := addItemRequest{ProductID: "wine-001", Quantity: 500}
	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "quantity")
	assert.NotContains(t, fields, "Quantity")
	assert.Contains(t, fields["quantity"], "99")
}

func TestValidate_InvalidEmail(t *testing.T) {
	req := addItemRequest{ProductID: "wine-001", Quantity: 1, Email: "not-an-email"}
	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid email address", valErr.Fields()["email"])
}

func TestValidate_MultipleErrors(t *testing.T) {
	req := addItemRequest{Quantity: 0}
	err := Validate(req)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "product_id")
	assert.Contains(t, fields, "quantity")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(addItemRequest{Quantity: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'product_id'")
	assert.Contains(t, err.Error(), "is required")
}

type remarkRequest struct {
	Code   string `json:"code" validate:"min=3"`
	Remark string `json:"remark" validate:"max=5"`
}

func TestValidate_MinMax(t *testing.T) {
	err := Validate(remarkRequest{Code: "ab", Remark: "toolongstring"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields["code"], "at least 3")
	assert.Contains(t, fields["remark"], "at most 5")
}

type idRequest struct {
	ID string `json:"id" validate:"uuid"`
}

func TestValidate_UUID(t *testing.T) {
	err := Validate(idRequest{ID: "not-a-uuid"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid UUID", valErr.Fields()["id"])

	assert.NoError(t, Validate(idRequest{ID: "550e8400-e29b-41d4-a716-446655440000"}))
}

type paymentRequest struct {
	Method string `json:"payment_method" validate:"oneof=wechat alipay"`
}

func TestValidate_OneOf(t *testing.T) {
	err := Validate(paymentRequest{Method: "cash"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields()["payment_method"], "one of")
}

func TestDecodeAndValidate_Success(t *testing.T) {
	body := `{"product_id":"wine-003","quantity":6}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var dst addItemRequest
	err := DecodeAndValidate(req, &dst)

	require.NoError(t, err)
	assert.Equal(t, "wine-003", dst.ProductID)
	assert.Equal(t, 6, dst.Quantity)
}

func TestDecodeAndValidate_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{invalid"))

	var dst addItemRequest
	err := DecodeAndValidate(req, &dst)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_ValidationFails(t *testing.T) {
	body := `{"quantity":2}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var dst addItemRequest
	err := DecodeAndValidate(req, &dst)

	require.Error(t, err)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}
