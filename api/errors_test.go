package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rajesh-rajagopal/megam-api/models"
)

func TestKindForStatus(t *testing.T) {
	assert.Equal(t, KindUnauthorized, KindForStatus(401))
	assert.Equal(t, KindRequestFailed, KindForStatus(599))
	assert.Equal(t, KindErrorWithResponse, KindForStatus(600))
	assert.Equal(t, KindErrorWithResponse, KindForStatus(302))
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		body any
		want string
	}{
		{&models.Error{Msg: " account locked \n"}, "account locked"},
		{map[string]any{"msg": "from map"}, "from map"},
		{map[string]any{"code": "500"}, ""},
		{"plain text\n", "plain text"},
		{nil, ""},
	}
	for _, tt := range tests {
		e := &Error{Kind: KindLocked, StatusCode: 423, Body: tt.body}
		assert.Equal(t, tt.want, e.Message())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("GET http://x/v2/a: http 404: Not Found")
	err := fmt.Errorf("lookup: %w", &Error{Kind: KindNotFound, StatusCode: 404, Cause: cause})

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsUnauthorized(err))
	assert.Equal(t, "megam NotFound: GET http://x/v2/a: http 404: Not Found", errors.Unwrap(err).Error())
}

func TestError_NoCause(t *testing.T) {
	e := &Error{Kind: KindForbidden, StatusCode: 403, Body: "no"}
	assert.Equal(t, "megam Forbidden: http 403: no", e.Error())
	_, ok := AsError(errors.New("other"))
	assert.False(t, ok)
}
