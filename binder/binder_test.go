package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/filesmanager/binder"
)

type createRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	IsPublic bool    `json:"isPublic"`
	Data     *string `json:"data"`
}

func jsonRequest(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/files", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		err := binder.JSON()(jsonRequest(`{"name":"myText.txt","type":"file","data":"SGVsbG8=","extra":1}`, "application/json; charset=utf-8"), &req)
		require.NoError(t, err)
		require.NotNil(t, req.Name)
		assert.Equal(t, "myText.txt", *req.Name)
		assert.Equal(t, "file", *req.Type)
		assert.Equal(t, "SGVsbG8=", *req.Data)
		assert.False(t, req.IsPublic)
	})

	t.Run("missing content type leaves zero value", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		require.NoError(t, binder.JSON()(jsonRequest(`{"name":"x"}`, ""), &req))
		assert.Nil(t, req.Name)
	})

	t.Run("empty body leaves zero value", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		r := httptest.NewRequest(http.MethodPost, "/files", http.NoBody)
		r.Header.Set("Content-Type", "application/json")
		require.NoError(t, binder.JSON()(r, &req))
		require.NoError(t, binder.JSON()(jsonRequest("", "application/json"), &req))
		assert.Nil(t, req.Name)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		err := binder.JSON()(jsonRequest("name=x", "application/x-www-form-urlencoded"), &req)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		err := binder.JSON()(jsonRequest(`{"name":`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
	})

	t.Run("wrong field type", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		err := binder.JSON()(jsonRequest(`{"isPublic":"yes"}`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrInvalidJSON)
		assert.Contains(t, err.Error(), "isPublic")
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		var req createRequest
		err := binder.JSON(binder.WithMaxSize(8))(jsonRequest(`{"name":"too long"}`, "application/json"), &req)
		assert.ErrorIs(t, err, binder.ErrBodyTooLarge)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	type listRequest struct {
		ParentID *string  `query:"parentId"`
		Page     int      `query:"page"`
		Size     *int     `query:"size"`
		Tags     []string `query:"tag"`
		Ignored  string
	}

	t.Run("binds tagged fields", func(t *testing.T) {
		t.Parallel()
		var req listRequest
		r := httptest.NewRequest(http.MethodGet, "/files?parentId=abc&page=2&size=250&tag=a&tag=b&Ignored=x", nil)
		require.NoError(t, binder.Query()(r, &req))
		require.NotNil(t, req.ParentID)
		assert.Equal(t, "abc", *req.ParentID)
		assert.Equal(t, 2, req.Page)
		require.NotNil(t, req.Size)
		assert.Equal(t, 250, *req.Size)
		assert.Equal(t, []string{"a", "b"}, req.Tags)
		assert.Empty(t, req.Ignored)
	})

	t.Run("absent parameters stay nil", func(t *testing.T) {
		t.Parallel()
		var req listRequest
		require.NoError(t, binder.Query()(httptest.NewRequest(http.MethodGet, "/files", nil), &req))
		assert.Nil(t, req.ParentID)
		assert.Nil(t, req.Size)
		assert.Zero(t, req.Page)
	})

	t.Run("invalid integer", func(t *testing.T) {
		t.Parallel()
		var req listRequest
		err := binder.Query()(httptest.NewRequest(http.MethodGet, "/files?size=big", nil), &req)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
		assert.Contains(t, err.Error(), "size")
	})

	t.Run("non struct target", func(t *testing.T) {
		t.Parallel()
		var s string
		err := binder.Query()(httptest.NewRequest(http.MethodGet, "/", nil), &s)
		assert.ErrorIs(t, err, binder.ErrInvalidQuery)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	type fileRequest struct {
		ID   string `path:"id"`
		Skip string `path:"-"`
	}
	params := map[string]string{"id": "5f1e7d35c7ba06511e683b21", "-": "x"}
	extractor := func(_ *http.Request, name string) string { return params[name] }

	var req fileRequest
	require.NoError(t, binder.Path(extractor)(httptest.NewRequest(http.MethodGet, "/", nil), &req))
	assert.Equal(t, "5f1e7d35c7ba06511e683b21", req.ID)
	assert.Empty(t, req.Skip)

	err := binder.Path(nil)(httptest.NewRequest(http.MethodGet, "/", nil), &req)
	assert.ErrorIs(t, err, binder.ErrInvalidPath)
}
