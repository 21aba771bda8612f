package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/closetly/wardrobe-api/internal/model"
	"github.com/closetly/wardrobe-api/internal/payload"
	"github.com/closetly/wardrobe-api/internal/storage"
	"github.com/closetly/wardrobe-api/internal/usecase"
)

func sampleItem() *model.Item {
	return &model.Item{
		ID:        bson.NewObjectID(),
		UserID:    bson.NewObjectID(),
		Name:      "linen shirt",
		ImageURL:  "https://media.test/wardrobe/items/img-1.png",
		Category:  "tops",
		Seasons:   []string{"summer", "fall"},
		Color:     "white",
		Warmth:    3,
		Clean:     true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func itemFields() map[string]string {
	return map[string]string{
		"name":        "linen shirt",
		"category":    "tops",
		"subCategory": "shirts",
		"seasons":     `["summer","fall"]`,
		"color":       "white",
		"warmth":      "3",
	}
}

func TestCreateItem(t *testing.T) {
	stub := &stubItemUsecase{item: sampleItem()}
	router := newTestRouter(t, testStubs{items: stub})

	body, contentType := itemForm(t, itemFields(), "shirt.png", []byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/items", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusCreated, res.Code)

	require.NotNil(t, stub.createParams)
	assert.Equal(t, "user-abc", stub.gotUserID)
	assert.Equal(t, "linen shirt", stub.createParams.Name)
	assert.Equal(t, []string{"summer", "fall"}, stub.createParams.Seasons, "season order must survive the form")
	assert.Equal(t, 3, stub.createParams.Warmth)
	assert.Equal(t, []byte("png-bytes"), stub.imageBytes)

	var created payload.ItemResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	assert.Equal(t, "linen shirt", created.Name)
	assert.NotEmpty(t, created.ImageURL)
	assert.NotContains(t, res.Body.String(), "lastWornAt", "unworn items omit the timestamp")
}

func TestCreateItem_BadSeasonsJSON(t *testing.T) {
	stub := &stubItemUsecase{item: sampleItem()}
	router := newTestRouter(t, testStubs{items: stub})

	fields := itemFields()
	fields["seasons"] = "summer,fall"
	body, contentType := itemForm(t, fields, "shirt.png", []byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/items", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, decodeError(t, res).Fields, "seasons")
	assert.Nil(t, stub.createParams, "nothing may reach the usecase")
}

func TestCreateItem_WarmthNotANumber(t *testing.T) {
	router := newTestRouter(t, testStubs{})

	fields := itemFields()
	fields["warmth"] = "toasty"
	body, contentType := itemForm(t, fields, "shirt.png", []byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/items", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, decodeError(t, res).Fields, "warmth")
}

func TestCreateItem_WarmthOutOfRange(t *testing.T) {
	router := newTestRouter(t, testStubs{})

	fields := itemFields()
	fields["warmth"] = "11"
	body, contentType := itemForm(t, fields, "shirt.png", []byte("png-bytes"))

	req := httptest.NewRequest(http.MethodPost, "/api/items", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, decodeError(t, res).Fields, "warmth")
}

func TestCreateItem_MissingImage(t *testing.T) {
	router := newTestRouter(t, testStubs{})

	body, contentType := itemForm(t, itemFields(), "", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/items", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, decodeError(t, res).Fields, "image")
}

func TestCreateItem_UnsupportedImageType(t *testing.T) {
	stub := &stubItemUsecase{
		err: fmt.Errorf("%w: %s", storage.ErrUnsupportedImageType, "text/plain; charset=utf-8"),
	}
	router := newTestRouter(t, testStubs{items: stub})

	body, contentType := itemForm(t, itemFields(), "notes.txt", []byte("just text"))

	req := httptest.NewRequest(http.MethodPost, "/api/items", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, res.Body.String(), "unsupported image type")
}

func TestListItems(t *testing.T) {
	stub := &stubItemUsecase{items: []*model.Item{sampleItem(), sampleItem()}}
	router := newTestRouter(t, testStubs{items: stub})

	req := httptest.NewRequest(http.MethodGet, "/api/items?category=tops&clean=false", nil)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var items []payload.ItemResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &items))
	assert.Len(t, items, 2)

	require.NotNil(t, stub.listParams.Category)
	assert.Equal(t, "tops", *stub.listParams.Category)
	require.NotNil(t, stub.listParams.Clean)
	assert.False(t, *stub.listParams.Clean)
}

func TestListItems_EmptyIsArray(t *testing.T) {
	router := newTestRouter(t, testStubs{items: &stubItemUsecase{}})

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `[]`, res.Body.String())
}

func TestListItems_BadCleanFlag(t *testing.T) {
	router := newTestRouter(t, testStubs{})

	req := httptest.NewRequest(http.MethodGet, "/api/items?clean=maybe", nil)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
	assert.Contains(t, decodeError(t, res).Fields, "clean")
}

func TestGetItem_NotFound(t *testing.T) {
	router := newTestRouter(t, testStubs{items: &stubItemUsecase{err: usecase.ErrItemNotFound}})

	req := httptest.NewRequest(http.MethodGet, "/api/items/"+bson.NewObjectID().Hex(), nil)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
	assert.JSONEq(t, `{"error":"item not found"}`, res.Body.String())
}

func TestDeleteItem(t *testing.T) {
	stub := &stubItemUsecase{}
	router := newTestRouter(t, testStubs{items: stub})

	itemID := bson.NewObjectID().Hex()
	req := httptest.NewRequest(http.MethodDelete, "/api/items/"+itemID, nil)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusNoContent, res.Code)
	assert.Equal(t, itemID, stub.gotItemID)
	assert.Empty(t, res.Body.String())
}

func TestMarkItemWorn(t *testing.T) {
	item := sampleItem()
	item.Clean = false
	item.LastWornAt = time.Now()
	stub := &stubItemUsecase{item: item}
	router := newTestRouter(t, testStubs{items: stub})

	req := httptest.NewRequest(http.MethodPost, "/api/items/"+item.ID.Hex()+"/worn", nil)
	req.Header.Set("X-Auth-Token", issueToken(t, "user-abc"))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var updated payload.ItemResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
	assert.False(t, updated.Clean)
	require.NotNil(t, updated.LastWornAt)
	assert.Equal(t, item.ID.Hex(), stub.gotItemID)
}
