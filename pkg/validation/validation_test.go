package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name       string  `json:"name" binding:"required,min=1,max=5"`
	Conditions string  `json:"conditions" binding:"required,structured"`
	Actions    *string `json:"actions" binding:"omitempty,structured"`
	Priority   int     `json:"priority" binding:"min=0"`
}

func init() {
	gin.SetMode(gin.TestMode)
	if err := Register(); err != nil {
		panic(err)
	}
}

func strPtr(s string) *string { return &s }

func TestTranslate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		payload  samplePayload
		wantLoc  []string
		wantType string
		wantMsg  string
	}{
		{
			name:     "missing name",
			payload:  samplePayload{Conditions: "{}"},
			wantLoc:  []string{"body", "name"},
			wantType: "missing",
		},
		{
			name:     "name too long",
			payload:  samplePayload{Name: "abcdef", Conditions: "{}"},
			wantLoc:  []string{"body", "name"},
			wantType: "string_too_long",
			wantMsg:  "String should have at most 5 characters",
		},
		{
			name:     "conditions not json",
			payload:  samplePayload{Name: "a", Conditions: "not json"},
			wantLoc:  []string{"body", "conditions"},
			wantType: "value_error",
			wantMsg:  "Must be valid JSON string",
		},
		{
			name:     "optional actions not json",
			payload:  samplePayload{Name: "a", Conditions: "[]", Actions: strPtr("{")},
			wantLoc:  []string{"body", "actions"},
			wantType: "value_error",
			wantMsg:  "Must be valid JSON string",
		},
		{
			name:     "negative priority",
			payload:  samplePayload{Name: "a", Conditions: "[]", Priority: -1},
			wantLoc:  []string{"body", "priority"},
			wantType: "greater_than_equal",
			wantMsg:  "greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.payload)
			require.Error(t, err)

			errs := Translate(err, Body)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantLoc, errs[0].Loc)
			assert.Equal(t, tt.wantType, errs[0].Type)
			assert.Contains(t, errs[0].Msg, tt.wantMsg)
		})
	}
}

func TestTranslate_ValidPayload(t *testing.T) {
	payload := samplePayload{Name: "ok", Conditions: "[1,2,3]", Actions: strPtr("{}")}
	assert.NoError(t, binding.Validator.ValidateStruct(&payload))
	assert.Nil(t, Translate(nil, Body))
}

func TestTranslate_DecodeErrors(t *testing.T) {
	var target samplePayload

	err := json.Unmarshal([]byte(`{"name": 12}`), &target)
	errs := Translate(err, Body)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"body", "name"}, errs[0].Loc)
	assert.Equal(t, "type_error", errs[0].Type)

	err = json.Unmarshal([]byte(`{"name": `), &target)
	errs = Translate(err, Body)
	require.Len(t, errs, 1)
	assert.Equal(t, "json_invalid", errs[0].Type)

	errs = Translate(errors.New("boom"), Query)
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"query"}, errs[0].Loc)
	assert.Equal(t, "boom", errs[0].Msg)
}

func TestBindJSON_WritesUnprocessableEntity(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","conditions":"{"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var payload samplePayload
	ok := BindJSON(c, &payload)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Detail []FieldError `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Detail, 1)
	assert.Equal(t, []string{"body", "conditions"}, body.Detail[0].Loc)
}

type flagsPayload struct {
	Name     string  `json:"name" binding:"required"`
	Enabled  *bool   `json:"enabled"`
	Weight   int     `json:"weight"`
	Label    *string `json:"label"`
	Optional *string `json:"optional"`
}

func TestBindJSON_NonNullFields(t *testing.T) {
	bind := func(body string) (*httptest.ResponseRecorder, flagsPayload, bool) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var payload flagsPayload
		ok := BindJSON(c, &payload, "enabled", "weight", "label")
		return w, payload, ok
	}

	t.Run("omitted fields are fine", func(t *testing.T) {
		_, payload, ok := bind(`{"name":"a"}`)
		require.True(t, ok)
		assert.Nil(t, payload.Enabled)
		assert.Equal(t, 0, payload.Weight)
	})

	t.Run("null outside the list is fine", func(t *testing.T) {
		_, payload, ok := bind(`{"name":"a","optional":null,"enabled":false}`)
		require.True(t, ok)
		require.NotNil(t, payload.Enabled)
		assert.False(t, *payload.Enabled)
	})

	t.Run("explicit nulls are reported with other errors", func(t *testing.T) {
		w, _, ok := bind(`{"enabled":null,"weight":null,"label":null}`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body struct {
			Detail []FieldError `json:"detail"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.ElementsMatch(t, []FieldError{
			{Loc: []string{"body", "enabled"}, Msg: "Input should be a valid boolean", Type: "bool_type"},
			{Loc: []string{"body", "weight"}, Msg: "Input should be a valid integer", Type: "int_type"},
			{Loc: []string{"body", "label"}, Msg: "Input should be a valid string", Type: "string_type"},
			{Loc: []string{"body", "name"}, Msg: "Field required", Type: "missing"},
		}, body.Detail)
	})

	t.Run("non-object body goes to the decoder", func(t *testing.T) {
		w, _, ok := bind(`[null]`)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.NotContains(t, w.Body.String(), "bool_type")
	})
}

func TestListParams(t *testing.T) {
	tests := []struct {
		name      string
		rawQuery  string
		wantSkip  int
		wantLimit int
		wantLoc   []string
	}{
		{name: "defaults", rawQuery: "", wantSkip: 0, wantLimit: 100},
		{name: "explicit", rawQuery: "skip=10&limit=5&search=urgent", wantSkip: 10, wantLimit: 5},
		{name: "limit not a number", rawQuery: "limit=abc", wantLoc: []string{"query", "limit"}},
		{name: "negative skip", rawQuery: "skip=-1", wantLoc: []string{"query", "skip"}},
		{name: "zero limit", rawQuery: "limit=0", wantLoc: []string{"query", "limit"}},
		{name: "limit above max", rawQuery: "limit=1001", wantLoc: []string{"query", "limit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.rawQuery, nil)

			p, errs := ListParams(c)
			if tt.wantLoc != nil {
				require.Len(t, errs, 1)
				assert.Equal(t, tt.wantLoc, errs[0].Loc)
				return
			}
			require.Empty(t, errs)
			assert.Equal(t, tt.wantSkip, p.Skip)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestPathID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, errs := PathID(c, "id")
	assert.Empty(t, errs)
	assert.Equal(t, uint(42), id)

	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	_, errs = PathID(c, "id")
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"path", "id"}, errs[0].Loc)
}
