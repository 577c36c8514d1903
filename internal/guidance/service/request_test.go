package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gloryco/thewell/internal/platform/apierr"
)

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var ae *apierr.Error
	require.True(t, errors.As(err, &ae), "want *apierr.Error, got %T", err)
	assert.Equal(t, 400, ae.Status)
	assert.Equal(t, code, ae.Code)
}

func TestDecodeRequestErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"empty body", ``, apierr.CodeInvalidJSON},
		{"garbage", `{query:`, apierr.CodeInvalidJSON},
		{"empty object", `{}`, apierr.CodeQueryRequired},
		{"null", `null`, apierr.CodeQueryRequired},
		{"array", `["why pray"]`, apierr.CodeQueryRequired},
		{"empty query", `{"query": ""}`, apierr.CodeQueryRequired},
		{"numeric query", `{"query": 42}`, apierr.CodeQueryRequired},
		{"null query", `{"query": null}`, apierr.CodeQueryRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeRequest([]byte(tc.body))
			requireCode(t, err, tc.code)
		})
	}
}

func TestDecodeRequestFull(t *testing.T) {
	body := `{
		"query": "how do I pray?",
		"mode": "/pray",
		"depth": "light",
		"prompts": {"system": "sys", "developer": "dev"},
		"config": {"translationOrder": ["CSB", "ESV"], "xrefLimit": 3, "maxQuoteWords": "80"}
	}`
	req, err := DecodeRequest([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "how do I pray?", req.Query)
	assert.Equal(t, "/pray", req.Mode)
	assert.Equal(t, "light", req.Depth)
	assert.Equal(t, "sys", req.System)
	assert.Equal(t, "dev", req.Developer)
	assert.Equal(t, []string{"CSB", "ESV"}, req.Constraints.TranslationOrder)
	assert.Equal(t, 3.0, req.Constraints.XrefLimit)
	assert.Equal(t, 80.0, req.Constraints.MaxQuoteWords)
}

func TestDecodeRequestLenientShapes(t *testing.T) {
	body := `{
		"query": "q",
		"mode": 7,
		"depth": {"nested": true},
		"prompts": "not an object",
		"config": {"translationOrder": "ESV", "xrefLimit": "lots", "maxQuoteWords": null}
	}`
	req, err := DecodeRequest([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "7", req.Mode)
	assert.Empty(t, req.Depth)
	assert.Empty(t, req.System)
	assert.Nil(t, req.Constraints.TranslationOrder, "only arrays are honored")
	assert.Zero(t, req.Constraints.XrefLimit)
	assert.Zero(t, req.Constraints.MaxQuoteWords)
}

func TestLooseString(t *testing.T) {
	cases := map[string]string{
		``:        "",
		`null`:    "",
		`false`:   "",
		`true`:    "true",
		`0`:       "",
		`1.50`:    "1.5",
		`"x"`:     "x",
		`[1]`:     "",
		`{"a":1}`: "",
	}
	for in, want := range cases {
		assert.Equal(t, want, looseString([]byte(in)), "input %q", in)
	}
}

func TestLooseList(t *testing.T) {
	assert.Equal(t, []string{"ESV", "1"}, looseList([]byte(`["ESV", null, "", 1, {"x": 1}]`)))
	assert.Nil(t, looseList([]byte(`[]`)))
	assert.Nil(t, looseList([]byte(`"ESV,CSB"`)))
}
