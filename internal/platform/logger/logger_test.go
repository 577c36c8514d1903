package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestRedactsSecrets(t *testing.T) {
	log, logs := observed()
	log.Info("engine ready", "api_key", "sk-123", "system_prompt", "be gentle", "engine", "oai_http")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["api_key"])
	assert.Equal(t, "[REDACTED]", fields["system_prompt"])
	assert.Equal(t, "oai_http", fields["engine"])
}

func TestHashesQueries(t *testing.T) {
	log, logs := observed()
	log.Info("guidance answered", "query", "I want to die", "user_query", "I want to die")

	fields := logs.All()[0].ContextMap()
	h, ok := fields["query"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(h, "hash:"))
	assert.Len(t, h, len("hash:")+12)
	assert.NotContains(t, h, "die")
	assert.Equal(t, h, fields["user_query"], "same input hashes the same")
}

func TestNestedMapsAreSanitized(t *testing.T) {
	log, logs := observed()
	log.Warn("upstream", "detail", map[string]interface{}{"Authorization": "Bearer x", "status": 429})

	detail, ok := logs.All()[0].ContextMap()["detail"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "[REDACTED]", detail["Authorization"])
	assert.EqualValues(t, 429, detail["status"])
}

func TestOddKeyValuesKeepTrailingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"mode", "llm", "dangling"})
	assert.Equal(t, []interface{}{"mode", "llm", "dangling"}, out)
}

func TestEmptyValueHashesToEmpty(t *testing.T) {
	assert.Equal(t, "", hashValue(nil))
	assert.Equal(t, "", hashValue(""))
}

func TestWithSanitizesFields(t *testing.T) {
	log, logs := observed()
	log.With("password", "hunter2").Error("boom")
	assert.Equal(t, "[REDACTED]", logs.All()[0].ContextMap()["password"])
}
