package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/autoreply/pkg/domain"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "hi it's me", Sanitize("  <b>hi</b> it's me "))
	assert.Equal(t, "a < b & c", Sanitize("a < b & c"))
	assert.Equal(t, "", Sanitize("<script>alert(1)</script>"))
	assert.Equal(t, "¡Gracias por tu comentario!", Sanitize("¡Gracias por tu comentario!"))
}

func TestParseResponses(t *testing.T) {
	assert.Equal(t, domain.Responses{"one", "two"}, ParseResponses([]string{" one", "", "two"}, ""))
	assert.Equal(t, domain.Responses{"a", "b", "c"}, ParseResponses(nil, "a, b,,c "))
	assert.Empty(t, ParseResponses(nil, ""))
	assert.Equal(t, domain.Responses{"x"}, ParseResponses([]string{"x"}, "ignored, when, list"))
}

func TestAddRule(t *testing.T) {
	t.Run("adds and lowercases keyword", func(t *testing.T) {
		cfg := domain.DefaultPostRuleConfig("p1")
		require.NoError(t, AddRule(&cfg, " SALE ", domain.Responses{"10% off!"}))
		v, ok := cfg.Keywords.Get("sale")
		require.True(t, ok)
		assert.Equal(t, domain.Responses{"10% off!"}, v)
	})

	t.Run("seven is fine, eighth is rejected", func(t *testing.T) {
		cfg := domain.DefaultPostRuleConfig("p1")
		seven := domain.Responses{"1", "2", "3", "4", "5", "6", "7"}
		require.NoError(t, AddRule(&cfg, "k", seven))

		eight := append(domain.Responses{}, seven...)
		eight = append(eight, "8")
		err := AddRule(&cfg, "k", eight)
		require.ErrorIs(t, err, domain.ErrTooManyResponses)
		v, _ := cfg.Keywords.Get("k")
		assert.Len(t, v, 7, "failed add leaves rule untouched")
	})

	t.Run("replace keeps priority", func(t *testing.T) {
		cfg := domain.DefaultPostRuleConfig("p1")
		require.NoError(t, AddRule(&cfg, "first", domain.Responses{"1"}))
		require.NoError(t, AddRule(&cfg, "second", domain.Responses{"2"}))
		require.NoError(t, AddRule(&cfg, "first", domain.Responses{"1b"}))
		assert.Equal(t, "first", cfg.Keywords.Oldest().Key)
		assert.Equal(t, domain.Responses{"1b"}, cfg.Keywords.Oldest().Value)
	})

	t.Run("invalid input", func(t *testing.T) {
		cfg := domain.PostRuleConfig{PostID: "p1"}
		require.ErrorIs(t, AddRule(&cfg, "  ", domain.Responses{"x"}), domain.ErrInvalidRule)
		require.ErrorIs(t, AddRule(&cfg, "k", nil), domain.ErrInvalidRule)
		require.NoError(t, AddRule(&cfg, "k", domain.Responses{"x"}), "nil keywords get initialized")
	})
}

func TestDeleteRule(t *testing.T) {
	cfg := domain.DefaultPostRuleConfig("p1")
	require.NoError(t, AddRule(&cfg, "sale", domain.Responses{"x"}))
	require.NoError(t, DeleteRule(&cfg, "SALE"))
	assert.Equal(t, 0, cfg.KeywordCount())
	require.ErrorIs(t, DeleteRule(&cfg, "sale"), domain.ErrKeywordNotFound)
	require.ErrorIs(t, DeleteRule(&domain.PostRuleConfig{}, "sale"), domain.ErrKeywordNotFound)
}

func TestSetDirectMessage(t *testing.T) {
	cfg := domain.DefaultPostRuleConfig("p1")
	require.NoError(t, SetDirectMessage(&cfg, "Check this", "Open", "https://example.com/x?a=1&b=2"))
	assert.Equal(t, "Check this", cfg.DMMessage)
	assert.Equal(t, "Open", cfg.DMButtonText)
	assert.Equal(t, "https://example.com/x?a=1&b=2", cfg.DMButtonURL)

	require.ErrorIs(t, SetDirectMessage(&cfg, "m", "Open", ""), domain.ErrInvalidRule)
	require.ErrorIs(t, SetDirectMessage(&cfg, "m", "Open", "ftp://x"), domain.ErrInvalidRule)
	require.ErrorIs(t, SetDirectMessage(&cfg, "", "Open", "https://x.com"), domain.ErrInvalidRule)
	assert.Equal(t, "Check this", cfg.DMMessage, "rejected update keeps previous payload")

	require.NoError(t, SetDirectMessage(&cfg, "", "", ""))
	assert.False(t, cfg.HasDM())
}
