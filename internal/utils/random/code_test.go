package random

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	for _, n := range []int{1, 8, 32} {
		code := Code(n)
		assert.Len(t, code, n)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected character %q", r)
		}
	}
}

func TestReferralCode(t *testing.T) {
	assert.Len(t, ReferralCode(), ReferralCodeLength)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code := ReferralCode()
		_, dup := seen[code]
		assert.False(t, dup, "duplicate code %q", code)
		seen[code] = struct{}{}
	}
}
