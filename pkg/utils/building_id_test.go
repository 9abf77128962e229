package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBuildingID(t *testing.T) {
	pattern := regexp.MustCompile(`^house_small-[0-9a-f]{8}$`)

	first := GenerateBuildingID("house_small")
	second := GenerateBuildingID("house_small")

	assert.Regexp(t, pattern, first)
	assert.NotEqual(t, first, second)
	assert.Regexp(t, `^building-[0-9a-f]{8}$`, GenerateBuildingID(" "))
}
