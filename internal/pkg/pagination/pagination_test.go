package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, target string) *Params {
	t.Helper()
	app := fiber.New()

	var params *Params
	app.Get("/", func(c *fiber.Ctx) error {
		params = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return params
}

func TestGetParams(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/", 1, DefaultLimit, 0},
		{"explicit", "/?page=3&limit=10", 3, 10, 20},
		{"zero page", "/?page=0", 1, DefaultLimit, 0},
		{"negative limit", "/?limit=-5", 1, DefaultLimit, 0},
		{"limit capped", "/?limit=1000", 1, MaxLimit, 0},
		{"garbage", "/?page=abc&limit=xyz", 1, DefaultLimit, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := paramsFor(t, tt.target)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
			assert.Equal(t, tt.wantOffset, params.Offset)
		})
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 25)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	meta = GetMeta(&Params{Page: 1, Limit: 10}, 10)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	meta = GetMeta(&Params{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
}
