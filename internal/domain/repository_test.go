package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"freelancer_directory/internal/domain"
)

func TestListOptionsNormalize(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		opts := domain.ListOptions{}.Normalize()
		assert.Equal(t, 1, opts.PageNumber)
		assert.Equal(t, domain.DefaultPageSize, opts.PageSize)
		assert.Equal(t, domain.SortAsc, opts.SortOrder)
		assert.Equal(t, 0, opts.Offset())
	})

	t.Run("clamps page size", func(t *testing.T) {
		opts := domain.ListOptions{PageSize: 1000}.Normalize()
		assert.Equal(t, domain.MaxPageSize, opts.PageSize)
	})

	t.Run("clamps page number so the offset stays positive", func(t *testing.T) {
		opts := domain.ListOptions{PageNumber: math.MaxInt64, PageSize: domain.MaxPageSize}.Normalize()
		assert.Equal(t, domain.MaxPageNumber, opts.PageNumber)
		assert.Positive(t, opts.Offset())
		assert.LessOrEqual(t, opts.Offset(), math.MaxInt32)
	})

	t.Run("computes offset", func(t *testing.T) {
		opts := domain.ListOptions{PageNumber: 3, PageSize: 20}.Normalize()
		assert.Equal(t, 40, opts.Offset())
	})

	t.Run("accepts desc in any case", func(t *testing.T) {
		opts := domain.ListOptions{SortOrder: "DESC"}.Normalize()
		assert.Equal(t, domain.SortDesc, opts.SortOrder)
	})

	t.Run("trims search phrase", func(t *testing.T) {
		opts := domain.ListOptions{SearchPhrase: "  bob "}.Normalize()
		assert.Equal(t, "bob", opts.SearchPhrase)
	})
}

func TestNewPage(t *testing.T) {
	opts := domain.ListOptions{PageNumber: 2, PageSize: 10}.Normalize()

	page := domain.NewPage(nil, 21, opts)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasPrevious)
	assert.True(t, page.HasNext)
	assert.NotNil(t, page.Items)

	last := domain.NewPage(nil, 20, opts)
	assert.Equal(t, 2, last.TotalPages)
	assert.False(t, last.HasNext)

	empty := domain.NewPage(nil, 0, domain.ListOptions{}.Normalize())
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasPrevious)
	assert.False(t, empty.HasNext)
}

func TestFreelancerRole(t *testing.T) {
	admin := domain.Freelancer{IsAdmin: true}
	assert.Equal(t, domain.RoleAdmin, admin.Role())

	regular := domain.Freelancer{}
	assert.Equal(t, domain.RoleFreelancer, regular.Role())
	assert.False(t, regular.HasPassword())

	empty := ""
	regular.Password = &empty
	assert.False(t, regular.HasPassword())
}
