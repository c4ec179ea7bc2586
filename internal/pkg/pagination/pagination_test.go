package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp_Defaults(t *testing.T) {
	page, perPage := Clamp(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPerPage, perPage)
}

func TestClamp_CapsPerPage(t *testing.T) {
	page, perPage := Clamp(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, DefaultPerPage, perPage)
}

func TestClamp_NegativePage(t *testing.T) {
	page, perPage := Clamp(-5, 50)
	assert.Equal(t, 1, page)
	assert.Equal(t, 50, perPage)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 20))
	assert.Equal(t, 40, Offset(3, 20))
}

func TestNewPage_Ceil(t *testing.T) {
	p := NewPage(21, 1, 10)
	assert.Equal(t, 21, p.Total)
	assert.Equal(t, 3, p.TotalPages)
}

func TestNewPage_Empty(t *testing.T) {
	p := NewPage(0, 1, 20)
	assert.Equal(t, 0, p.TotalPages)
}

func TestNewPage_ExactMultiple(t *testing.T) {
	p := NewPage(40, 2, 20)
	assert.Equal(t, 2, p.TotalPages)
}
