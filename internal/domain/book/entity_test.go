package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorAssignment_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		in      AuthorAssignment
		want    AuthorAssignment
		wantErr error
	}{
		{
			name: "主作者默认取第一个",
			in:   AuthorAssignment{AuthorIDs: []string{"a", "b"}},
			want: AuthorAssignment{AuthorIDs: []string{"a", "b"}, PrimaryID: "a"},
		},
		{
			name: "去重并保持顺序",
			in:   AuthorAssignment{AuthorIDs: []string{"b", "a", "b"}, PrimaryID: "a"},
			want: AuthorAssignment{AuthorIDs: []string{"b", "a"}, PrimaryID: "a"},
		},
		{
			name:    "主作者不在列表中",
			in:      AuthorAssignment{AuthorIDs: []string{"a"}, PrimaryID: "z"},
			wantErr: ErrPrimaryNotInAuthors,
		},
		{
			name: "空列表",
			in:   AuthorAssignment{},
			want: AuthorAssignment{},
		},
		{
			name:    "空列表但指定主作者",
			in:      AuthorAssignment{PrimaryID: "a"},
			wantErr: ErrPrimaryNotInAuthors,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeSort(t *testing.T) {
	by, order, err := NormalizeSort("", "")
	require.NoError(t, err)
	assert.Equal(t, SortByTitle, by)
	assert.Equal(t, "ASC", order)

	by, order, err = NormalizeSort(SortByRating, "desc")
	require.NoError(t, err)
	assert.Equal(t, SortByRating, by)
	assert.Equal(t, "DESC", order)

	_, _, err = NormalizeSort("isbn", "")
	assert.ErrorIs(t, err, ErrInvalidSearchOptions)

	_, _, err = NormalizeSort(SortByPrice, "sideways")
	assert.ErrorIs(t, err, ErrInvalidSearchOptions)
}

func TestBook_HasStock(t *testing.T) {
	b := &Book{Stock: 3}
	assert.True(t, b.HasStock(3))
	assert.False(t, b.HasStock(4))
}
